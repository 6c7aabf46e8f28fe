package services

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/kubev2v/capacity-planner/internal/models"
	"github.com/kubev2v/capacity-planner/internal/store"
	"github.com/kubev2v/capacity-planner/pkg/credentials"
	srvErrors "github.com/kubev2v/capacity-planner/pkg/errors"
	"github.com/kubev2v/capacity-planner/pkg/scheduler"
)

// FleetCollector gathers the fleet summary from a vCenter endpoint.
type FleetCollector interface {
	VerifyCredentials(ctx context.Context, creds *models.Credentials) error
	CollectFleet(ctx context.Context, creds *models.Credentials) (*models.FleetSummary, error)
}

// CollectorService drives the vCenter collection state machine:
// ready -> connecting -> collecting -> collected, with error as a terminal
// state of any run. Verification is synchronous; collection runs on the
// scheduler and can be cancelled.
type CollectorService struct {
	scheduler *scheduler.Scheduler
	store     *store.Store
	creds     credentials.Store
	collector FleetCollector

	state models.CollectorStatus
	mu    sync.Mutex

	done   chan any
	cancel context.CancelFunc

	logger *zap.SugaredLogger
}

func NewCollectorService(s *scheduler.Scheduler, st *store.Store, creds credentials.Store, collector FleetCollector) *CollectorService {
	return &CollectorService{
		scheduler: s,
		store:     st,
		creds:     creds,
		collector: collector,
		state:     models.CollectorStatus{State: models.CollectorStateReady},
		logger:    zap.S().Named("collector_service"),
	}
}

// GetStatus returns the current collector status.
func (c *CollectorService) GetStatus(ctx context.Context) models.CollectorStatus {
	c.mu.Lock()
	defer c.mu.Unlock()

	status := c.state
	status.HasCredentials = c.creds.Exists()
	return status
}

// GetCredentials returns the stored vCenter credentials.
func (c *CollectorService) GetCredentials(ctx context.Context) (*models.Credentials, error) {
	return c.creds.Load()
}

// SaveCredentials verifies and stores vCenter credentials without
// starting a collection.
func (c *CollectorService) SaveCredentials(ctx context.Context, creds *models.Credentials) error {
	if err := c.collector.VerifyCredentials(ctx, creds); err != nil {
		return err
	}
	return c.creds.Save(*creds)
}

// DeleteCredentials removes the stored credentials.
func (c *CollectorService) DeleteCredentials(ctx context.Context) error {
	return c.creds.Delete()
}

// Start verifies the credentials against vCenter, persists them, and kicks
// off asynchronous fleet collection.
func (c *CollectorService) Start(ctx context.Context, creds *models.Credentials) error {
	c.mu.Lock()
	if c.isBusy() {
		c.mu.Unlock()
		return srvErrors.NewCollectionInProgressError()
	}
	c.state = models.CollectorStatus{State: models.CollectorStateConnecting}
	c.mu.Unlock()

	if err := c.collector.VerifyCredentials(ctx, creds); err != nil {
		c.logger.Errorw("credential verification failed", "error", err)
		c.setState(models.CollectorStatus{State: models.CollectorStateError, Error: err.Error()})
		return err
	}

	if err := c.creds.Save(*creds); err != nil {
		c.setState(models.CollectorStatus{State: models.CollectorStateError, Error: err.Error()})
		return err
	}

	c.mu.Lock()
	runCtx, cancel := context.WithCancel(context.Background())
	c.cancel = cancel
	c.done = make(chan any)
	c.state = models.CollectorStatus{State: models.CollectorStateCollecting}
	go c.run(runCtx, c.done, creds)
	c.mu.Unlock()

	return nil
}

func (c *CollectorService) run(ctx context.Context, done chan any, creds *models.Credentials) {
	defer close(done)
	defer func() {
		c.mu.Lock()
		if c.done == done {
			c.cancel = nil
			c.done = nil
		}
		c.mu.Unlock()
		c.logger.Debug("collector finished work")
	}()

	future := c.scheduler.Submit(func(ctx context.Context) (any, error) {
		return c.collector.CollectFleet(ctx, creds)
	})

	select {
	case <-ctx.Done():
		future.Stop()
		c.setState(models.CollectorStatus{State: models.CollectorStateReady})
		return
	case result := <-future.C():
		if result.Err != nil {
			c.logger.Errorw("fleet collection failed", "error", result.Err)
			c.setState(models.CollectorStatus{State: models.CollectorStateError, Error: result.Err.Error()})
			return
		}

		fleet := result.Value.(*models.FleetSummary)
		if err := c.store.Inventory().Save(ctx, fleet); err != nil {
			c.setState(models.CollectorStatus{State: models.CollectorStateError, Error: err.Error()})
			return
		}

		c.logger.Infow("fleet collection complete", "vm_count", fleet.VMCount)
		c.setState(models.CollectorStatus{State: models.CollectorStateCollected})
	}
}

// Stop cancels a running collection and waits for it to settle.
func (c *CollectorService) Stop(ctx context.Context) error {
	c.mu.Lock()
	cancel := c.cancel
	done := c.done
	c.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	if done != nil {
		<-done
	}

	c.setState(models.CollectorStatus{State: models.CollectorStateReady})
	return nil
}

func (c *CollectorService) setState(s models.CollectorStatus) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = s
}

func (c *CollectorService) isBusy() bool {
	// must be protected by the caller
	switch c.state.State {
	case models.CollectorStateReady, models.CollectorStateCollected, models.CollectorStateError:
		return false
	default:
		return true
	}
}
