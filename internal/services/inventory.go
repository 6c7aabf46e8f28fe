package services

import (
	"context"
	"io"

	"go.uber.org/zap"

	"github.com/kubev2v/capacity-planner/internal/models"
	"github.com/kubev2v/capacity-planner/internal/store"
	srvErrors "github.com/kubev2v/capacity-planner/pkg/errors"
	"github.com/kubev2v/capacity-planner/pkg/rvtools"
)

// InventoryService manages the current fleet summary, whichever way it was
// produced: manual entry, RVTools upload, or vCenter collection.
type InventoryService struct {
	store  *store.Store
	logger *zap.SugaredLogger
}

func NewInventoryService(st *store.Store) *InventoryService {
	return &InventoryService{
		store:  st,
		logger: zap.S().Named("inventory"),
	}
}

// GetInventory retrieves the stored fleet summary.
func (c *InventoryService) GetInventory(ctx context.Context) (*models.FleetSummary, error) {
	return c.store.Inventory().Get(ctx)
}

// SetManual replaces the fleet summary with operator-entered totals.
func (c *InventoryService) SetManual(ctx context.Context, fleet *models.FleetSummary) error {
	if err := validateFleet(fleet); err != nil {
		return err
	}

	fleet.Source = models.InventorySourceManual
	if err := c.store.Inventory().Save(ctx, fleet); err != nil {
		return err
	}

	c.logger.Infow("manual fleet summary saved", "vm_count", fleet.VMCount)
	return nil
}

// ImportRVTools parses an RVTools export and replaces the fleet summary.
func (c *InventoryService) ImportRVTools(ctx context.Context, r io.Reader) (*models.FleetSummary, error) {
	fleet, err := rvtools.Parse(r)
	if err != nil {
		return nil, err
	}

	if err := c.store.Inventory().Save(ctx, fleet); err != nil {
		return nil, err
	}

	c.logger.Infow("rvtools fleet summary saved",
		"vm_count", fleet.VMCount,
		"vcpus", fleet.VCPUs,
		"memory_gib", fleet.MemoryGiB,
	)
	return fleet, nil
}

func validateFleet(fleet *models.FleetSummary) error {
	checks := []struct {
		field string
		value float64
	}{
		{"vmCount", float64(fleet.VMCount)},
		{"vCPUs", fleet.VCPUs},
		{"memoryGiB", fleet.MemoryGiB},
		{"provisionedStorageGiB", fleet.ProvisionedStorageGiB},
		{"usedStorageGiB", fleet.UsedStorageGiB},
		{"rawDiskStorageGiB", fleet.RawDiskStorageGiB},
	}
	for _, check := range checks {
		if check.value < 0 {
			return srvErrors.NewInvalidConfigurationError(check.field, "must not be negative")
		}
	}
	return nil
}
