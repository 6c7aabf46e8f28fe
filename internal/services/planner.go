package services

import (
	"context"
	"sort"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kubev2v/capacity-planner/internal/models"
	"github.com/kubev2v/capacity-planner/internal/store"
	"github.com/kubev2v/capacity-planner/pkg/capacity"
	"github.com/kubev2v/capacity-planner/pkg/scheduler"
)

// PlannerService evaluates the stored fleet against candidate hardware
// profiles. Profiles are evaluated concurrently on the scheduler; the
// resulting candidates are ranked and the whole evaluation is persisted.
type PlannerService struct {
	scheduler *scheduler.Scheduler
	store     *store.Store
	logger    *zap.SugaredLogger
}

func NewPlannerService(s *scheduler.Scheduler, st *store.Store) *PlannerService {
	return &PlannerService{
		scheduler: s,
		store:     st,
		logger:    zap.S().Named("planner"),
	}
}

// CreatePlan evaluates the stored fleet with the given settings against the
// named profiles, or against every supported catalog profile when no names
// are given. The evaluation is persisted and returned.
func (p *PlannerService) CreatePlan(ctx context.Context, settings models.PlanSettings, profileNames []string) (*models.PlanRecord, error) {
	fleet, err := p.store.Inventory().Get(ctx)
	if err != nil {
		return nil, err
	}

	profiles, err := p.resolveProfiles(ctx, profileNames)
	if err != nil {
		return nil, err
	}

	demand := capacity.FleetDemand{
		VMCount:                 fleet.VMCount,
		VCPUs:                   fleet.VCPUs,
		MemoryGiB:               fleet.MemoryGiB,
		StorageGiB:              fleet.StorageFor(settings.StorageMetric),
		GrowthRate:              settings.GrowthRate,
		HorizonYears:            settings.HorizonYears,
		StorageOverheadFraction: settings.StorageOverheadFraction,
	}

	candidates, err := p.evaluate(ctx, profiles, settings, demand)
	if err != nil {
		return nil, err
	}

	record := &models.PlanRecord{
		ID:         uuid.New(),
		Settings:   settings,
		Fleet:      demand,
		Candidates: candidates,
	}
	if err := p.store.Plan().Create(ctx, record); err != nil {
		return nil, err
	}

	p.logger.Infow("plan created",
		"plan_id", record.ID,
		"profiles", len(candidates),
		"vm_count", fleet.VMCount,
	)
	return p.store.Plan().Get(ctx, record.ID)
}

// GetPlan retrieves a persisted plan.
func (p *PlannerService) GetPlan(ctx context.Context, id uuid.UUID) (*models.PlanRecord, error) {
	return p.store.Plan().Get(ctx, id)
}

// ListPlans returns all persisted plans, newest first.
func (p *PlannerService) ListPlans(ctx context.Context) ([]models.PlanRecord, error) {
	return p.store.Plan().List(ctx)
}

// DeletePlan removes a persisted plan.
func (p *PlannerService) DeletePlan(ctx context.Context, id uuid.UUID) error {
	return p.store.Plan().Delete(ctx, id)
}

func (p *PlannerService) resolveProfiles(ctx context.Context, names []string) ([]models.HardwareProfile, error) {
	if len(names) == 0 {
		return p.store.Profile().List(ctx, store.BySupported(true), store.WithDefaultSort())
	}

	profiles := make([]models.HardwareProfile, 0, len(names))
	for _, name := range names {
		profile, err := p.store.Profile().Get(ctx, name)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, *profile)
	}
	return profiles, nil
}

// evaluate fans one engine run per profile through the scheduler and
// gathers the ranked candidates.
func (p *PlannerService) evaluate(ctx context.Context, profiles []models.HardwareProfile, settings models.PlanSettings, demand capacity.FleetDemand) ([]models.Candidate, error) {
	futures := make([]*scheduler.Future[scheduler.Result[any]], 0, len(profiles))
	for _, profile := range profiles {
		req := capacity.PlanRequest{
			Profile:      profile.ToCapacity(),
			Overcommit:   settings.Overcommit,
			Storage:      settings.Storage,
			Redundancy:   settings.Redundancy,
			Reservations: capacity.DefaultReservations(),
			Overheads:    capacity.DefaultOverheads(),
			Fleet:        demand,
		}
		futures = append(futures, p.scheduler.Submit(func(ctx context.Context) (any, error) {
			return capacity.Evaluate(req)
		}))
	}

	candidates := make([]models.Candidate, 0, len(profiles))
	var firstErr error
	for i, future := range futures {
		select {
		case <-ctx.Done():
			future.Stop()
			if firstErr == nil {
				firstErr = ctx.Err()
			}
		case result := <-future.C():
			if result.Err != nil {
				if firstErr == nil {
					firstErr = result.Err
				}
				continue
			}
			plan := result.Value.(*capacity.Plan)
			candidates = append(candidates, models.Candidate{
				Profile:          profiles[i].Name,
				TotalNodes:       plan.Requirements.TotalNodes,
				LimitingResource: plan.Requirements.LimitingResource,
				AllPass:          plan.Validation.AllPass,
				Result:           *plan,
			})
		}
	}
	if firstErr != nil {
		return nil, firstErr
	}

	rankCandidates(candidates)
	return candidates, nil
}

// rankCandidates orders passing candidates first, then by node count, then
// by name for stability.
func rankCandidates(candidates []models.Candidate) {
	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].AllPass != candidates[j].AllPass {
			return candidates[i].AllPass
		}
		if candidates[i].TotalNodes != candidates[j].TotalNodes {
			return candidates[i].TotalNodes < candidates[j].TotalNodes
		}
		return candidates[i].Profile < candidates[j].Profile
	})
}
