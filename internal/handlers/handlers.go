package handlers

import (
	"context"
	"io"

	"github.com/google/uuid"

	"github.com/kubev2v/capacity-planner/internal/models"
	"github.com/kubev2v/capacity-planner/internal/store"
)

// CatalogService manages the hardware profile catalog.
type CatalogService interface {
	ListProfiles(ctx context.Context, opts ...store.ListOption) ([]models.HardwareProfile, error)
	GetProfile(ctx context.Context, name string) (*models.HardwareProfile, error)
	SaveProfile(ctx context.Context, p *models.HardwareProfile) error
	DeleteProfile(ctx context.Context, name string) error
}

// InventoryService manages the current fleet summary.
type InventoryService interface {
	GetInventory(ctx context.Context) (*models.FleetSummary, error)
	SetManual(ctx context.Context, fleet *models.FleetSummary) error
	ImportRVTools(ctx context.Context, r io.Reader) (*models.FleetSummary, error)
}

// CollectorService drives vCenter collection and credential storage.
type CollectorService interface {
	GetStatus(ctx context.Context) models.CollectorStatus
	GetCredentials(ctx context.Context) (*models.Credentials, error)
	SaveCredentials(ctx context.Context, creds *models.Credentials) error
	DeleteCredentials(ctx context.Context) error
	Start(ctx context.Context, creds *models.Credentials) error
	Stop(ctx context.Context) error
}

// PlannerService evaluates and persists capacity plans.
type PlannerService interface {
	CreatePlan(ctx context.Context, settings models.PlanSettings, profiles []string) (*models.PlanRecord, error)
	GetPlan(ctx context.Context, id uuid.UUID) (*models.PlanRecord, error)
	ListPlans(ctx context.Context) ([]models.PlanRecord, error)
	DeletePlan(ctx context.Context, id uuid.UUID) error
}

type Handler struct {
	catalogSrv   CatalogService
	inventorySrv InventoryService
	collectorSrv CollectorService
	plannerSrv   PlannerService
}

func New(catalog CatalogService, inventory InventoryService, collector CollectorService, planner PlannerService) *Handler {
	return &Handler{
		catalogSrv:   catalog,
		inventorySrv: inventory,
		collectorSrv: collector,
		plannerSrv:   planner,
	}
}
