package services

import (
	"context"

	"github.com/kubev2v/capacity-planner/internal/models"
	"github.com/kubev2v/capacity-planner/internal/store"
)

// CatalogService manages the hardware profile catalog.
type CatalogService struct {
	store *store.Store
}

func NewCatalogService(st *store.Store) *CatalogService {
	return &CatalogService{
		store: st,
	}
}

// ListProfiles returns catalog profiles matching the given filters.
func (c *CatalogService) ListProfiles(ctx context.Context, opts ...store.ListOption) ([]models.HardwareProfile, error) {
	return c.store.Profile().List(ctx, opts...)
}

// GetProfile retrieves one profile by name.
func (c *CatalogService) GetProfile(ctx context.Context, name string) (*models.HardwareProfile, error) {
	return c.store.Profile().Get(ctx, name)
}

// SaveProfile creates or updates a catalog entry. The hardware figures are
// validated first; an inconsistent profile never reaches the catalog.
func (c *CatalogService) SaveProfile(ctx context.Context, p *models.HardwareProfile) error {
	if err := p.ToCapacity().Validate(); err != nil {
		return err
	}
	return c.store.Profile().Save(ctx, p)
}

// DeleteProfile removes a catalog entry.
func (c *CatalogService) DeleteProfile(ctx context.Context, name string) error {
	return c.store.Profile().Delete(ctx, name)
}
