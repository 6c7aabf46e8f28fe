package vsphere

import (
	"context"

	"github.com/kubev2v/capacity-planner/internal/models"
)

// Collector is the production FleetCollector backed by a live vCenter.
// Each collection opens its own session; nothing is cached between runs.
type Collector struct{}

func NewCollector() *Collector {
	return &Collector{}
}

func (c *Collector) VerifyCredentials(ctx context.Context, creds *models.Credentials) error {
	return VerifyCredentials(ctx, creds)
}

func (c *Collector) CollectFleet(ctx context.Context, creds *models.Credentials) (*models.FleetSummary, error) {
	client, err := Connect(ctx, creds)
	if err != nil {
		return nil, err
	}
	defer func() { _ = client.Disconnect(ctx) }()

	return client.CollectFleet(ctx)
}
