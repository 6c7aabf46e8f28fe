package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/kubev2v/capacity-planner/internal/models"
	srvErrors "github.com/kubev2v/capacity-planner/pkg/errors"
)

// InventoryStore holds the single current fleet summary. Saving replaces
// the previous snapshot; the planner never sees more than one fleet.
type InventoryStore struct {
	db QueryInterceptor
}

func NewInventoryStore(db QueryInterceptor) *InventoryStore {
	return &InventoryStore{db: db}
}

const queryGetInventory = `
SELECT source, vm_count, vcpus, memory_gib,
       provisioned_storage_gib, used_storage_gib, raw_disk_storage_gib,
       created_at, updated_at
FROM inventory WHERE id = 1`

const queryUpsertInventory = `
INSERT INTO inventory (id, source, vm_count, vcpus, memory_gib,
	provisioned_storage_gib, used_storage_gib, raw_disk_storage_gib)
VALUES (1, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT (id) DO UPDATE SET
	source = EXCLUDED.source,
	vm_count = EXCLUDED.vm_count,
	vcpus = EXCLUDED.vcpus,
	memory_gib = EXCLUDED.memory_gib,
	provisioned_storage_gib = EXCLUDED.provisioned_storage_gib,
	used_storage_gib = EXCLUDED.used_storage_gib,
	raw_disk_storage_gib = EXCLUDED.raw_disk_storage_gib,
	updated_at = current_timestamp`

// Get retrieves the stored fleet summary.
func (s *InventoryStore) Get(ctx context.Context) (*models.FleetSummary, error) {
	row := s.db.QueryRowContext(ctx, queryGetInventory)

	var f models.FleetSummary
	err := row.Scan(
		&f.Source,
		&f.VMCount,
		&f.VCPUs,
		&f.MemoryGiB,
		&f.ProvisionedStorageGiB,
		&f.UsedStorageGiB,
		&f.RawDiskStorageGiB,
		&f.CreatedAt,
		&f.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, srvErrors.NewInventoryNotFoundError()
	}
	if err != nil {
		return nil, err
	}
	return &f, nil
}

// Save stores or replaces the fleet summary.
func (s *InventoryStore) Save(ctx context.Context, f *models.FleetSummary) error {
	_, err := s.db.ExecContext(ctx, queryUpsertInventory,
		string(f.Source),
		f.VMCount,
		f.VCPUs,
		f.MemoryGiB,
		f.ProvisionedStorageGiB,
		f.UsedStorageGiB,
		f.RawDiskStorageGiB,
	)
	return err
}
