package store

import (
	"context"
	"database/sql"
	"errors"

	sq "github.com/Masterminds/squirrel"

	"github.com/kubev2v/capacity-planner/internal/models"
	srvErrors "github.com/kubev2v/capacity-planner/pkg/errors"
)

// ProfileStore handles the hardware profile catalog using DuckDB.
type ProfileStore struct {
	db QueryInterceptor
}

func NewProfileStore(db QueryInterceptor) *ProfileStore {
	return &ProfileStore{db: db}
}

var profileColumns = []string{
	"name",
	"manufacturer",
	"physical_cores",
	"threads",
	"memory_gib",
	"storage_devices",
	"device_capacity_gib",
	"supported",
	"created_at",
	"updated_at",
}

// List returns catalog profiles with filters, sorting, and pagination.
func (s *ProfileStore) List(ctx context.Context, opts ...ListOption) ([]models.HardwareProfile, error) {
	builder := sq.Select(profileColumns...).From("profiles")
	for _, opt := range opts {
		builder = opt(builder)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var profiles []models.HardwareProfile
	for rows.Next() {
		p, err := scanProfile(rows.Scan)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, *p)
	}

	return profiles, rows.Err()
}

// Get retrieves one profile by name.
func (s *ProfileStore) Get(ctx context.Context, name string) (*models.HardwareProfile, error) {
	query, args, err := sq.Select(profileColumns...).
		From("profiles").
		Where(sq.Eq{"name": name}).
		ToSql()
	if err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx, query, args...)
	p, err := scanProfile(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, srvErrors.NewProfileNotFoundError(name)
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

// Save creates or updates a catalog profile keyed by name.
func (s *ProfileStore) Save(ctx context.Context, p *models.HardwareProfile) error {
	query, args, err := sq.Insert("profiles").
		Columns("name", "manufacturer", "physical_cores", "threads", "memory_gib",
			"storage_devices", "device_capacity_gib", "supported").
		Values(p.Name, p.Manufacturer, p.PhysicalCores, p.Threads, p.MemoryGiB,
			p.StorageDevices, p.DeviceCapacityGiB, p.Supported).
		Suffix(`ON CONFLICT (name) DO UPDATE SET
			manufacturer = EXCLUDED.manufacturer,
			physical_cores = EXCLUDED.physical_cores,
			threads = EXCLUDED.threads,
			memory_gib = EXCLUDED.memory_gib,
			storage_devices = EXCLUDED.storage_devices,
			device_capacity_gib = EXCLUDED.device_capacity_gib,
			supported = EXCLUDED.supported,
			updated_at = current_timestamp`).
		ToSql()
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, query, args...)
	return err
}

// Delete removes a profile from the catalog.
func (s *ProfileStore) Delete(ctx context.Context, name string) error {
	query, args, err := sq.Delete("profiles").Where(sq.Eq{"name": name}).ToSql()
	if err != nil {
		return err
	}

	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return srvErrors.NewProfileNotFoundError(name)
	}
	return nil
}

func scanProfile(scan func(...any) error) (*models.HardwareProfile, error) {
	var p models.HardwareProfile
	err := scan(
		&p.Name,
		&p.Manufacturer,
		&p.PhysicalCores,
		&p.Threads,
		&p.MemoryGiB,
		&p.StorageDevices,
		&p.DeviceCapacityGiB,
		&p.Supported,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// ListOption modifies a SELECT query for filtering/sorting/pagination.
type ListOption func(sq.SelectBuilder) sq.SelectBuilder

// BySupported filters by catalog eligibility.
func BySupported(supported bool) ListOption {
	return func(b sq.SelectBuilder) sq.SelectBuilder {
		return b.Where(sq.Eq{"supported": supported})
	}
}

// ByManufacturers filters by manufacturer names (OR logic).
func ByManufacturers(manufacturers ...string) ListOption {
	return func(b sq.SelectBuilder) sq.SelectBuilder {
		if len(manufacturers) == 0 {
			return b
		}
		return b.Where(sq.Eq{"manufacturer": manufacturers})
	}
}

// ByMinMemory filters profiles with at least the given memory.
func ByMinMemory(gib float64) ListOption {
	return func(b sq.SelectBuilder) sq.SelectBuilder {
		if gib <= 0 {
			return b
		}
		return b.Where(sq.GtOrEq{"memory_gib": gib})
	}
}

// ByMinCores filters profiles with at least the given physical core count.
func ByMinCores(cores int) ListOption {
	return func(b sq.SelectBuilder) sq.SelectBuilder {
		if cores <= 0 {
			return b
		}
		return b.Where(sq.GtOrEq{"physical_cores": cores})
	}
}

// WithLocalStorage keeps only profiles carrying local storage devices.
func WithLocalStorage() ListOption {
	return func(b sq.SelectBuilder) sq.SelectBuilder {
		return b.Where(sq.Gt{"storage_devices": 0})
	}
}

// WithLimit sets the LIMIT clause.
func WithLimit(limit uint64) ListOption {
	return func(b sq.SelectBuilder) sq.SelectBuilder {
		return b.Limit(limit)
	}
}

// WithOffset sets the OFFSET clause.
func WithOffset(offset uint64) ListOption {
	return func(b sq.SelectBuilder) sq.SelectBuilder {
		return b.Offset(offset)
	}
}

// WithDefaultSort applies stable sorting by profile name.
func WithDefaultSort() ListOption {
	return func(b sq.SelectBuilder) sq.SelectBuilder {
		return b.OrderBy("name")
	}
}
