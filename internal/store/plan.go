package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/kubev2v/capacity-planner/internal/models"
	srvErrors "github.com/kubev2v/capacity-planner/pkg/errors"
)

// PlanStore persists planning evaluations. Settings, fleet, and candidates
// are stored as JSON documents; the engine output is immutable once written.
type PlanStore struct {
	db QueryInterceptor
}

func NewPlanStore(db QueryInterceptor) *PlanStore {
	return &PlanStore{db: db}
}

// Create persists a plan record.
func (s *PlanStore) Create(ctx context.Context, plan *models.PlanRecord) error {
	settings, err := json.Marshal(plan.Settings)
	if err != nil {
		return err
	}
	fleet, err := json.Marshal(plan.Fleet)
	if err != nil {
		return err
	}
	candidates, err := json.Marshal(plan.Candidates)
	if err != nil {
		return err
	}

	query, args, err := sq.Insert("plans").
		Columns("id", "settings", "fleet", "candidates").
		Values(plan.ID.String(), string(settings), string(fleet), string(candidates)).
		ToSql()
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, query, args...)
	return err
}

// Get retrieves one plan by id.
func (s *PlanStore) Get(ctx context.Context, id uuid.UUID) (*models.PlanRecord, error) {
	query, args, err := sq.Select("id", "settings", "fleet", "candidates", "created_at").
		From("plans").
		Where(sq.Eq{"id": id.String()}).
		ToSql()
	if err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx, query, args...)
	plan, err := scanPlan(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, srvErrors.NewPlanNotFoundError(id)
	}
	if err != nil {
		return nil, err
	}
	return plan, nil
}

// List returns all plans, newest first.
func (s *PlanStore) List(ctx context.Context) ([]models.PlanRecord, error) {
	query, args, err := sq.Select("id", "settings", "fleet", "candidates", "created_at").
		From("plans").
		OrderBy("created_at DESC", "id").
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var plans []models.PlanRecord
	for rows.Next() {
		plan, err := scanPlan(rows.Scan)
		if err != nil {
			return nil, err
		}
		plans = append(plans, *plan)
	}

	return plans, rows.Err()
}

// Delete removes a plan by id.
func (s *PlanStore) Delete(ctx context.Context, id uuid.UUID) error {
	query, args, err := sq.Delete("plans").Where(sq.Eq{"id": id.String()}).ToSql()
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
		return srvErrors.NewPlanNotFoundError(id)
	}
	return nil
}

func scanPlan(scan func(...any) error) (*models.PlanRecord, error) {
	var (
		plan       models.PlanRecord
		id         string
		settings   string
		fleet      string
		candidates string
	)
	if err := scan(&id, &settings, &fleet, &candidates, &plan.CreatedAt); err != nil {
		return nil, err
	}

	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, err
	}
	plan.ID = parsed

	if err := json.Unmarshal([]byte(settings), &plan.Settings); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(fleet), &plan.Fleet); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(candidates), &plan.Candidates); err != nil {
		return nil, err
	}
	return &plan, nil
}
