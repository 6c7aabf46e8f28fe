package store

import "database/sql"

// Store provides access to all storage repositories.
type Store struct {
	db        *sql.DB
	profile   *ProfileStore
	inventory *InventoryStore
	plan      *PlanStore
}

func NewStore(db *sql.DB) *Store {
	interceptor := newQueryInterceptor(db)
	return &Store{
		db:        db,
		profile:   NewProfileStore(interceptor),
		inventory: NewInventoryStore(interceptor),
		plan:      NewPlanStore(interceptor),
	}
}

func (s *Store) Profile() *ProfileStore {
	return s.profile
}

func (s *Store) Inventory() *InventoryStore {
	return s.inventory
}

func (s *Store) Plan() *PlanStore {
	return s.plan
}

func (s *Store) Close() error {
	return s.db.Close()
}
