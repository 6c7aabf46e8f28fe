// Package migrations manages the planner's database schema. Migrations are
// applied sequentially and tracked in the schema_migrations table, so Run
// is safe to call on every startup.
package migrations

import (
	"context"
	"database/sql"
	"fmt"
)

type migration struct {
	version    int
	statements []string
}

var all = []migration{
	{
		version: 1,
		statements: []string{
			`CREATE TABLE IF NOT EXISTS profiles (
				name TEXT PRIMARY KEY,
				manufacturer TEXT NOT NULL DEFAULT '',
				physical_cores INTEGER NOT NULL,
				threads INTEGER NOT NULL,
				memory_gib DOUBLE NOT NULL,
				storage_devices INTEGER NOT NULL,
				device_capacity_gib DOUBLE NOT NULL,
				supported BOOLEAN NOT NULL DEFAULT true,
				created_at TIMESTAMP NOT NULL DEFAULT current_timestamp,
				updated_at TIMESTAMP NOT NULL DEFAULT current_timestamp
			)`,
			`CREATE TABLE IF NOT EXISTS inventory (
				id INTEGER PRIMARY KEY,
				source TEXT NOT NULL,
				vm_count INTEGER NOT NULL,
				vcpus DOUBLE NOT NULL,
				memory_gib DOUBLE NOT NULL,
				provisioned_storage_gib DOUBLE NOT NULL,
				used_storage_gib DOUBLE NOT NULL,
				raw_disk_storage_gib DOUBLE NOT NULL,
				created_at TIMESTAMP NOT NULL DEFAULT current_timestamp,
				updated_at TIMESTAMP NOT NULL DEFAULT current_timestamp
			)`,
			`CREATE TABLE IF NOT EXISTS plans (
				id TEXT PRIMARY KEY,
				settings TEXT NOT NULL,
				fleet TEXT NOT NULL,
				candidates TEXT NOT NULL,
				created_at TIMESTAMP NOT NULL DEFAULT current_timestamp
			)`,
		},
	},
	{
		// Default bare-metal catalog. Operators can extend or replace it
		// through the profiles API.
		version: 2,
		statements: []string{
			`INSERT INTO profiles (name, manufacturer, physical_cores, threads, memory_gib, storage_devices, device_capacity_gib, supported)
				VALUES ('m6-metal', 'amazon', 32, 64, 256, 4, 800, true)
				ON CONFLICT (name) DO NOTHING`,
			`INSERT INTO profiles (name, manufacturer, physical_cores, threads, memory_gib, storage_devices, device_capacity_gib, supported)
				VALUES ('c5-metal', 'amazon', 48, 96, 192, 0, 0, true)
				ON CONFLICT (name) DO NOTHING`,
			`INSERT INTO profiles (name, manufacturer, physical_cores, threads, memory_gib, storage_devices, device_capacity_gib, supported)
				VALUES ('r6-metal', 'amazon', 32, 64, 768, 4, 1900, true)
				ON CONFLICT (name) DO NOTHING`,
			`INSERT INTO profiles (name, manufacturer, physical_cores, threads, memory_gib, storage_devices, device_capacity_gib, supported)
				VALUES ('i4-metal', 'amazon', 64, 128, 1024, 8, 3750, true)
				ON CONFLICT (name) DO NOTHING`,
		},
	},
}

// Run applies all pending migrations in order.
func Run(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS schema_migrations (
		version INTEGER PRIMARY KEY,
		applied_at TIMESTAMP NOT NULL DEFAULT current_timestamp
	)`); err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	applied, err := appliedVersions(ctx, db)
	if err != nil {
		return err
	}

	for _, m := range all {
		if applied[m.version] {
			continue
		}
		for _, stmt := range m.statements {
			if _, err := db.ExecContext(ctx, stmt); err != nil {
				return fmt.Errorf("migration %d: %w", m.version, err)
			}
		}
		if _, err := db.ExecContext(ctx, `INSERT INTO schema_migrations (version) VALUES (?)`, m.version); err != nil {
			return fmt.Errorf("recording migration %d: %w", m.version, err)
		}
	}

	return nil
}

func appliedVersions(ctx context.Context, db *sql.DB) (map[int]bool, error) {
	rows, err := db.QueryContext(ctx, `SELECT version FROM schema_migrations`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	applied := make(map[int]bool)
	for rows.Next() {
		var v int
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		applied[v] = true
	}
	return applied, rows.Err()
}
