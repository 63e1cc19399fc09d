package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate "duplicate column name" errors from ALTER TABLE
			// since the migration system re-runs all statements.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS homes (
		id                          TEXT PRIMARY KEY,
		tenant_id                   TEXT NOT NULL DEFAULT '',
		name                        TEXT NOT NULL,
		address                     TEXT NOT NULL DEFAULT '',
		start_date                  TEXT,
		forecast_completion_date    TEXT,
		forecast_total_working_days INTEGER,
		forecast_computed_at        TEXT,
		created_at                  TEXT NOT NULL,
		updated_at                  TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_homes_tenant ON homes(tenant_id)`,

	`CREATE TABLE IF NOT EXISTS work_template_items (
		id                    TEXT PRIMARY KEY,
		tenant_id             TEXT NOT NULL DEFAULT '',
		name                  TEXT NOT NULL,
		default_duration_days INTEGER NOT NULL DEFAULT 0,
		sort_order            INTEGER NOT NULL DEFAULT 0,
		category              TEXT NOT NULL DEFAULT '',
		is_dependency         INTEGER NOT NULL DEFAULT 0,
		is_critical_gate      INTEGER NOT NULL DEFAULT 0,
		gate_scope            TEXT NOT NULL DEFAULT 'downstream_only'
		                      CHECK(gate_scope IN ('downstream_only','all_scheduling')),
		gate_block_mode       TEXT NOT NULL DEFAULT 'schedule_only'
		                      CHECK(gate_block_mode IN ('schedule_only','schedule_and_confirm')),
		gate_name             TEXT NOT NULL DEFAULT '',
		created_at            TEXT NOT NULL,
		updated_at            TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_template_items_tenant ON work_template_items(tenant_id)`,

	`CREATE TABLE IF NOT EXISTS template_dependencies (
		template_item_id   TEXT NOT NULL REFERENCES work_template_items(id) ON DELETE CASCADE,
		depends_on_item_id TEXT NOT NULL REFERENCES work_template_items(id) ON DELETE CASCADE,
		tenant_id          TEXT,
		PRIMARY KEY (template_item_id, depends_on_item_id)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_template_deps_target ON template_dependencies(template_item_id)`,

	`CREATE TABLE IF NOT EXISTS category_gates (
		id              TEXT PRIMARY KEY,
		tenant_id       TEXT NOT NULL DEFAULT '',
		category_name   TEXT NOT NULL,
		gate_scope      TEXT NOT NULL DEFAULT 'downstream_only'
		                CHECK(gate_scope IN ('downstream_only','all_scheduling')),
		gate_block_mode TEXT NOT NULL DEFAULT 'schedule_only'
		                CHECK(gate_block_mode IN ('schedule_only','schedule_and_confirm')),
		gate_name       TEXT NOT NULL DEFAULT '',
		created_at      TEXT NOT NULL,
		updated_at      TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_category_gates_tenant ON category_gates(tenant_id)`,

	`CREATE TABLE IF NOT EXISTS home_tasks (
		id                     TEXT PRIMARY KEY,
		home_id                TEXT NOT NULL REFERENCES homes(id) ON DELETE CASCADE,
		template_item_id       TEXT NOT NULL REFERENCES work_template_items(id),
		name_snapshot          TEXT NOT NULL,
		duration_days_snapshot INTEGER NOT NULL DEFAULT 0,
		sort_order_snapshot    INTEGER NOT NULL DEFAULT 0,
		status                 TEXT NOT NULL DEFAULT 'unscheduled'
		                       CHECK(status IN ('unscheduled','scheduled','pending_confirm',
		                                        'confirmed','declined','in_progress','completed','canceled')),
		scheduled_date         TEXT,
		forecast_early_start   INTEGER NOT NULL DEFAULT 0,
		forecast_early_finish  INTEGER NOT NULL DEFAULT 0,
		is_critical_path       INTEGER NOT NULL DEFAULT 0,
		blocked_by_count       INTEGER NOT NULL DEFAULT 0,
		created_at             TEXT NOT NULL,
		updated_at             TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_home_tasks_home ON home_tasks(home_id)`,
	`CREATE INDEX IF NOT EXISTS idx_home_tasks_status ON home_tasks(status)`,
	`CREATE INDEX IF NOT EXISTS idx_home_tasks_template ON home_tasks(template_item_id)`,

	`CREATE TABLE IF NOT EXISTS punch_items (
		id           TEXT PRIMARY KEY,
		home_task_id TEXT NOT NULL REFERENCES home_tasks(id) ON DELETE CASCADE,
		description  TEXT NOT NULL DEFAULT '',
		status       TEXT NOT NULL DEFAULT 'open'
		             CHECK(status IN ('open','ready_for_review','closed','canceled')),
		created_at   TEXT NOT NULL,
		updated_at   TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_punch_items_task ON punch_items(home_task_id)`,
	`CREATE INDEX IF NOT EXISTS idx_punch_items_status ON punch_items(status)`,
}
