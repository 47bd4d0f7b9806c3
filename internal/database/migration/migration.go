package migration

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"sitrack/internal/logging"
)

type migrationStep struct {
	Name string
	SQL  string
}

const createMigrationsTable = `CREATE TABLE IF NOT EXISTS schema_migrations (
  name       TEXT        PRIMARY KEY,
  applied_at TIMESTAMPTZ NOT NULL DEFAULT now()
);`

var steps = []migrationStep{
	{
		Name: "create_extension_uuid_ossp",
		SQL:  `CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
	},
	{
		Name: "create_table_profiles",
		SQL: `CREATE TABLE IF NOT EXISTS profiles (
  id            UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  name          TEXT        NOT NULL UNIQUE,
  full_name     TEXT        NOT NULL DEFAULT '',
  email         TEXT        NOT NULL UNIQUE,
  role          TEXT        NOT NULL CHECK (role IN ('Admin', 'TU', 'Koordinator', 'Staff')),
  password_hash TEXT        NOT NULL,
  created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
  updated_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_table_reports",
		SQL: `CREATE TABLE IF NOT EXISTS reports (
  id                    UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  no_surat              TEXT        NOT NULL,
  hal                   TEXT        NOT NULL,
  layanan               TEXT        NOT NULL,
  dari                  TEXT        NOT NULL DEFAULT '',
  status                TEXT        NOT NULL CHECK (status IN ('draft', 'in-progress', 'revision-required', 'pending-approval-tu', 'completed')),
  created_by            UUID        REFERENCES profiles (id) ON DELETE SET NULL,
  current_holder        UUID        REFERENCES profiles (id) ON DELETE SET NULL,
  document_verification JSONB       NOT NULL DEFAULT '{}'::jsonb,
  created_at            TIMESTAMPTZ NOT NULL DEFAULT now(),
  updated_at            TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_index_reports_no_surat",
		SQL:  `CREATE UNIQUE INDEX IF NOT EXISTS idx_reports_no_surat_lower ON reports (lower(no_surat));`,
	},
	{
		Name: "create_index_reports_status",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_reports_status ON reports (status);`,
	},
	{
		Name: "create_index_reports_created_at",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_reports_created_at ON reports (created_at);`,
	},
	{
		Name: "create_table_task_assignments",
		SQL: `CREATE TABLE IF NOT EXISTS task_assignments (
  id              UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  report_id       UUID        NOT NULL REFERENCES reports (id) ON DELETE CASCADE,
  staff_id        UUID        NOT NULL REFERENCES profiles (id) ON DELETE CASCADE,
  coordinator_id  UUID        REFERENCES profiles (id) ON DELETE SET NULL,
  todo_list       JSONB       NOT NULL DEFAULT '[]'::jsonb,
  completed_tasks JSONB       NOT NULL DEFAULT '[]'::jsonb,
  notes           TEXT        NOT NULL DEFAULT '',
  revision_notes  TEXT        NOT NULL DEFAULT '',
  status          TEXT        NOT NULL CHECK (status IN ('in-progress', 'revision-required', 'completed')),
  progress        INT         NOT NULL DEFAULT 0 CHECK (progress BETWEEN 0 AND 100),
  created_at      TIMESTAMPTZ NOT NULL DEFAULT now(),
  completed_at    TIMESTAMPTZ,
  UNIQUE (report_id, staff_id)
);`,
	},
	{
		Name: "create_index_task_assignments_staff",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_task_assignments_staff ON task_assignments (staff_id, status);`,
	},
	{
		Name: "create_table_workflow_history",
		SQL: `CREATE TABLE IF NOT EXISTS workflow_history (
  id         UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  report_id  UUID        NOT NULL REFERENCES reports (id) ON DELETE CASCADE,
  action     TEXT        NOT NULL,
  notes      TEXT        NOT NULL DEFAULT '',
  user_id    UUID        REFERENCES profiles (id) ON DELETE SET NULL,
  status     TEXT        NOT NULL,
  created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_index_workflow_history_report",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_workflow_history_report ON workflow_history (report_id, created_at);`,
	},
	{
		Name: "create_table_file_attachments",
		SQL: `CREATE TABLE IF NOT EXISTS file_attachments (
  id           UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  report_id    UUID        NOT NULL REFERENCES reports (id) ON DELETE CASCADE,
  file_name    TEXT        NOT NULL,
  storage_path TEXT        NOT NULL UNIQUE,
  size         BIGINT      NOT NULL CHECK (size >= 0),
  content_type TEXT        NOT NULL,
  uploaded_by  UUID        REFERENCES profiles (id) ON DELETE SET NULL,
  created_at   TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_index_file_attachments_report",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_file_attachments_report ON file_attachments (report_id);`,
	},
}

// Steps returns the names of all migration steps in order.
func Steps() []string {
	names := make([]string, len(steps))
	for i, s := range steps {
		names[i] = s.Name
	}
	return names
}

// EnsureMigrated applies every step not yet recorded in schema_migrations.
func EnsureMigrated(ctx context.Context, db *sql.DB, log *logging.Logger, dbHost string) error {
	start := time.Now()

	log.Log(map[string]any{
		"component": "database",
		"event":     "db_migration_check",
		"status":    "starting",
		"db_host":   dbHost,
	})

	if _, err := db.ExecContext(ctx, createMigrationsTable); err != nil {
		return fail(log, dbHost, start, "", fmt.Errorf("create schema_migrations: %w", err))
	}

	applied, err := appliedSteps(ctx, db)
	if err != nil {
		return fail(log, dbHost, start, "", err)
	}

	pending := 0
	for _, step := range steps {
		if applied[step.Name] {
			continue
		}
		pending++
		stepStart := time.Now()
		if _, err := db.ExecContext(ctx, step.SQL); err != nil {
			return fail(log, dbHost, start, step.Name, fmt.Errorf("migration step %s failed: %w", step.Name, err))
		}
		if _, err := db.ExecContext(ctx, `INSERT INTO schema_migrations (name) VALUES ($1)`, step.Name); err != nil {
			return fail(log, dbHost, start, step.Name, fmt.Errorf("record migration step %s: %w", step.Name, err))
		}

		log.Log(map[string]any{
			"component":        "database",
			"event":            "db_migration_step",
			"status":           "success",
			"migration_step":   step.Name,
			"db_host":          dbHost,
			"step_duration_ms": time.Since(stepStart).Milliseconds(),
		})
	}

	event := "db_migration_success"
	if pending == 0 {
		event = "db_migration_skip"
	}
	log.Log(map[string]any{
		"component":     "database",
		"event":         event,
		"status":        "success",
		"applied_steps": pending,
		"db_host":       dbHost,
		"duration_ms":   time.Since(start).Milliseconds(),
	})

	return nil
}

func appliedSteps(ctx context.Context, db *sql.DB) (map[string]bool, error) {
	rows, err := db.QueryContext(ctx, `SELECT name FROM schema_migrations`)
	if err != nil {
		return nil, fmt.Errorf("read schema_migrations: %w", err)
	}
	defer rows.Close()

	applied := make(map[string]bool)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan schema_migrations: %w", err)
		}
		applied[name] = true
	}
	return applied, rows.Err()
}

func fail(log *logging.Logger, dbHost string, start time.Time, step string, err error) error {
	entry := map[string]any{
		"component":     "database",
		"event":         "db_migration_failed",
		"status":        "error",
		"error_message": err.Error(),
		"db_host":       dbHost,
		"duration_ms":   time.Since(start).Milliseconds(),
	}
	if step != "" {
		entry["migration_step"] = step
	}
	log.Log(entry)
	return err
}
