// Package migration creates the translations schema on first start. The
// translations table doubles as the sentinel: when it already exists the
// whole run is skipped.
package migration

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"time"
)

type migrationStep struct {
	Name string
	SQL  string
}

var steps = []migrationStep{
	{
		Name: "create_extension_uuid_ossp",
		SQL:  `CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
	},
	{
		Name: "create_table_translations",
		SQL: `CREATE TABLE IF NOT EXISTS translations (
  id                 UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  file_name          TEXT        NOT NULL,
  date               TIMESTAMPTZ NOT NULL DEFAULT now(),
  original_text      TEXT        NOT NULL,
  translated_text    TEXT        NOT NULL,
  document_structure JSONB,
  layout_preserved   BOOLEAN     NOT NULL DEFAULT FALSE
);`,
	},
	{
		Name: "create_index_translations_date",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_translations_date ON translations (date DESC, id DESC);`,
	},
}

// EnsureMigrated runs the schema steps unless the translations table already
// exists.
func EnsureMigrated(ctx context.Context, db *sql.DB, dbHost string) error {
	start := time.Now()

	var exists bool
	query := "SELECT to_regclass('public.translations') IS NOT NULL"
	if err := db.QueryRowContext(ctx, query).Scan(&exists); err != nil {
		logJSON(map[string]any{
			"component":     "database",
			"event":         "db_migration_failed",
			"level":         "error",
			"error_message": fmt.Sprintf("failed to check sentinel table: %v", err),
			"db_host":       dbHost,
		})
		return fmt.Errorf("failed to check sentinel table: %w", err)
	}

	if exists {
		logJSON(map[string]any{
			"component": "database",
			"event":     "db_migration_skip",
			"msg":       "schema already exists, skipping migration",
			"db_host":   dbHost,
		})
		return nil
	}

	for _, step := range steps {
		if _, err := db.ExecContext(ctx, step.SQL); err != nil {
			logJSON(map[string]any{
				"component":      "database",
				"event":          "db_migration_failed",
				"level":          "error",
				"migration_step": step.Name,
				"error_message":  err.Error(),
				"db_host":        dbHost,
			})
			return fmt.Errorf("migration step %s failed: %w", step.Name, err)
		}
	}

	logJSON(map[string]any{
		"component":   "database",
		"event":       "db_migration_success",
		"db_host":     dbHost,
		"duration_ms": time.Since(start).Milliseconds(),
	})

	return nil
}

func logJSON(data map[string]any) {
	data["ts"] = time.Now().UTC().Format(time.RFC3339Nano)
	if _, ok := data["level"]; !ok {
		data["level"] = "info"
	}

	b, err := json.Marshal(data)
	if err != nil {
		log.Printf("failed to marshal migration log: %v", err)
		return
	}
	log.SetFlags(0)
	log.Println(string(b))
}
