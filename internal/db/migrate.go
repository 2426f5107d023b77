package db

import (
	"context"
	"embed"
	"fmt"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/infortic/infortic/internal/logger"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// ApplyMigrations runs the embedded SQL files in name order, skipping those
// already recorded in schema_migrations.
func ApplyMigrations(ctx context.Context, pool *pgxpool.Pool, log logger.Logger) error {
	if _, err := pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			filename TEXT PRIMARY KEY,
			applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`); err != nil {
		return fmt.Errorf("failed to ensure schema_migrations table: %w", err)
	}

	entries, err := migrationsFS.ReadDir("migrations")
	if err != nil {
		return fmt.Errorf("failed to read embedded migrations: %w", err)
	}

	var migrationFiles []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".sql") {
			migrationFiles = append(migrationFiles, entry.Name())
		}
	}
	sort.Strings(migrationFiles)

	for _, fileName := range migrationFiles {
		var alreadyApplied bool
		err := pool.QueryRow(ctx, "SELECT EXISTS(SELECT 1 FROM schema_migrations WHERE filename = $1)", fileName).Scan(&alreadyApplied)
		if err != nil {
			return fmt.Errorf("failed to check migration %s: %w", fileName, err)
		}
		if alreadyApplied {
			continue
		}

		content, err := migrationsFS.ReadFile("migrations/" + fileName)
		if err != nil {
			return fmt.Errorf("failed to read migration file %s: %w", fileName, err)
		}

		log.Info("applying migration", logger.String("file", fileName))
		if _, err = pool.Exec(ctx, string(content)); err != nil {
			return fmt.Errorf("failed to execute migration %s: %w", fileName, err)
		}

		if _, err = pool.Exec(ctx, "INSERT INTO schema_migrations (filename) VALUES ($1)", fileName); err != nil {
			return fmt.Errorf("failed to mark migration %s as applied: %w", fileName, err)
		}
	}

	return nil
}
