// Package rowsource opens the configured listing store.
package rowsource

import (
	"context"
	"fmt"

	"github.com/infortic/infortic/internal/config"
	"github.com/infortic/infortic/internal/db"
	"github.com/infortic/infortic/internal/db/sqlite"
	"github.com/infortic/infortic/internal/listing"
	"github.com/infortic/infortic/internal/logger"
	"github.com/infortic/infortic/internal/models"
)

// Store is what the server and tools need from a backend.
type Store interface {
	listing.Source
	listing.SlugFinder
	Upsert(ctx context.Context, o models.Opportunity) error
	Count(ctx context.Context, kind models.Kind) (int, error)
}

var (
	_ Store = (*db.Store)(nil)
	_ Store = (*sqlite.Store)(nil)
)

// Open connects to the backend selected by cfg.RowSource. The returned
// function releases it.
func Open(ctx context.Context, cfg *config.Config, log logger.Logger) (Store, func(), error) {
	switch cfg.RowSource {
	case config.RowSourceSQLite:
		store, err := sqlite.Open(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, nil, fmt.Errorf("open sqlite %s: %w", cfg.SQLitePath, err)
		}
		log.Info("using sqlite row source", logger.String("path", cfg.SQLitePath))
		return store, func() { _ = store.Close() }, nil

	case config.RowSourcePostgres:
		pool, err := db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		if err := db.ApplyMigrations(ctx, pool, log); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("migrate: %w", err)
		}
		log.Info("using postgres row source")
		return db.NewStore(pool), pool.Close, nil

	default:
		return nil, nil, fmt.Errorf("unknown row source %q", cfg.RowSource)
	}
}
