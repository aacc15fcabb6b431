package repo

import (
	"context"
	"fmt"

	"contentportal/internal/domain"
	"contentportal/internal/infra"
)

// MigratingRepository is a content repository that can create its own schema.
type MigratingRepository interface {
	domain.ContentRepository
	Migrate(ctx context.Context) error
}

// Store is the configured repository together with its connection lifecycle.
type Store struct {
	Driver string
	Repo   MigratingRepository
	Ping   func(ctx context.Context) error
	Close  func()
}

// OpenStore connects the record store selected by cfg.StoreDriver.
func OpenStore(ctx context.Context, cfg *infra.Config, logger infra.Logger) (*Store, error) {
	switch cfg.StoreDriver {
	case infra.StoreDriverPostgres:
		pool, err := infra.NewDBPool(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return &Store{
			Driver: cfg.StoreDriver,
			Repo:   NewContentRepository(infra.NewSQLRunner(pool, logger)),
			Ping:   pool.Ping,
			Close:  pool.Close,
		}, nil
	case infra.StoreDriverSQLite:
		db, err := infra.OpenSQLite(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		return &Store{
			Driver: cfg.StoreDriver,
			Repo:   NewContentRepositorySQLite(infra.NewSQLiteRunner(db, logger)),
			Ping:   db.PingContext,
			Close:  func() { _ = db.Close() },
		}, nil
	default:
		return nil, fmt.Errorf("unsupported store driver %q", cfg.StoreDriver)
	}
}
