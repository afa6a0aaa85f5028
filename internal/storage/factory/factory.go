package factory

import (
	"context"
	"fmt"

	"github.com/stefvuck/trailhead/internal/storage"
	"github.com/stefvuck/trailhead/internal/storage/in_mem"
	"github.com/stefvuck/trailhead/internal/storage/pg"
)

// NewStore creates a storage.Store based on the configured storage type.
func NewStore(ctx context.Context, cfg *StorageConfig) (storage.Store, error) {
	switch cfg.Type {
	case storage.PG:
		pool, err := pg.NewConnectionPool(ctx, *cfg.Pg)
		if err != nil {
			return nil, fmt.Errorf("failed to create PostgreSQL connection pool: %w", err)
		}
		return pg.NewStore(pool)

	case storage.InMem:
		return in_mem.NewStore(), nil

	default:
		return nil, fmt.Errorf("%w: %s", storage.ErrUnsupportedStore, cfg.Type)
	}
}
