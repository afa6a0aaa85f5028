package factory

import (
	"fmt"
	"os"

	"github.com/stefvuck/trailhead/internal/storage"
	"github.com/stefvuck/trailhead/internal/storage/pg"
)

type StorageConfig struct {
	storage.Type
	Pg *pg.PoolConfig
}

// LoadEnv reads the storage configuration from the environment. An unset
// STORAGE_TYPE defaults to the in-memory store so the service can run
// without a database.
func LoadEnv() (*StorageConfig, error) {
	storageType := storage.Type(os.Getenv("STORAGE_TYPE"))
	if storageType == "" {
		storageType = storage.InMem
	}
	if storageType != storage.PG && storageType != storage.InMem {
		return nil, fmt.Errorf(
			"invalid STORAGE_TYPE environment variable value: %s, expected one of %v",
			storageType,
			[]storage.Type{storage.PG, storage.InMem})
	}

	var pgCfg *pg.PoolConfig
	if storageType == storage.PG {
		pgCfg = &pg.PoolConfig{
			ConnStr: os.Getenv("PG_CONNECTION_STRING"),
		}
		if pgCfg.ConnStr == "" {
			return nil, fmt.Errorf("PG_CONNECTION_STRING is not set")
		}
	}

	return &StorageConfig{
		Type: storageType,
		Pg:   pgCfg,
	}, nil
}
