package core

import (
	"context"
	"fmt"
	"maturity/internal/config"
	"maturity/internal/infra/persistence/memory"
	"maturity/internal/infra/persistence/postgres"
	"maturity/internal/infra/persistence/sqlite"
	"maturity/pkg/domain"
)

// StateStorage is the persistence port the Store writes through.
type StateStorage = domain.StateStorage

// OpenStorage selects a state backend from cfg. Defaults to sqlite when the
// driver is empty.
func OpenStorage(ctx context.Context, cfg config.StorageConfig) (StateStorage, error) {
	driver := cfg.Driver
	if driver == "" {
		driver = config.StorageSQLite
	}
	switch driver {
	case config.StorageMemory:
		return memory.NewStore(), nil
	case config.StorageSQLite:
		store, err := sqlite.NewStore(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		return store, nil
	case config.StoragePostgres:
		store, err := postgres.NewStore(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, err
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unknown storage driver %s", driver)
	}
}
