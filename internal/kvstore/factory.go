package kvstore

import (
	"context"

	"speakroots/internal/config"
	"speakroots/internal/database"
	"speakroots/internal/observability"
	contextutils "speakroots/internal/utils"
)

// Open builds the backend selected by cfg.Store.Backend and wraps it with tracing
func Open(ctx context.Context, cfg *config.Config, logger *observability.Logger) (Store, error) {
	opts := Options{TTL: cfg.Store.TTL}

	var (
		store Store
		err   error
	)
	switch cfg.Store.Backend {
	case "", config.StoreMemory:
		store = NewMemory(opts)
	case config.StoreBadger:
		store, err = OpenBadger(cfg.Store.Path, opts)
	case config.StoreSQLite:
		store, err = OpenSQLite(ctx, cfg.Store.Path, opts)
	case config.StoreRedis:
		client, connErr := ConnectRedis(ctx, cfg.Redis)
		if connErr != nil {
			return nil, connErr
		}
		store = NewRedis(client, opts)
	case config.StorePostgres:
		db, dbErr := database.NewManager(logger).InitDB(ctx, cfg.Database)
		if dbErr != nil {
			return nil, dbErr
		}
		store = NewPostgres(db, opts)
	default:
		return nil, contextutils.InvalidInputf("unknown store backend %q", cfg.Store.Backend)
	}
	if err != nil {
		return nil, err
	}

	backend := cfg.Store.Backend
	if backend == "" {
		backend = config.StoreMemory
	}
	logger.Info(ctx, "Key-value store ready", map[string]interface{}{
		"backend": backend,
		"path":    cfg.Store.Path,
		"ttl":     cfg.Store.TTL.String(),
	})
	return NewTraced(store, backend, logger), nil
}
