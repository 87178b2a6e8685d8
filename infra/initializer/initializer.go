// Package initializer builds the runtime dependencies of the server and the
// CLI from the loaded configuration.
package initializer

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/amirasaad/minibank/infra"
	"github.com/amirasaad/minibank/infra/cache"
	"github.com/amirasaad/minibank/infra/provider/cbr"
	infra_repository "github.com/amirasaad/minibank/infra/repository"
	"github.com/amirasaad/minibank/pkg/app"
	"github.com/amirasaad/minibank/pkg/config"
	"github.com/amirasaad/minibank/pkg/provider/exchange"
	"github.com/redis/go-redis/v9"
)

// pruneInterval is how often the in-memory rate cache drops expired rates.
const pruneInterval = 5 * time.Minute

// InitializeDependencies initializes all the application dependencies
func InitializeDependencies(ctx context.Context, cfg *config.App) (
	deps *app.Deps,
	err error,
) {
	deps = &app.Deps{}
	logger := setupLogger(cfg.Log)
	deps.Logger = logger

	db, err := infra.NewDBConnection(cfg.DB, cfg.Env)
	if err != nil {
		logger.Error("Failed to initialize database", "error", err)
		return nil, err
	}
	if cfg.DB.Migrate {
		if err := infra.Migrate(db); err != nil {
			logger.Error("Failed to migrate database", "error", err)
			return nil, fmt.Errorf("failed to migrate database: %w", err)
		}
		logger.Info("Database migrated")
	}
	deps.Uow = infra_repository.NewUoW(db)

	deps.RateSource, err = NewRateSource(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize exchange rate source: %w", err)
	}
	return deps, nil
}

// NewRateSource creates the CBR client, wrapped in the configured cache.
func NewRateSource(ctx context.Context, cfg *config.App, logger *slog.Logger) (exchange.RateSource, error) {
	var source exchange.RateSource = cbr.New(cfg.ExchangeRateProviders.Cbr, logger)

	cacheCfg := cfg.ExchangeRateCache
	if cacheCfg == nil || !cacheCfg.Enabled {
		logger.Info("Exchange rate cache disabled")
		return source, nil
	}

	var store cache.RateStore
	switch cacheCfg.Backend {
	case config.CacheBackendRedis:
		client, err := newRedisClient(cfg.Redis)
		if err != nil {
			return nil, fmt.Errorf("failed to create redis rate cache: %w", err)
		}
		store = cache.NewRedisCache(client, cfg.Redis.KeyPrefix+cacheCfg.Prefix, logger)
	default:
		memory := cache.NewMemoryCache()
		memory.StartPruning(ctx, pruneInterval)
		store = memory
	}

	logger.Info("Exchange rate cache enabled", "backend", cacheCfg.Backend, "ttl", cacheCfg.TTL)
	return cache.NewCachingRateSource(source, store, cacheCfg.TTL, logger), nil
}

func newRedisClient(cfg *config.Redis) (*redis.Client, error) {
	opt, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}
	opt.PoolSize = cfg.PoolSize
	opt.DialTimeout = cfg.DialTimeout
	opt.ReadTimeout = cfg.ReadTimeout
	opt.WriteTimeout = cfg.WriteTimeout
	return redis.NewClient(opt), nil
}
