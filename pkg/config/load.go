package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Load reads the configuration from the environment. Each envFilePath is
// looked up in the working directory and its parents; the first one found is
// loaded into the environment first. Without paths, ./.env is tried.
func Load(envFilePath ...string) (*App, error) {
	logger := slog.Default()

	for _, path := range envFilePath {
		foundPath, err := FindEnvTest(path)
		if err != nil {
			logger.Debug("Environment file not found", "path", path)
			continue
		}
		if err := godotenv.Load(foundPath); err != nil {
			logger.Error("Failed to load environment file", "path", foundPath, "error", err)
			continue
		}
		logger.Info("Environment loaded from file", "path", foundPath)
		return loadFromEnv()
	}

	if err := godotenv.Load(); err != nil {
		logger.Debug("No .env file found, using system environment variables")
	}
	return loadFromEnv()
}

func loadFromEnv() (*App, error) {
	var cfg App
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	slog.Default().Info("App config loaded",
		"env", cfg.Env,
		"db", maskValue(cfg.DB.Url),
		"rate_limit_max_requests", cfg.RateLimit.MaxRequests,
		"rate_limit_window", cfg.RateLimit.Window,
		"exchange_cache_backend", cfg.ExchangeRateCache.Backend,
		"exchange_cache_ttl", cfg.ExchangeRateCache.TTL,
		"cbr_url", cfg.ExchangeRateProviders.Cbr.Url,
		"commission_rate", cfg.Fee.CommissionRate,
	)
	return &cfg, nil
}

func (c *App) validate() error {
	c.ExchangeRateCache.Backend = strings.ToLower(c.ExchangeRateCache.Backend)
	switch c.ExchangeRateCache.Backend {
	case CacheBackendMemory, CacheBackendRedis:
	default:
		return fmt.Errorf("EXCHANGE_RATE_CACHE_BACKEND: unknown backend %q", c.ExchangeRateCache.Backend)
	}
	if c.Fee.CommissionRate < 0 || c.Fee.CommissionRate >= 1 {
		return fmt.Errorf("FEE_COMMISSION_RATE: %v is outside [0, 1)", c.Fee.CommissionRate)
	}
	return nil
}

func maskValue(key string) string {
	if len(key) <= 6 {
		return "****"
	}
	return key[:2] + "****" + key[len(key)-4:]
}
