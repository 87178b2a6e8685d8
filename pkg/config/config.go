package config

import (
	"time"
)

type DB struct {
	Url             string        `envconfig:"URL"`
	MaxOpenConns    int           `envconfig:"MAX_OPEN_CONNS" default:"25"`
	MaxIdleConns    int           `envconfig:"MAX_IDLE_CONNS" default:"25"`
	ConnMaxLifetime time.Duration `envconfig:"CONN_MAX_LIFETIME" default:"1h"`
	Migrate         bool          `envconfig:"MIGRATE" default:"true"`
}

type Redis struct {
	URL          string        `envconfig:"URL" default:"redis://localhost:6379/0"`
	KeyPrefix    string        `envconfig:"KEY_PREFIX" default:""`
	PoolSize     int           `envconfig:"POOL_SIZE" default:"10"`
	DialTimeout  time.Duration `envconfig:"DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"READ_TIMEOUT" default:"3s"`
	WriteTimeout time.Duration `envconfig:"WRITE_TIMEOUT" default:"3s"`
}

type RateLimit struct {
	MaxRequests int           `envconfig:"MAX_REQUESTS" default:"100"`
	Window      time.Duration `envconfig:"WINDOW" default:"1m"`
}

// Cbr configures the Central Bank of Russia daily rates feed.
type Cbr struct {
	Url         string        `envconfig:"URL" default:"https://www.cbr-xml-daily.ru/daily_json.js"`
	HTTPTimeout time.Duration `envconfig:"HTTP_TIMEOUT" default:"10s"`
	MaxRetries  int           `envconfig:"MAX_RETRIES" default:"3"`
}

type ExchangeRateProviders struct {
	Cbr *Cbr `envconfig:"CBR"`
}

const (
	CacheBackendMemory = "memory"
	CacheBackendRedis  = "redis"
)

type ExchangeRateCache struct {
	Enabled bool          `envconfig:"ENABLED" default:"true"`
	TTL     time.Duration `envconfig:"TTL" default:"15m"`
	Prefix  string        `envconfig:"PREFIX" default:"exr:rate:"`
	Backend string        `envconfig:"BACKEND" default:"memory"`
}

type Fee struct {
	CommissionRate float64 `envconfig:"COMMISSION_RATE" default:"0.02"`
}

type Log struct {
	Level      int    `envconfig:"LEVEL" default:"0"`
	Format     string `envconfig:"FORMAT" default:"text"`
	TimeFormat string `envconfig:"TIME_FORMAT" default:"2006-01-02 15:04:05"`
	Prefix     string `envconfig:"PREFIX" default:"[minibank]"`
}

type Server struct {
	Scheme string `envconfig:"SCHEME" default:"http"`
	Host   string `envconfig:"HOST" default:"localhost"`
	Port   int    `envconfig:"PORT" default:"3000"`
}

type App struct {
	Env                   string                 `envconfig:"APP_ENV" default:"development"`
	Server                *Server                `envconfig:"SERVER"`
	Log                   *Log                   `envconfig:"LOG"`
	DB                    *DB                    `envconfig:"DATABASE"`
	ExchangeRateCache     *ExchangeRateCache     `envconfig:"EXCHANGE_RATE_CACHE"`
	ExchangeRateProviders *ExchangeRateProviders `envconfig:"EXCHANGE_RATE_PROVIDER"`
	Redis                 *Redis                 `envconfig:"REDIS"`
	RateLimit             *RateLimit             `envconfig:"RATE_LIMIT"`
	Fee                   *Fee                   `envconfig:"FEE"`
}
