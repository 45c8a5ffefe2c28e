package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix namespaces every terminal environment variable.
const EnvPrefix = "cointerm"

const (
	EnvCatalogBaseURL      = "COINTERM_CATALOG_BASE_URL"
	EnvCatalogFetchTimeout = "COINTERM_CATALOG_FETCH_TIMEOUT"
)

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

type Config struct {
	App     AppConfig
	Catalog CatalogConfig
	Redis   RedisConfig
	Login   LoginRateLimitConfig
	QR      QRConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Catalog.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"COINTERM_APP_ENV" default:"dev"`
	Port         string `envconfig:"COINTERM_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"COINTERM_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"COINTERM_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// CatalogConfig points the terminal at the remote partner/catalog service.
type CatalogConfig struct {
	BaseURL      string        `envconfig:"COINTERM_CATALOG_BASE_URL" default:"https://api.yessgo.org/api/v1"`
	FetchTimeout time.Duration `envconfig:"COINTERM_CATALOG_FETCH_TIMEOUT" default:"5s"`
}

func (c CatalogConfig) validate() error {
	if strings.TrimSpace(c.BaseURL) == "" {
		return fmt.Errorf("%s is required", EnvCatalogBaseURL)
	}
	if c.FetchTimeout <= 0 {
		return fmt.Errorf("%s must be positive", EnvCatalogFetchTimeout)
	}
	return nil
}

// RedisConfig is optional; an empty URL and address disables every
// redis-backed concern (login rate limiting).
type RedisConfig struct {
	URL          string        `envconfig:"COINTERM_REDIS_URL"`
	Address      string        `envconfig:"COINTERM_REDIS_ADDR"`
	Password     string        `envconfig:"COINTERM_REDIS_PASSWORD"`
	DB           int           `envconfig:"COINTERM_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"COINTERM_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"COINTERM_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"COINTERM_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"COINTERM_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"COINTERM_REDIS_WRITE_TIMEOUT" default:"5s"`
}

func (r RedisConfig) Enabled() bool {
	return r.URL != "" || r.Address != ""
}

type LoginRateLimitConfig struct {
	Window       time.Duration `envconfig:"COINTERM_LOGIN_RATE_LIMIT_WINDOW" default:"1m"`
	IPLimit      int           `envconfig:"COINTERM_LOGIN_RATE_LIMIT_IP_LIMIT" default:"20"`
	PartnerLimit int           `envconfig:"COINTERM_LOGIN_RATE_LIMIT_PARTNER_LIMIT" default:"5"`
}

// QRConfig controls the rendered code; the defaults keep the quiet zone
// and module density scannable by a phone camera at close range.
type QRConfig struct {
	SizePixels int `envconfig:"COINTERM_QR_SIZE_PIXELS" default:"512"`
}
