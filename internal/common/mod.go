package common

import (
	"strconv"
	"strings"
	"time"

	"florist-api-io/api/pkg/util"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

var Validate = validator.New()

const (
	REQUEST_TIMEOUT_SECS       = 15 * time.Second
	CATALOG_REQUEST_TIMEOUT    = 10 * time.Second
	CART_SNAPSHOT_EXPIRATION   = 30 * 24 * time.Hour
	DEFAULT_CATALOG_CACHE_TTL  = 5 * time.Minute
	DEFAULT_SESSION_CACHE_SIZE = 10000
	DEFAULT_RATE_LIMIT         = 20
)

// Cart store backends.
const (
	StoreMemory = "memory"
	StoreRedis  = "redis"
	StoreMongo  = "mongo"
)

type Config struct {
	Port             string
	GinMode          string
	CatalogAPIURL    string
	CartStore        string
	DatabaseURL      string
	DatabaseName     string
	RedisURL         string
	SessionSecret    string
	AdminToken       string
	RateLimit        int
	CatalogCacheTTL  time.Duration
	SessionCacheSize int
}

// LoadConfig reads the service configuration from the environment (and .env).
func LoadConfig() (Config, error) {
	cfg := Config{
		Port:             withDefault(util.LoadEnvFor("PORT"), "8080"),
		GinMode:          withDefault(util.LoadEnvFor("GIN_MODE"), "debug"),
		CatalogAPIURL:    util.LoadEnvFor("CATALOG_API_URL"),
		CartStore:        strings.ToLower(withDefault(util.LoadEnvFor("CART_STORE"), StoreMemory)),
		DatabaseURL:      util.LoadEnvFor("DATABASE_URL"),
		DatabaseName:     withDefault(util.LoadEnvFor("DB_NAME"), "florist"),
		RedisURL:         util.LoadEnvFor("REDIS_URL"),
		SessionSecret:    util.LoadEnvFor("SESSION_SECRET"),
		AdminToken:       util.LoadEnvFor("ADMIN_TOKEN"),
		RateLimit:        DEFAULT_RATE_LIMIT,
		CatalogCacheTTL:  DEFAULT_CATALOG_CACHE_TTL,
		SessionCacheSize: DEFAULT_SESSION_CACHE_SIZE,
	}

	if v := util.LoadEnvFor("RATE_LIMIT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return Config{}, errors.Errorf("RATE_LIMIT must be a positive integer, got %q", v)
		}
		cfg.RateLimit = n
	}
	if v := util.LoadEnvFor("CATALOG_CACHE_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return Config{}, errors.Errorf("CATALOG_CACHE_TTL must be a positive duration, got %q", v)
		}
		cfg.CatalogCacheTTL = d
	}
	if v := util.LoadEnvFor("SESSION_CACHE_SIZE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return Config{}, errors.Errorf("SESSION_CACHE_SIZE must be a positive integer, got %q", v)
		}
		cfg.SessionCacheSize = n
	}

	return cfg, cfg.validate()
}

func (c Config) validate() error {
	if c.CatalogAPIURL == "" {
		return errors.New("CATALOG_API_URL is required")
	}
	switch c.CartStore {
	case StoreMemory:
	case StoreRedis:
		if c.RedisURL == "" {
			return errors.New("CART_STORE=redis requires REDIS_URL")
		}
	case StoreMongo:
		if c.DatabaseURL == "" {
			return errors.New("CART_STORE=mongo requires DATABASE_URL")
		}
	default:
		return errors.Errorf("unknown CART_STORE %q", c.CartStore)
	}
	return nil
}

func withDefault(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
