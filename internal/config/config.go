package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env"
)

// Supported record stores.
const (
	StoreMongo    = "mongo"
	StorePostgres = "postgres"
	StoreSQLite   = "sqlite"
	StoreMemory   = "memory"
)

// Config is the process configuration read from the environment (after godotenv
// has loaded any .env file).
type Config struct {
	Port string `env:"PORT" envDefault:"8080"`

	RecordStore string `env:"RECORD_STORE" envDefault:"mongo"`
	MongoURI    string `env:"MONGODB_URI" envDefault:"mongodb://localhost:27017"`
	MongoDB     string `env:"MONGODB_DATABASE" envDefault:"parcels"`
	DatabaseURL string `env:"DATABASE_URL"`
	SQLitePath  string `env:"SQLITE_PATH" envDefault:"data/parcels.db"`

	// Batch cache is enabled when RedisAddr is set.
	RedisAddr        string `env:"REDIS_ADDR"`
	RedisPassword    string `env:"REDIS_PASSWORD"`
	RedisDB          int    `env:"REDIS_DB" envDefault:"0"`
	BatchCacheTTLSec int    `env:"BATCH_CACHE_TTL_SECONDS" envDefault:"300"`
	// Local SQLite batch cache, used when no Redis is configured.
	BatchCachePath string `env:"BATCH_CACHE_SQLITE_PATH"`

	RulesPath string `env:"RULES_PATH"`

	RateLimitRPS   int `env:"RATE_LIMIT_RPS" envDefault:"20"`
	RateLimitBurst int `env:"RATE_LIMIT_BURST" envDefault:"40"`

	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	LogFile  string `env:"LOG_FILE"`
	LogJSON  bool   `env:"LOG_JSON" envDefault:"false"`

	// Seed data for the memory store and cmd/dbtool.
	SeedPath string `env:"SEED_PATH" envDefault:"data/seeds/parcels.json"`
	SeedDate string `env:"SEED_DATE"`
}

// Load parses the environment into a Config and validates it.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: parse env: %w", err)
	}
	cfg.RecordStore = strings.ToLower(strings.TrimSpace(cfg.RecordStore))

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.RecordStore {
	case StoreMongo:
		if c.MongoURI == "" || c.MongoDB == "" {
			return fmt.Errorf("MONGODB_URI and MONGODB_DATABASE are required for the mongo store")
		}
	case StorePostgres:
		if strings.TrimSpace(c.DatabaseURL) == "" {
			return fmt.Errorf("DATABASE_URL is required for the postgres store")
		}
	case StoreSQLite:
		if c.SQLitePath == "" {
			return fmt.Errorf("SQLITE_PATH is required for the sqlite store")
		}
	case StoreMemory:
	default:
		return fmt.Errorf("RECORD_STORE %q unknown: want mongo|postgres|sqlite|memory", c.RecordStore)
	}

	if c.BatchCacheTTLSec < 0 {
		return fmt.Errorf("BATCH_CACHE_TTL_SECONDS must not be negative")
	}
	if c.RateLimitRPS < 0 || c.RateLimitBurst < 0 {
		return fmt.Errorf("RATE_LIMIT_RPS and RATE_LIMIT_BURST must not be negative")
	}
	return nil
}

func (c *Config) BatchCacheTTL() time.Duration {
	return time.Duration(c.BatchCacheTTLSec) * time.Second
}

// Get returns the environment value for key, or fallback when it is unset.
func Get(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
