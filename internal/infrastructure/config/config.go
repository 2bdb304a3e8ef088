package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string `env:"PORT,      default=8080"`
	Env       string `env:"ENV,       default=development"`
	JWTSecret string `env:"JWT_SECRET"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`

	// TimestampUTC selects the zone wire datetimes are interpreted in.
	// Defaults to UTC; set to false to use the host's local zone.
	TimestampUTC bool `env:"TIMESTAMP_UTC, default=true"`

	// SyncWorkers sizes the cache-invalidation dispatcher.
	SyncWorkers int `env:"SYNC_WORKERS, default=4"`

	SQLite SQLiteConfig
	Redis  RedisConfig
}

type SQLiteConfig struct {
	Path string `env:"SQLITE_PATH, default=tracker.db"`
}

type RedisConfig struct {
	// Addr left empty disables the edit-summary cache entirely.
	Addr string `env:"REDIS_ADDR"`
	DB   int    `env:"REDIS_DB, default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
