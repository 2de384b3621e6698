// Package config loads application configuration from the environment, with
// an optional .env file for local development.
package config

import (
	"fmt"
	"strings"

	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
)

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	Host string `env:"SERVER_HOST,default=0.0.0.0"`
	Port int    `env:"SERVER_PORT,default=5000"`
}

// DataConfig holds flat-file store settings.
type DataConfig struct {
	Dir string `env:"DATA_DIR,default=data"`
}

// DatabaseConfig holds the optional PostgreSQL backend settings. When DSN is
// empty the flat-file store is used.
type DatabaseConfig struct {
	DSN             string `env:"DATABASE_DSN,default="`
	MaxOpenConns    int    `env:"DATABASE_MAX_OPEN_CONNS,default=10"`
	MaxIdleConns    int    `env:"DATABASE_MAX_IDLE_CONNS,default=5"`
	ConnMaxLifetime int    `env:"DATABASE_CONN_MAX_LIFETIME,default=300"` // seconds
}

// HTTPConfig holds middleware settings.
type HTTPConfig struct {
	AllowedOrigins string `env:"CORS_ALLOWED_ORIGINS,default=*"`
	RateLimitRPS   int    `env:"RATE_LIMIT_RPS,default=50"`
	RateLimitBurst int    `env:"RATE_LIMIT_BURST,default=100"`
}

// LoggingConfig holds log settings.
type LoggingConfig struct {
	Level      string `env:"LOG_LEVEL,default=info"`
	Format     string `env:"LOG_FORMAT,default=json"`
	Output     string `env:"LOG_OUTPUT,default=stdout"`
	FilePrefix string `env:"LOG_FILE_PREFIX,default=shoplite"`
}

// Config is the root application configuration.
type Config struct {
	Server   ServerConfig
	Data     DataConfig
	Database DatabaseConfig
	HTTP     HTTPConfig
	Logging  LoggingConfig
}

// Load reads configuration from the environment. A .env file in the working
// directory is applied first if present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envdecode.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("decode environment: %w", err)
	}
	return &cfg, nil
}

// Origins returns the configured CORS origins as a list.
func (c HTTPConfig) Origins() []string {
	parts := strings.Split(c.AllowedOrigins, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}
