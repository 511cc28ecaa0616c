/*
Package config loads runtime settings.

SOURCES (later wins):
  1. Defaults below
  2. Optional YAML config file (--config)
  3. .env file in the working directory (joho/godotenv)
  4. AWARD_* environment variables, e.g. AWARD_HTTP_ADDR=:9090
  5. Command-line flags (applied by the caller)

KEYS:
  http.addr               Listen address
  http.cors_origins       Allowed CORS origins
  db.driver               "sqlite" or "memory"
  db.path                 SQLite file path
  log.level               debug, info, warn, error
  metrics.enabled         Expose /metrics
  award.file              Award document overriding the embedded one
  award.schedule          Penalty schedule used when a request names none
  history.retention       How long calculation records are kept (0 keeps forever)
  history.prune_interval  How often the retention pruner runs
*/
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config is the resolved configuration.
type Config struct {
	HTTP struct {
		Addr        string   `mapstructure:"addr"`
		CORSOrigins []string `mapstructure:"cors_origins"`
	} `mapstructure:"http"`

	DB struct {
		Driver string `mapstructure:"driver"`
		Path   string `mapstructure:"path"`
	} `mapstructure:"db"`

	Log struct {
		Level string `mapstructure:"level"`
	} `mapstructure:"log"`

	Metrics struct {
		Enabled bool `mapstructure:"enabled"`
	} `mapstructure:"metrics"`

	Award struct {
		File     string `mapstructure:"file"`
		Schedule string `mapstructure:"schedule"`
	} `mapstructure:"award"`

	History struct {
		Retention     time.Duration `mapstructure:"retention"`
		PruneInterval time.Duration `mapstructure:"prune_interval"`
	} `mapstructure:"history"`
}

// Database drivers.
const (
	DriverSQLite = "sqlite"
	DriverMemory = "memory"
)

// EnvPrefix prefixes every environment variable.
const EnvPrefix = "AWARD"

func setDefaults(v *viper.Viper) {
	v.SetDefault("http.addr", ":8080")
	v.SetDefault("http.cors_origins", []string{"http://localhost:3000", "http://localhost:5173"})
	v.SetDefault("db.driver", DriverSQLite)
	v.SetDefault("db.path", "./award.db")
	v.SetDefault("log.level", "info")
	v.SetDefault("metrics.enabled", true)
	v.SetDefault("award.file", "")
	v.SetDefault("award.schedule", "")
	v.SetDefault("history.retention", 90*24*time.Hour)
	v.SetDefault("history.prune_interval", time.Hour)
}

// Load resolves the configuration. path may be empty.
func Load(path string) (Config, error) {
	// A missing .env is normal outside development.
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return c, fmt.Errorf("failed to decode config: %w", err)
	}
	return c, c.Validate()
}

// Validate rejects settings the server cannot start with.
func (c Config) Validate() error {
	var errs []error
	if c.HTTP.Addr == "" {
		errs = append(errs, errors.New("http.addr is required"))
	}
	switch c.DB.Driver {
	case DriverSQLite:
		if c.DB.Path == "" {
			errs = append(errs, errors.New("db.path is required for the sqlite driver"))
		}
	case DriverMemory:
	default:
		errs = append(errs, fmt.Errorf("db.driver %q is not sqlite or memory", c.DB.Driver))
	}
	if c.History.Retention < 0 {
		errs = append(errs, errors.New("history.retention must not be negative"))
	}
	if c.History.Retention > 0 && c.History.PruneInterval <= 0 {
		errs = append(errs, errors.New("history.prune_interval must be positive when retention is set"))
	}
	return errors.Join(errs...)
}
