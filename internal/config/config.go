// Package config manages environment-based configuration.
//
// It loads env vars (optionally from a .env file via godotenv autoload),
// maps them into structured Go types with koanf, validates that required
// values are present so the app fails fast, and fills in defaults for the
// optional blocks.
//
// Env vars use the USERERR_ prefix with "." nesting:
//
//	USERERR_SERVER.PORT        -> Config.Server.Port
//	USERERR_USER_ERROR.PREFIX  -> Config.UserError.Prefix
package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	// Side-effect import: loads a .env file into the process environment
	// before anything reads env vars.
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// envPrefix is the prefix every configuration env var must carry.
const envPrefix = "USERERR_"

// Config is the root configuration object for the application.
//
// The koanf tags name the key each field maps from; validate tags are
// enforced by go-playground/validator. Observability is a pointer because
// it is optional; defaults are injected when absent.
type Config struct {
	Primary       Primary              `koanf:"primary" validate:"required"`
	Server        ServerConfig         `koanf:"server" validate:"required"`
	Database      DatabaseConfig       `koanf:"database" validate:"required"`
	UserError     UserErrorConfig      `koanf:"user_error"`
	I18n          I18nConfig           `koanf:"i18n"`
	Observability *ObservabilityConfig `koanf:"observability"`
}

// Primary holds top-level information about the runtime environment.
type Primary struct {
	Env string `koanf:"env" validate:"required"`
}

// ServerConfig groups settings for the HTTP server runtime.
// Timeouts are expressed in seconds.
type ServerConfig struct {
	Port               string   `koanf:"port" validate:"required"`
	ReadTimeout        int      `koanf:"read_timeout" validate:"required"`
	WriteTimeout       int      `koanf:"write_timeout" validate:"required"`
	IdleTimeout        int      `koanf:"idle_timeout" validate:"required"`
	CORSAllowedOrigins []string `koanf:"cors_allowed_origins" validate:"required"`
}

// DatabaseConfig contains PostgreSQL connection parameters and pool tuning.
type DatabaseConfig struct {
	Host            string `koanf:"host" validate:"required"`
	Port            int    `koanf:"port" validate:"required"`
	User            string `koanf:"user" validate:"required"`
	Password        string `koanf:"password" validate:"required"`
	Name            string `koanf:"name" validate:"required"`
	SSLMode         string `koanf:"ssl_mode" validate:"required"`
	MaxOpenConns    int    `koanf:"max_open_conns" validate:"required"`
	MaxIdleConns    int    `koanf:"max_idle_conns" validate:"required"`
	ConnMaxLifetime int    `koanf:"conn_max_lifetime" validate:"required"`
	ConnMaxIdleTime int    `koanf:"conn_max_idle_time" validate:"required"`
}

// UserErrorConfig controls interception of user errors raised by
// database routines.
type UserErrorConfig struct {
	// Prefix marks a driver error message as a user error. Empty means
	// the conventional "app-exception: ".
	Prefix string `koanf:"prefix"`

	// Codes lists the SQLSTATE values inspected for user errors. Empty
	// means P0001 (RAISE EXCEPTION) only.
	Codes []string `koanf:"codes"`
}

// I18nConfig controls translation catalogs and locale negotiation.
type I18nConfig struct {
	// DefaultLocale is the fallback locale for catalog lookups and the
	// preferred match for Accept-Language negotiation. Defaults to "en".
	DefaultLocale string `koanf:"default_locale"`

	// CatalogDir optionally points at a directory of per-locale JSON
	// catalogs (en.json, de.json, ...). Empty means built-ins only.
	CatalogDir string `koanf:"catalog_dir"`
}

// Load reads, validates and defaults the full application configuration.
func Load() (*Config, error) {
	k := koanf.New(".")

	// Only env vars carrying the prefix are read; the prefix is stripped
	// and the remainder lowercased to form the koanf key path.
	err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("loading environment variables: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	validate := validator.New()
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	if cfg.I18n.DefaultLocale == "" {
		cfg.I18n.DefaultLocale = "en"
	}

	if cfg.Observability == nil {
		cfg.Observability = DefaultObservabilityConfig()
	}

	// Service name and environment are forced so telemetry sees
	// consistent naming regardless of what was configured.
	cfg.Observability.ServiceName = "usererr"
	cfg.Observability.Environment = cfg.Primary.Env

	if err := cfg.Observability.Validate(); err != nil {
		return nil, fmt.Errorf("validating observability config: %w", err)
	}

	return cfg, nil
}
