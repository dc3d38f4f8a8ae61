package config

import (
	"fmt"
	"time"
)

// ObservabilityConfig groups configuration for telemetry and runtime
// visibility: structured logging and the optional New Relic agent.
//
// It is embedded under Config.Observability and optional at the root; if
// omitted, DefaultObservabilityConfig is injected.
type ObservabilityConfig struct {
	// ServiceName identifies this service in logs/traces. Forced at load
	// time so nobody configures it into chaos.
	ServiceName string `koanf:"service_name"`

	// Environment labels telemetry by environment (local, production, ...).
	Environment string `koanf:"environment"`

	// Logging controls structured logger behavior.
	Logging LoggingConfig `koanf:"logging"`

	// NewRelic controls APM and tracing. An empty license key disables
	// the agent entirely.
	NewRelic NewRelicConfig `koanf:"new_relic"`
}

// LoggingConfig holds application logging configuration.
type LoggingConfig struct {
	// Level is the verbosity threshold (debug/info/warn/error).
	Level string `koanf:"level"`

	// Format selects the output format: "json" or "console".
	Format string `koanf:"format"`

	// SlowQueryThreshold is the duration beyond which queries are logged
	// as slow. Supply parseable duration strings like "250ms".
	SlowQueryThreshold time.Duration `koanf:"slow_query_threshold"`
}

// NewRelicConfig holds configuration for the New Relic agent.
type NewRelicConfig struct {
	// LicenseKey is the ingest key. Empty means "not configured": the
	// application runs with all New Relic integration as no-ops.
	LicenseKey string `koanf:"license_key"`

	// AppLogForwardingEnabled forwards application logs to New Relic.
	AppLogForwardingEnabled bool `koanf:"app_log_forwarding_enabled"`

	// DistributedTracingEnabled enables cross-service trace propagation.
	DistributedTracingEnabled bool `koanf:"distributed_tracing_enabled"`
}

// validLogLevels are the accepted values for LoggingConfig.Level.
var validLogLevels = map[string]bool{
	"trace": true,
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// Validate checks the observability block for values the rest of the
// application cannot work with.
func (c *ObservabilityConfig) Validate() error {
	if c.Logging.Level != "" && !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("invalid log level %q", c.Logging.Level)
	}
	if c.Logging.Format != "" && c.Logging.Format != "json" && c.Logging.Format != "console" {
		return fmt.Errorf("invalid log format %q", c.Logging.Format)
	}
	return nil
}

// DefaultObservabilityConfig provides defaults sensible for local
// development: console logs at info level and no APM agent.
func DefaultObservabilityConfig() *ObservabilityConfig {
	return &ObservabilityConfig{
		Logging: LoggingConfig{
			Level:              "info",
			Format:             "console",
			SlowQueryThreshold: 250 * time.Millisecond,
		},
	}
}
