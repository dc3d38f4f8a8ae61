// Package logger configures the application's logging and observability.
//
// It builds the zerolog root logger (console or JSON), wires error stack
// marshaling, and owns the optional New Relic application used for APM,
// tracing and log forwarding.
package logger

import (
	"fmt"
	"io"
	"os"

	"github.com/jackc/pgx/v5/tracelog"
	"github.com/newrelic/go-agent/v3/integrations/logcontext-v2/zerologWriter"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/pkgerrors"

	"github.com/rvandam/usererr/internal/config"
)

// LoggerService wraps the New Relic application instance. When no license
// key is configured the wrapped application is nil and every integration
// that asks for it degrades into a no-op.
type LoggerService struct {
	nrApp *newrelic.Application
}

// GetApplication returns the New Relic application, or nil when the agent
// is disabled.
func (ls *LoggerService) GetApplication() *newrelic.Application {
	if ls == nil {
		return nil
	}
	return ls.nrApp
}

// New builds the application root logger and the observability service.
//
// With a New Relic license key and log forwarding enabled, log output is
// routed through the zerologWriter integration so entries carry trace
// linking metadata. Without one, output goes straight to stdout in the
// configured format.
func New(cfg *config.Config) (*zerolog.Logger, *LoggerService, error) {
	obs := cfg.Observability

	level, err := zerolog.ParseLevel(obs.Logging.Level)
	if err != nil || obs.Logging.Level == "" {
		level = zerolog.InfoLevel
	}

	// Stack marshaling for errors wrapped with github.com/pkg/errors.
	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack

	service := &LoggerService{}
	if key := obs.NewRelic.LicenseKey; key != "" {
		app, err := newrelic.NewApplication(
			newrelic.ConfigAppName(obs.ServiceName),
			newrelic.ConfigLicense(key),
			newrelic.ConfigAppLogForwardingEnabled(obs.NewRelic.AppLogForwardingEnabled),
			newrelic.ConfigDistributedTracerEnabled(obs.NewRelic.DistributedTracingEnabled),
		)
		if err != nil {
			return nil, nil, fmt.Errorf("initializing new relic: %w", err)
		}
		service.nrApp = app
	}

	var out io.Writer = os.Stdout
	if obs.Logging.Format == "console" {
		out = zerolog.ConsoleWriter{Out: os.Stdout}
	}
	if service.nrApp != nil && obs.NewRelic.AppLogForwardingEnabled {
		w := zerologWriter.New(out, service.nrApp)
		out = &w
	}

	log := zerolog.New(out).
		Level(level).
		With().
		Timestamp().
		Str("service", obs.ServiceName).
		Str("env", obs.Environment).
		Logger()

	return &log, service, nil
}

// WithTraceContext returns a copy of l carrying the transaction's trace
// and span ids, so log lines correlate with distributed traces.
func WithTraceContext(l zerolog.Logger, txn *newrelic.Transaction) zerolog.Logger {
	if txn == nil {
		return l
	}
	md := txn.GetTraceMetadata()
	return l.With().
		Str("trace.id", md.TraceID).
		Str("span.id", md.SpanID).
		Logger()
}

// NewPgxLogger builds the logger used for SQL query logging in local
// environments. It always writes human-readable console output.
func NewPgxLogger(level zerolog.Level) zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().
		Timestamp().
		Str("component", "pgx").
		Logger()
}

// GetPgxTraceLogLevel translates the application log level into the pgx
// tracelog level.
func GetPgxTraceLogLevel(level zerolog.Level) tracelog.LogLevel {
	switch level {
	case zerolog.TraceLevel:
		return tracelog.LogLevelTrace
	case zerolog.DebugLevel:
		return tracelog.LogLevelDebug
	case zerolog.InfoLevel:
		return tracelog.LogLevelInfo
	case zerolog.WarnLevel:
		return tracelog.LogLevelWarn
	case zerolog.ErrorLevel:
		return tracelog.LogLevelError
	default:
		return tracelog.LogLevelNone
	}
}
