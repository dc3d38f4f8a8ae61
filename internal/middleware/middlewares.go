// Package middleware contains the Echo middleware stack: request
// correlation, locale negotiation, request-scoped logging, tracing, and
// the global error handler that funnels every failure into a consistent
// response.
package middleware

import (
	"github.com/newrelic/go-agent/v3/newrelic"

	"github.com/rvandam/usererr/internal/server"
)

// Middlewares groups all middleware components used by the HTTP server,
// so routing setup receives one wired object instead of many.
type Middlewares struct {
	// Global holds CORS, request logging, recovery, secure headers, and
	// the global error handler.
	Global *GlobalMiddlewares

	// ContextEnhancer enriches each request with a request-scoped logger.
	ContextEnhancer *ContextEnhancer

	// Locale negotiates the response language from Accept-Language.
	Locale *LocaleMiddleware

	// Tracing provides New Relic middleware and transaction helpers.
	Tracing *TracingMiddleware

	// Telemetry records domain-level custom events (e.g. user errors).
	Telemetry *TelemetryMiddleware
}

// NewMiddlewares constructs all middleware components from the
// application container. When New Relic is not configured, nrApp is nil
// and the tracing middleware degrades into a no-op.
func NewMiddlewares(s *server.Server) *Middlewares {
	var nrApp *newrelic.Application
	if s.LoggerService != nil {
		nrApp = s.LoggerService.GetApplication()
	}

	telemetry := NewTelemetryMiddleware(s)

	return &Middlewares{
		Global:          NewGlobalMiddlewares(s, telemetry),
		ContextEnhancer: NewContextEnhancer(s),
		Locale:          NewLocaleMiddleware(s.Translator),
		Tracing:         NewTracingMiddleware(s, nrApp),
		Telemetry:       telemetry,
	}
}
