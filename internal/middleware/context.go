package middleware

import (
	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/rs/zerolog"

	"github.com/rvandam/usererr/internal/logger"
	"github.com/rvandam/usererr/internal/server"
)

// LoggerKey is the echo context key for the request-scoped logger.
const LoggerKey = "logger"

// ContextEnhancer builds a request-scoped logger for every request so
// downstream code logs with the request id and trace metadata attached.
type ContextEnhancer struct {
	server *server.Server
}

func NewContextEnhancer(s *server.Server) *ContextEnhancer {
	return &ContextEnhancer{server: s}
}

// Middleware stores an enriched logger on the echo context. When a New
// Relic transaction is active, trace and span ids are linked in so log
// lines correlate with traces.
func (ce *ContextEnhancer) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			reqLogger := ce.server.Logger.With().
				Str("request_id", GetRequestID(c)).
				Str("method", c.Request().Method).
				Str("path", c.Request().URL.Path).
				Logger()

			if txn := newrelic.FromContext(c.Request().Context()); txn != nil {
				reqLogger = logger.WithTraceContext(reqLogger, txn)
			}

			c.Set(LoggerKey, &reqLogger)

			return next(c)
		}
	}
}

// GetLogger returns the request-scoped logger, falling back to a
// disabled logger when the enhancer did not run (e.g. in tests).
func GetLogger(c echo.Context) *zerolog.Logger {
	if l, ok := c.Get(LoggerKey).(*zerolog.Logger); ok && l != nil {
		return l
	}
	disabled := zerolog.Nop()
	return &disabled
}
