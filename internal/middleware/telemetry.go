package middleware

import (
	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/newrelic"

	"github.com/rvandam/usererr/internal/server"
)

// TelemetryMiddleware records domain-level custom events. Right now the
// only event of interest is a database-raised user error surfacing to a
// client, which is worth tracking separately from plain 4xx counts.
type TelemetryMiddleware struct {
	server *server.Server
}

func NewTelemetryMiddleware(s *server.Server) *TelemetryMiddleware {
	return &TelemetryMiddleware{server: s}
}

// RecordUserError emits a UserError custom event carrying the message
// key and locale, so translated business errors can be charted without
// log scraping. A nil agent makes this a no-op.
func (tm *TelemetryMiddleware) RecordUserError(c echo.Context, key string, locale string) {
	var app *newrelic.Application
	if tm.server != nil && tm.server.LoggerService != nil {
		app = tm.server.LoggerService.GetApplication()
	}
	if app == nil {
		return
	}

	app.RecordCustomEvent("UserError", map[string]interface{}{
		"key":        key,
		"locale":     locale,
		"request_id": GetRequestID(c),
		"path":       c.Request().URL.Path,
	})
}
