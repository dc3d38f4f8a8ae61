package middleware

import (
	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/integrations/nrecho-v4"
	"github.com/newrelic/go-agent/v3/integrations/nrpkgerrors"
	"github.com/newrelic/go-agent/v3/newrelic"

	"github.com/rvandam/usererr/internal/server"
)

// TracingMiddleware wires New Relic transaction tracing into the
// request path. When the agent is not configured it degrades into a
// no-op so local development needs no license key.
type TracingMiddleware struct {
	server *server.Server
	nrApp  *newrelic.Application
}

func NewTracingMiddleware(s *server.Server, nrApp *newrelic.Application) *TracingMiddleware {
	return &TracingMiddleware{server: s, nrApp: nrApp}
}

// Middleware returns the nrecho transaction middleware, or a
// passthrough when the agent is absent.
func (tm *TracingMiddleware) Middleware() echo.MiddlewareFunc {
	if tm.nrApp == nil {
		return func(next echo.HandlerFunc) echo.HandlerFunc {
			return next
		}
	}
	return nrecho.Middleware(tm.nrApp)
}

// EnhanceTracing attaches request metadata to the active transaction.
func (tm *TracingMiddleware) EnhanceTracing() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			txn := newrelic.FromContext(c.Request().Context())
			if txn != nil {
				txn.AddAttribute("request.id", GetRequestID(c))
				txn.AddAttribute("request.locale", GetLocale(c).String())
			}
			return next(c)
		}
	}
}

// NoticeError reports an error against the current transaction with
// stack trace attribution preserved.
func NoticeError(c echo.Context, err error) {
	if err == nil {
		return
	}
	if txn := newrelic.FromContext(c.Request().Context()); txn != nil {
		txn.NoticeError(nrpkgerrors.Wrap(err))
	}
}
