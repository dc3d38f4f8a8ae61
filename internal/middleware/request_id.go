package middleware

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	// RequestIDHeader is the canonical header for request correlation.
	RequestIDHeader = "X-Request-ID"

	// RequestIDKey is the context key under which the id is stored.
	RequestIDKey = "request_id"
)

// RequestID attaches a correlation id to every request. An id supplied
// by the client is kept; otherwise a new UUID is generated. The id is
// stored on the echo context and echoed back in the response headers.
func RequestID() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			requestID := c.Request().Header.Get(RequestIDHeader)
			if requestID == "" {
				requestID = uuid.New().String()
			}

			c.Set(RequestIDKey, requestID)
			c.Response().Header().Set(RequestIDHeader, requestID)

			return next(c)
		}
	}
}

// GetRequestID returns the correlation id for the current request, or
// an empty string when the middleware did not run.
func GetRequestID(c echo.Context) string {
	if id, ok := c.Get(RequestIDKey).(string); ok {
		return id
	}
	return ""
}
