package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/rvandam/usererr/internal/errs"
	"github.com/rvandam/usererr/internal/server"
	"github.com/rvandam/usererr/internal/sqlerr"
)

// GlobalMiddlewares groups the cross-cutting middleware and the global
// error handler. It holds the application container so middleware can
// read config, and the user-error interceptor so database-raised
// business errors can be translated before generic classification runs.
type GlobalMiddlewares struct {
	server      *server.Server
	interceptor *sqlerr.Interceptor
	telemetry   *TelemetryMiddleware
}

func NewGlobalMiddlewares(s *server.Server, telemetry *TelemetryMiddleware) *GlobalMiddlewares {
	return &GlobalMiddlewares{
		server:      s,
		interceptor: s.Interceptor,
		telemetry:   telemetry,
	}
}

// CORS returns Echo's CORS middleware configured from server config.
func (global *GlobalMiddlewares) CORS() echo.MiddlewareFunc {
	return middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: global.server.Config.Server.CORSAllowedOrigins,
	})
}

// RequestLogger emits one structured log line per request, with the
// severity chosen from the final status code. When a handler returned
// an error, the status is derived from the error type because Echo has
// not written the response yet at logging time.
func (global *GlobalMiddlewares) RequestLogger() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:     true,
		LogStatus:  true,
		LogError:   true,
		LogLatency: true,
		LogHost:    true,
		LogMethod:  true,
		LogURIPath: true,

		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			statusCode := v.Status

			if v.Error != nil {
				var httpErr *errs.HTTPError
				var echoErr *echo.HTTPError

				if errors.As(v.Error, &httpErr) {
					statusCode = httpErr.Status
				} else if errors.As(v.Error, &echoErr) {
					statusCode = echoErr.Code
				}
			}

			logger := GetLogger(c)

			var e *zerolog.Event
			switch {
			case statusCode >= 500:
				e = logger.Error().Err(v.Error)
			case statusCode >= 400:
				e = logger.Warn()
			default:
				e = logger.Info()
			}

			if requestID := GetRequestID(c); requestID != "" {
				e = e.Str("request_id", requestID)
			}

			e.
				Dur("latency", v.Latency).
				Int("status", statusCode).
				Str("method", v.Method).
				Str("uri", v.URI).
				Str("host", v.Host).
				Str("ip", c.RealIP()).
				Str("user_agent", c.Request().UserAgent()).
				Msg("API")

			return nil
		},
	})
}

// Recover converts handler panics into 500 responses.
func (global *GlobalMiddlewares) Recover() echo.MiddlewareFunc {
	return middleware.Recover()
}

// Secure adds standard security headers to every response.
func (global *GlobalMiddlewares) Secure() echo.MiddlewareFunc {
	return middleware.Secure()
}

// GlobalErrorHandler is the final error funnel for the HTTP server.
// Classification order matters:
//
//  1. Errors that are already *errs.HTTPError pass through untouched.
//  2. The user-error interceptor gets first look at driver errors, so a
//     RAISE EXCEPTION carrying a translatable message becomes a 422
//     with the message rendered in the request's locale.
//  3. Echo's route 404 is converted into the application error shape.
//  4. Everything else goes through sqlerr classification, with an
//     opaque 500 as the last resort.
func (global *GlobalMiddlewares) GlobalErrorHandler(err error, c echo.Context) {
	originalErr := err

	var httpErr *errs.HTTPError
	if !errors.As(err, &httpErr) {
		if userErr, ok := global.intercept(err, c); ok {
			err = userErr
		} else {
			var echoErr *echo.HTTPError
			if errors.As(err, &echoErr) {
				if echoErr.Code == http.StatusNotFound {
					err = errs.NewNotFoundError("Route not found", false, nil)
				}
			} else {
				err = sqlerr.HandleError(err)
			}
		}
	}

	var echoErr *echo.HTTPError
	var status int
	var code string
	var message string
	var fieldErrors []errs.FieldError
	var action *errs.Action

	switch {
	case errors.As(err, &httpErr):
		status = httpErr.Status
		code = httpErr.Code
		message = httpErr.Message
		fieldErrors = httpErr.Errors
		action = httpErr.Action

	case errors.As(err, &echoErr):
		status = echoErr.Code
		code = errs.MakeUpperCaseWithUnderscores(http.StatusText(status))

		if msg, ok := echoErr.Message.(string); ok {
			message = msg
		} else {
			message = http.StatusText(echoErr.Code)
		}

	default:
		status = http.StatusInternalServerError
		code = errs.MakeUpperCaseWithUnderscores(http.StatusText(http.StatusInternalServerError))
		message = http.StatusText(http.StatusInternalServerError)
	}

	logger := *GetLogger(c)

	event := logger.Error().Stack()
	if status < 500 {
		event = logger.Warn()
	}
	event.
		Err(originalErr).
		Int("status", status).
		Str("error_code", code).
		Msg(message)

	NoticeError(c, originalErr)

	if !c.Response().Committed {
		_ = c.JSON(status, errs.HTTPError{
			Code:     code,
			Message:  message,
			Status:   status,
			Override: httpErr != nil && httpErr.Override,
			Errors:   fieldErrors,
			Action:   action,
		})
	}
}

// intercept runs the user-error interceptor against err using the
// request's negotiated locale, recording a telemetry event on a hit.
func (global *GlobalMiddlewares) intercept(err error, c echo.Context) (error, bool) {
	if global.interceptor == nil {
		return err, false
	}

	locale := GetLocale(c)
	userErr, ok := global.interceptor.Intercept(err, locale)
	if !ok {
		return err, false
	}

	if global.telemetry != nil {
		var httpErr *errs.HTTPError
		if errors.As(userErr, &httpErr) {
			global.telemetry.RecordUserError(c, httpErr.Code, locale.String())
		}
	}

	return userErr, true
}
