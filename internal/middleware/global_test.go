package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/rvandam/usererr/internal/config"
	"github.com/rvandam/usererr/internal/errs"
	"github.com/rvandam/usererr/internal/i18n"
	"github.com/rvandam/usererr/internal/server"
	"github.com/rvandam/usererr/internal/sqlerr"
)

func newTestGlobalMiddlewares(t *testing.T) *GlobalMiddlewares {
	t.Helper()

	translator := i18n.NewTranslator(language.English)
	translator.Add(language.English, map[string]string{
		"account.name.reserved": "The name %name% is reserved",
	})
	translator.Add(language.German, map[string]string{
		"account.name.reserved": "Der Name %name% ist reserviert",
	})

	log := zerolog.Nop()
	srv := &server.Server{
		Config: &config.Config{
			Server: config.ServerConfig{
				CORSAllowedOrigins: []string{"*"},
			},
		},
		Logger:      &log,
		Translator:  translator,
		Interceptor: sqlerr.NewInterceptor(sqlerr.InterceptorConfig{}, translator),
	}

	return NewGlobalMiddlewares(srv, nil)
}

func performErrorHandler(t *testing.T, gm *GlobalMiddlewares, err error, locale language.Tag) (*httptest.ResponseRecorder, errs.HTTPError) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/v1/accounts", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(LocaleKey, locale)

	gm.GlobalErrorHandler(err, c)

	var body errs.HTTPError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec, body
}

func TestGlobalErrorHandlerTranslatesRaisedUserErrors(t *testing.T) {
	gm := newTestGlobalMiddlewares(t)

	pgErr := &pgconn.PgError{
		Severity: "ERROR",
		Code:     "P0001",
		Message:  `app-exception: account.name.reserved|name:"admin"`,
	}

	cases := []struct {
		desc    string
		locale  language.Tag
		message string
	}{
		{
			desc:    "english locale",
			locale:  language.English,
			message: "The name admin is reserved",
		},
		{
			desc:    "german locale",
			locale:  language.German,
			message: "Der Name admin ist reserviert",
		},
	}

	for _, tc := range cases {
		t.Run(tc.desc, func(t *testing.T) {
			rec, body := performErrorHandler(t, gm, pgErr, tc.locale)

			assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
			assert.Equal(t, "ACCOUNT_NAME_RESERVED", body.Code)
			assert.Equal(t, tc.message, body.Message)
			assert.True(t, body.Override)
		})
	}
}

func TestGlobalErrorHandlerClassifiesConstraintViolations(t *testing.T) {
	gm := newTestGlobalMiddlewares(t)

	pgErr := &pgconn.PgError{
		Severity:       "ERROR",
		Code:           "23505",
		Message:        `duplicate key value violates unique constraint "accounts_email_key"`,
		TableName:      "accounts",
		ConstraintName: "accounts_email_key",
	}

	rec, body := performErrorHandler(t, gm, pgErr, language.English)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, body.Message, "already exists")
}

func TestGlobalErrorHandlerPassesThroughHTTPErrors(t *testing.T) {
	gm := newTestGlobalMiddlewares(t)

	rec, body := performErrorHandler(t, gm,
		errs.NewNotFoundError("Account not found", true, nil), language.English)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Account not found", body.Message)
}

func TestGlobalErrorHandlerConvertsRouteNotFound(t *testing.T) {
	gm := newTestGlobalMiddlewares(t)

	rec, body := performErrorHandler(t, gm,
		echo.NewHTTPError(http.StatusNotFound, "Not Found"), language.English)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Route not found", body.Message)
}

func TestGlobalErrorHandlerFallsBackToInternalError(t *testing.T) {
	gm := newTestGlobalMiddlewares(t)

	rec, body := performErrorHandler(t, gm, errors.New("boom"), language.English)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "INTERNAL_SERVER_ERROR", body.Code)
	// The raw error must never leak to the client.
	assert.NotContains(t, body.Message, "boom")
}

func TestGlobalErrorHandlerNilInterceptor(t *testing.T) {
	gm := newTestGlobalMiddlewares(t)
	gm.interceptor = nil

	pgErr := &pgconn.PgError{
		Severity: "ERROR",
		Code:     "P0001",
		Message:  `app-exception: account.name.reserved|name:"admin"`,
	}

	rec, _ := performErrorHandler(t, gm, pgErr, language.English)

	// Without the interceptor the raised error is not recognized as a
	// user error and falls through generic classification.
	assert.NotEqual(t, http.StatusUnprocessableEntity, rec.Code)
}
