package sqlerr_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/rvandam/usererr/internal/errs"
	"github.com/rvandam/usererr/internal/i18n"
	"github.com/rvandam/usererr/internal/sqlerr"
)

func newTestTranslator() *i18n.Translator {
	tr := i18n.NewTranslator(language.English)
	tr.Add(language.English, map[string]string{
		"account.name.reserved":        "The name %name% is reserved",
		"account.balance.insufficient": "You need %amount% %currency% more",
	})
	tr.Add(language.German, map[string]string{
		"account.name.reserved": "Der Name %name% ist reserviert",
	})
	return tr
}

func raised(message string) *pgconn.PgError {
	return &pgconn.PgError{
		Code:     sqlerr.RaiseExceptionState,
		Severity: "ERROR",
		Message:  message,
	}
}

func TestInterceptTranslatesUserError(t *testing.T) {
	in := sqlerr.NewInterceptor(sqlerr.InterceptorConfig{}, newTestTranslator())

	cases := []struct {
		desc    string
		message string
		locale  language.Tag
		want    string
		code    string
	}{
		{
			desc:    "bare driver message",
			message: "app-exception: account.name.reserved|name:admin",
			locale:  language.English,
			want:    "The name admin is reserved",
			code:    "ACCOUNT_NAME_RESERVED",
		},
		{
			desc:    "localized lookup",
			message: "app-exception: account.name.reserved|name:root",
			locale:  language.German,
			want:    "Der Name root ist reserviert",
			code:    "ACCOUNT_NAME_RESERVED",
		},
		{
			desc:    "severity and SQLSTATE wrapper stripped",
			message: "ERROR: app-exception: account.name.reserved|name:admin (SQLSTATE P0001)",
			locale:  language.English,
			want:    "The name admin is reserved",
			code:    "ACCOUNT_NAME_RESERVED",
		},
		{
			desc:    "multiple parameters substituted in order",
			message: `app-exception: account.balance.insufficient|amount:12.50|currency:"EUR"`,
			locale:  language.English,
			want:    "You need 12.50 EUR more",
			code:    "ACCOUNT_BALANCE_INSUFFICIENT",
		},
		{
			desc:    "unknown key renders the key",
			message: "app-exception: no.such.key|a:1",
			locale:  language.English,
			want:    "no.such.key",
			code:    "NO_SUCH_KEY",
		},
	}

	for _, tc := range cases {
		t.Run(tc.desc, func(t *testing.T) {
			pgErr := raised(tc.message)
			replaced, ok := in.Intercept(pgErr, tc.locale)
			require.True(t, ok)

			var httpErr *errs.HTTPError
			require.ErrorAs(t, replaced, &httpErr)
			assert.Equal(t, http.StatusUnprocessableEntity, httpErr.Status)
			assert.Equal(t, tc.want, httpErr.Message)
			assert.Equal(t, tc.code, httpErr.Code)
			assert.True(t, httpErr.Override)

			// The original driver error stays in the chain.
			assert.ErrorIs(t, replaced, pgErr)
		})
	}
}

func TestInterceptWrappedError(t *testing.T) {
	in := sqlerr.NewInterceptor(sqlerr.InterceptorConfig{}, newTestTranslator())
	pgErr := raised("app-exception: account.name.reserved|name:admin")

	replaced, ok := in.Intercept(fmt.Errorf("create account: %w", pgErr), language.English)

	require.True(t, ok)
	assert.EqualError(t, replaced, "The name admin is reserved")
}

func TestInterceptPassThrough(t *testing.T) {
	in := sqlerr.NewInterceptor(sqlerr.InterceptorConfig{}, newTestTranslator())

	cases := []struct {
		desc string
		err  error
	}{
		{
			desc: "not a pg error",
			err:  errors.New("plain"),
		},
		{
			desc: "unwatched sqlstate",
			err: &pgconn.PgError{
				Code:    "23505",
				Message: "app-exception: account.name.reserved|name:admin",
			},
		},
		{
			desc: "watched code without prefix",
			err:  raised("something else entirely"),
		},
		{
			desc: "prefix must match exactly at the start",
			err:  raised("oops app-exception: account.name.reserved"),
		},
	}

	for _, tc := range cases {
		t.Run(tc.desc, func(t *testing.T) {
			replaced, ok := in.Intercept(tc.err, language.English)
			assert.False(t, ok)
			assert.Nil(t, replaced)
		})
	}
}

func TestInterceptCustomConfig(t *testing.T) {
	in := sqlerr.NewInterceptor(sqlerr.InterceptorConfig{
		Prefix: "user-error: ",
		Codes:  []string{"P0001", "P0002"},
	}, newTestTranslator())

	replaced, ok := in.Intercept(&pgconn.PgError{
		Code:    "P0002",
		Message: "user-error: account.name.reserved|name:admin",
	}, language.English)

	require.True(t, ok)
	assert.EqualError(t, replaced, "The name admin is reserved")

	// The default prefix no longer matches.
	_, ok = in.Intercept(raised("app-exception: account.name.reserved"), language.English)
	assert.False(t, ok)
}
