package sqlerr_test

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rvandam/usererr/internal/errs"
	"github.com/rvandam/usererr/internal/sqlerr"
)

func TestMapCode(t *testing.T) {
	cases := []struct {
		sqlstate string
		want     sqlerr.Code
	}{
		{"23505", sqlerr.UniqueViolation},
		{"23503", sqlerr.ForeignKeyViolation},
		{"23502", sqlerr.NotNullViolation},
		{"23514", sqlerr.CheckViolation},
		{"22P02", sqlerr.InvalidTextRepresentation},
		{"22001", sqlerr.StringDataTruncation},
		{"P0001", sqlerr.RaiseException},
		{"42601", sqlerr.Other},
		{"", sqlerr.Other},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, sqlerr.MapCode(tc.sqlstate), "sqlstate %q", tc.sqlstate)
	}
}

func TestErrCode(t *testing.T) {
	converted := sqlerr.ConvertPgError(&pgconn.PgError{Code: "23505", Severity: "ERROR"})

	assert.Equal(t, sqlerr.UniqueViolation, sqlerr.ErrCode(converted))
	assert.Equal(t, sqlerr.UniqueViolation, sqlerr.ErrCode(fmt.Errorf("insert: %w", converted)))
	assert.Equal(t, sqlerr.Other, sqlerr.ErrCode(errors.New("plain")))
}

func TestHandleErrorUniqueViolation(t *testing.T) {
	pgErr := &pgconn.PgError{
		Code:           "23505",
		Severity:       "ERROR",
		Message:        `duplicate key value violates unique constraint "accounts_email_key"`,
		TableName:      "accounts",
		ConstraintName: "accounts_email_key",
	}

	err := sqlerr.HandleError(pgErr)

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Equal(t, "ACCOUNT_ALREADY_EXISTS", httpErr.Code)
	assert.Equal(t, "A Account with this Email already exists", httpErr.Message)
	assert.True(t, httpErr.Override)
	assert.ErrorIs(t, err, pgErr)
}

func TestHandleErrorForeignKeyViolation(t *testing.T) {
	pgErr := &pgconn.PgError{
		Code:       "23503",
		Severity:   "ERROR",
		TableName:  "transfers",
		ColumnName: "account_id",
	}

	err := sqlerr.HandleError(pgErr)

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Equal(t, "TRANSFER_NOT_FOUND", httpErr.Code)
	assert.Equal(t, "The referenced Account does not exist", httpErr.Message)
}

func TestHandleErrorNotNullViolation(t *testing.T) {
	pgErr := &pgconn.PgError{
		Code:       "23502",
		Severity:   "ERROR",
		TableName:  "accounts",
		ColumnName: "email",
	}

	err := sqlerr.HandleError(pgErr)

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Equal(t, "ACCOUNT_REQUIRED", httpErr.Code)
	require.Len(t, httpErr.Errors, 1)
	assert.Equal(t, "email", httpErr.Errors[0].Field)
	assert.Equal(t, "is required", httpErr.Errors[0].Error)
}

func TestHandleErrorNoRows(t *testing.T) {
	for _, cause := range []error{pgx.ErrNoRows, sql.ErrNoRows} {
		err := sqlerr.HandleError(fmt.Errorf("get account: %w", cause))

		var httpErr *errs.HTTPError
		require.ErrorAs(t, err, &httpErr)
		assert.Equal(t, http.StatusNotFound, httpErr.Status)
	}
}

func TestHandleErrorPassesThroughHTTPError(t *testing.T) {
	original := errs.NewForbiddenError("no", false)

	assert.Same(t, original, sqlerr.HandleError(original).(*errs.HTTPError))
}

func TestHandleErrorUnknown(t *testing.T) {
	err := sqlerr.HandleError(errors.New("connection reset"))

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusInternalServerError, httpErr.Status)
	// Internal details never leak into the client message.
	assert.Equal(t, http.StatusText(http.StatusInternalServerError), httpErr.Message)
}
