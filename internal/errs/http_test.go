package errs_test

import (
	"errors"
	"net/http"
	"testing"

	"github.com/rvandam/usererr/internal/errs"
	"github.com/stretchr/testify/assert"
)

func TestMakeUpperCaseWithUnderscores(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Bad Request", "BAD_REQUEST"},
		{"Not Found", "NOT_FOUND"},
		{"account.name.reserved", "ACCOUNT_NAME_RESERVED"},
		{"account.balance insufficient", "ACCOUNT_BALANCE_INSUFFICIENT"},
		{"", ""},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, errs.MakeUpperCaseWithUnderscores(tc.in))
	}
}

func TestNewUserError(t *testing.T) {
	cause := errors.New("driver says no")
	err := errs.NewUserError("Der Name admin ist reserviert", "account.name.reserved", cause)

	assert.Equal(t, http.StatusUnprocessableEntity, err.Status)
	assert.Equal(t, "ACCOUNT_NAME_RESERVED", err.Code)
	assert.Equal(t, "Der Name admin ist reserviert", err.Message)
	assert.True(t, err.Override)
	assert.ErrorIs(t, err, cause)
}

func TestHTTPErrorIsMatchesOnType(t *testing.T) {
	a := errs.NewBadRequestError("a", false, nil, nil, nil)
	b := errs.NewInternalServerError()

	assert.ErrorIs(t, a, b)
	assert.NotErrorIs(t, a, errors.New("plain"))
}

func TestWithMessageCopies(t *testing.T) {
	base := errs.NewNotFoundError("original", false, nil)
	custom := base.WithMessage("custom")

	assert.Equal(t, "original", base.Message)
	assert.Equal(t, "custom", custom.Message)
	assert.Equal(t, base.Status, custom.Status)
}

func TestWithCause(t *testing.T) {
	cause := errors.New("underlying")
	err := errs.NewInternalServerError().WithCause(cause)

	assert.ErrorIs(t, err, cause)
}
