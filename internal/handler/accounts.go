package handler

import (
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/rvandam/usererr/internal/errs"
	"github.com/rvandam/usererr/internal/repository"
	"github.com/rvandam/usererr/internal/server"
	"github.com/rvandam/usererr/internal/service"
	"github.com/rvandam/usererr/internal/validation"

	"github.com/google/uuid"
)

var validate = validator.New()

// CreateAccountRequest is the payload for account creation. Balance is
// in cents.
type CreateAccountRequest struct {
	Email       string `json:"email" validate:"required,email"`
	DisplayName string `json:"display_name" validate:"required,min=2,max=64"`
	Balance     int64  `json:"balance" validate:"gte=0"`
}

func (r *CreateAccountRequest) Validate() error {
	return validate.Struct(r)
}

// GetAccountRequest carries the account id path parameter.
type GetAccountRequest struct {
	ID string `param:"id" validate:"required,uuid"`
}

func (r *GetAccountRequest) Validate() error {
	return validate.Struct(r)
}

// WithdrawRequest is the payload for a withdrawal. Amount is in cents;
// the database routine rejects non-positive amounts and shortfalls.
type WithdrawRequest struct {
	ID     string `param:"id" validate:"required,uuid"`
	Amount int64  `json:"amount" validate:"required"`
}

func (r *WithdrawRequest) Validate() error {
	return validate.Struct(r)
}

// AccountsHandler exposes the account endpoints.
type AccountsHandler struct {
	Handler
	accounts *service.AccountsService
}

func NewAccountsHandler(s *server.Server, accounts *service.AccountsService) *AccountsHandler {
	return &AccountsHandler{
		Handler:  NewHandler(s),
		accounts: accounts,
	}
}

func (h *AccountsHandler) Create(c echo.Context, req *CreateAccountRequest) (*repository.Account, error) {
	return h.accounts.Create(c.Request().Context(), req.Email, req.DisplayName, req.Balance)
}

func (h *AccountsHandler) Get(c echo.Context, req *GetAccountRequest) (*repository.Account, error) {
	if !validation.IsValidUUID(req.ID) {
		return nil, errs.NewBadRequestError("Invalid account id", false, nil, nil, nil)
	}
	return h.accounts.GetByID(c.Request().Context(), uuid.MustParse(req.ID))
}

func (h *AccountsHandler) Withdraw(c echo.Context, req *WithdrawRequest) (*repository.Account, error) {
	if !validation.IsValidUUID(req.ID) {
		return nil, errs.NewBadRequestError("Invalid account id", false, nil, nil, nil)
	}
	return h.accounts.Withdraw(c.Request().Context(), uuid.MustParse(req.ID), req.Amount)
}

// compile-time checks that the request types satisfy the validation
// contract used by the generic pipeline.
var (
	_ validation.Validatable = (*CreateAccountRequest)(nil)
	_ validation.Validatable = (*GetAccountRequest)(nil)
	_ validation.Validatable = (*WithdrawRequest)(nil)
)
