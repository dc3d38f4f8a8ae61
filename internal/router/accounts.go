package router

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/rvandam/usererr/internal/handler"
)

func registerAccountRoutes(r *echo.Echo, h *handler.Handlers) {
	v1 := r.Group("/v1")

	v1.POST("/accounts", handler.Handle(
		h.Accounts.Handler,
		h.Accounts.Create,
		http.StatusCreated,
		func() *handler.CreateAccountRequest { return &handler.CreateAccountRequest{} },
	))

	v1.GET("/accounts/:id", handler.Handle(
		h.Accounts.Handler,
		h.Accounts.Get,
		http.StatusOK,
		func() *handler.GetAccountRequest { return &handler.GetAccountRequest{} },
	))

	v1.POST("/accounts/:id/withdrawals", handler.Handle(
		h.Accounts.Handler,
		h.Accounts.Withdraw,
		http.StatusOK,
		func() *handler.WithdrawRequest { return &handler.WithdrawRequest{} },
	))
}
