package handler

import (
	"github.com/rvandam/usererr/internal/server"
	"github.com/rvandam/usererr/internal/service"
)

// Handlers groups all HTTP handlers so router setup receives one object.
type Handlers struct {
	Health   *HealthHandler
	Accounts *AccountsHandler
}

// NewHandlers constructs the handler container.
func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Health:   NewHealthHandler(s),
		Accounts: NewAccountsHandler(s, services.Accounts),
	}
}
