package service

import (
	"github.com/rvandam/usererr/internal/repository"
	"github.com/rvandam/usererr/internal/server"
)

// Services is a container for all service instances.
type Services struct {
	Accounts *AccountsService
}

// NewServices wires the service layer from the application container
// and the repository container.
func NewServices(s *server.Server, repos *repository.Repositories) *Services {
	return &Services{
		Accounts: NewAccountsService(s, repos.Accounts),
	}
}
