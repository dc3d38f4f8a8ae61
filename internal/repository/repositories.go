package repository

import (
	"github.com/rvandam/usererr/internal/server"
)

// Repositories is a container for all repository instances, wired once
// at startup and handed to the service layer.
type Repositories struct {
	Accounts *AccountsRepository
}

// NewRepositories constructs the repository container from the shared
// application dependencies.
func NewRepositories(s *server.Server) *Repositories {
	return &Repositories{
		Accounts: NewAccountsRepository(s),
	}
}
