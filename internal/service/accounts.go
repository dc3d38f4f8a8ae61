package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/rvandam/usererr/internal/repository"
	"github.com/rvandam/usererr/internal/server"
)

// AccountsService implements account operations. Business rules that
// must hold for every write path (reserved names, balance floors) live
// in database routines; the service passes their errors through
// untouched so the global error funnel can translate them.
type AccountsService struct {
	server *server.Server
	repo   *repository.AccountsRepository
}

func NewAccountsService(s *server.Server, repo *repository.AccountsRepository) *AccountsService {
	return &AccountsService{server: s, repo: repo}
}

func (s *AccountsService) Create(ctx context.Context, email, displayName string, balance int64) (*repository.Account, error) {
	return s.repo.Create(ctx, email, displayName, balance)
}

func (s *AccountsService) GetByID(ctx context.Context, id uuid.UUID) (*repository.Account, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *AccountsService) Withdraw(ctx context.Context, id uuid.UUID, amount int64) (*repository.Account, error) {
	return s.repo.Withdraw(ctx, id, amount)
}
