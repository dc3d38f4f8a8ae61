package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/rvandam/usererr/internal/server"
)

// Account is a row in the accounts table.
type Account struct {
	ID          uuid.UUID `json:"id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"display_name"`
	Balance     int64     `json:"balance"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// AccountsRepository persists accounts. Inserts and updates can trip
// the reserved-name trigger or the unique email constraint; both come
// back as driver errors for the error funnel to classify.
type AccountsRepository struct {
	server *server.Server
}

func NewAccountsRepository(s *server.Server) *AccountsRepository {
	return &AccountsRepository{server: s}
}

// Create inserts a new account and returns the stored row.
func (r *AccountsRepository) Create(ctx context.Context, email, displayName string, balance int64) (*Account, error) {
	const query = `
		INSERT INTO accounts (email, display_name, balance)
		VALUES ($1, $2, $3)
		RETURNING id, email, display_name, balance, created_at, updated_at`

	var account Account
	err := r.server.DB.Pool.QueryRow(ctx, query, email, displayName, balance).Scan(
		&account.ID,
		&account.Email,
		&account.DisplayName,
		&account.Balance,
		&account.CreatedAt,
		&account.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &account, nil
}

// GetByID fetches an account by primary key. The caller sees
// pgx.ErrNoRows when the id does not exist.
func (r *AccountsRepository) GetByID(ctx context.Context, id uuid.UUID) (*Account, error) {
	const query = `
		SELECT id, email, display_name, balance, created_at, updated_at
		FROM accounts
		WHERE id = $1`

	var account Account
	err := r.server.DB.Pool.QueryRow(ctx, query, id).Scan(
		&account.ID,
		&account.Email,
		&account.DisplayName,
		&account.Balance,
		&account.CreatedAt,
		&account.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &account, nil
}

// Withdraw subtracts amount from the account balance via the withdrawal
// routine, which raises a user error when funds are insufficient.
func (r *AccountsRepository) Withdraw(ctx context.Context, id uuid.UUID, amount int64) (*Account, error) {
	const query = `SELECT * FROM withdraw_from_account($1, $2)`

	var account Account
	err := r.server.DB.Pool.QueryRow(ctx, query, id, amount).Scan(
		&account.ID,
		&account.Email,
		&account.DisplayName,
		&account.Balance,
		&account.CreatedAt,
		&account.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &account, nil
}
