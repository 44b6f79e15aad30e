package postgres

import (
	"context"
	"database/sql"
	"strings"

	"care-companion/internal/domain/accounts"
)

type AccountsRepo struct {
	db *sql.DB
}

func NewAccountsRepo(db *sql.DB) *AccountsRepo {
	return &AccountsRepo{db: db}
}

func (r *AccountsRepo) Create(ctx context.Context, a accounts.Account) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO accounts (id, username, password_hash, created_at)
		VALUES ($1,$2,$3,$4)
	`,
		a.ID,
		a.Username,
		a.PasswordHash,
		a.CreatedAt,
	)
	return err
}

func (r *AccountsRepo) GetByID(ctx context.Context, id string) (accounts.Account, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, username, password_hash, created_at
		FROM accounts
		WHERE id = $1
	`, strings.TrimSpace(id))
	return scanAccount(row)
}

func (r *AccountsRepo) GetByUsername(ctx context.Context, username string) (accounts.Account, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, username, password_hash, created_at
		FROM accounts
		WHERE lower(username) = lower($1)
	`, strings.TrimSpace(username))
	return scanAccount(row)
}

func scanAccount(row *sql.Row) (accounts.Account, error) {
	var a accounts.Account
	if err := row.Scan(&a.ID, &a.Username, &a.PasswordHash, &a.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return accounts.Account{}, ErrNotFound
		}
		return accounts.Account{}, err
	}
	return a, nil
}
