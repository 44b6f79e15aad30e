package activity

import "context"

// Repository es un almacén append-only: no expone update ni delete.
type Repository interface {
	Append(ctx context.Context, e Entry) error
	ListByAccount(ctx context.Context, accountID string, limit int) ([]Entry, error)
}
