package floorplan

import "context"

type Repository interface {
	// Upsert crea o reemplaza el plano de la cuenta.
	Upsert(ctx context.Context, l Layout) error
	GetByAccount(ctx context.Context, accountID string) (Layout, error)
}
