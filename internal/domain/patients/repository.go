package patients

import "context"

type Repository interface {
	Create(ctx context.Context, p Patient) error
	GetByID(ctx context.Context, id string) (Patient, error)
	ListByAccount(ctx context.Context, accountID string) ([]Patient, error)

	// DeleteByAccount elimina todos los pacientes de la cuenta.
	// Las medicaciones asociadas se eliminan en cascada (la orquesta el service).
	DeleteByAccount(ctx context.Context, accountID string) error
}
