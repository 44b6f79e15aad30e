package medications

import "context"

type Repository interface {
	Create(ctx context.Context, m Medication) error
	GetByID(ctx context.Context, id string) (Medication, error)
	Update(ctx context.Context, m Medication) error
	Delete(ctx context.Context, id string) error

	ListByPatient(ctx context.Context, patientID string) ([]Medication, error)
	DeleteByPatient(ctx context.Context, patientID string) error
}
