package patients

import "time"

// Patient es una persona a cargo de una cuenta de cuidador.
// Una cuenta puede tener varios pacientes; cada paciente pertenece a una sola.
type Patient struct {
	ID        string
	AccountID string

	Name string

	CreatedAt time.Time
}
