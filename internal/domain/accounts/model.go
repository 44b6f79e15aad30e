package accounts

import "time"

// Account es la cuenta del cuidador dueña de pacientes y medicaciones.
type Account struct {
	ID       string
	Username string

	// Hash bcrypt; nunca sale del módulo.
	PasswordHash string

	CreatedAt time.Time
}
