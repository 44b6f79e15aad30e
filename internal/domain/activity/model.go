package activity

import "time"

// Entry es una entrada inmutable del historial de la cuenta.
// Nunca se actualiza ni se borra después de insertada.
type Entry struct {
	ID        string
	AccountID string

	Action string // ej. "Dispensed Metformin", "EMERGENCY ALERT"
	Detail string

	CreatedAt time.Time
}
