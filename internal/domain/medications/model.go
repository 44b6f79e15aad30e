package medications

import "time"

// DoseStatus es el estado de una dosis dentro del día.
// @Enum completed, upcoming, pending
type DoseStatus string

const (
	StatusCompleted DoseStatus = "completed"
	StatusUpcoming  DoseStatus = "upcoming"
	StatusPending   DoseStatus = "pending"
)

// StockStatus es la salud de inventario de una medicación.
// @Enum ok, low
type StockStatus string

const (
	StockOK  StockStatus = "ok"
	StockLow StockStatus = "low"
)

const (
	// Umbral absoluto de stock bajo.
	LowStockThreshold = 5

	// Cantidad por defecto para recordatorios creados a mano
	// y fallback de display cuando un registro viejo no tiene máximo.
	DefaultMaxStock = 30
)

// Medication es una medicación recurrente de un paciente.
// Stock se mueve solo a través del ledger (take/undo), de a 1,
// y siempre queda en 0 <= Stock <= MaxStock.
type Medication struct {
	ID        string
	PatientID string

	Name         string
	Dosage       string
	Instructions string

	ScheduleTime string // "HH:MM" con cero a la izquierda
	Recurrence   Recurrence

	Stock    int
	MaxStock int // inmutable después de crear; cantidad de refill completo

	// LastTaken codifica "tomada hoy" contra la fecha actual.
	// No es historial: el historial vive en activity.
	LastTaken *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}
