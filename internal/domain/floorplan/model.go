package floorplan

import (
	"encoding/json"
	"time"
)

// Layout es el plano de la casa que el cuidador dibuja para el robot:
// una grilla 2D guardada como JSON opaco. Una sola por cuenta.
type Layout struct {
	ID        string
	AccountID string

	// Grid se persiste tal cual llega; el motor no lo interpreta.
	Grid json.RawMessage

	UpdatedAt time.Time
}
