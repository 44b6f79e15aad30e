package medications

import (
	"context"
	"fmt"

	"care-companion/internal/platform/calendar"
)

// ToggleResult es el resultado de un take/undo exitoso.
type ToggleResult struct {
	Medication Medication
	Taken      bool // true si la dosis quedó marcada como tomada
}

// Toggle es la máquina de estados del ledger, por medicación:
//
//	Untaken-today --take--> Taken-today   (stock-1, LastTaken=hoy)
//	Taken-today   --undo--> Untaken-today (LastTaken=nil, refund capeado al máximo)
//
// Take con stock 0 devuelve ErrOutOfStock sin mutar y sin log.
// Cada transición exitosa produce exactamente una entrada de auditoría;
// si el append falla, la mutación se revierte (nunca mutación silenciosa).
//
// El lock por id garantiza que dos toggles concurrentes sobre la misma
// medicación no vean stock viejo. No se sostiene durante I/O externo:
// aquí adentro solo hay store.
func (s *Service) Toggle(ctx context.Context, medicationID, accountID string) (ToggleResult, error) {
	mu := s.lockFor(medicationID)
	mu.Lock()
	defer mu.Unlock()

	m, err := s.repo.GetByID(ctx, medicationID)
	if err != nil {
		return ToggleResult{}, ErrNotFound
	}

	prev := m
	now := s.now()

	var (
		taken  bool
		action string
		detail string
	)

	if calendar.SameDate(m.LastTaken, now) {
		// Undo: siempre procede una vez alcanzado Taken-today.
		// El refund se capea al máximo: cubre undo repetido en días
		// distintos y registros viejos ya al tope.
		m.LastTaken = nil
		if m.Stock < m.MaxStock {
			m.Stock++
		}
		action = "Undo: " + m.Name
		detail = fmt.Sprintf("Stock corrected to %d", m.Stock)
	} else {
		if m.Stock <= 0 {
			return ToggleResult{}, fmt.Errorf("%w: %s", ErrOutOfStock, m.Name)
		}
		t := now
		m.LastTaken = &t
		m.Stock--
		taken = true
		action = "Dispensed " + m.Name
		detail = fmt.Sprintf("Manual check-off. Stock remaining: %d", m.Stock)
	}

	m.UpdatedAt = now
	if err := s.repo.Update(ctx, m); err != nil {
		return ToggleResult{}, err
	}

	if err := s.trail.Record(ctx, accountID, action, detail); err != nil {
		// Par atómico mutación+log: sin entrada, revertimos la mutación.
		// Si el revert también falla, queda una mutación sin entrada en
		// el trail; como mínimo tiene que quedar rastro en el log del
		// servidor para reconciliar a mano.
		if rbErr := s.repo.Update(ctx, prev); rbErr != nil {
			s.log.Error("ledger rollback failed", map[string]any{
				"medication_id": m.ID,
				"action":        action,
				"error":         rbErr.Error(),
			})
		}
		return ToggleResult{}, err
	}

	return ToggleResult{Medication: m, Taken: taken}, nil
}
