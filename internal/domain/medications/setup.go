package medications

import (
	"context"

	"care-companion/internal/domain/patients"
)

// CreateReminder implementa patients.MedicationWriter: traduce los datos
// crudos del setup a un CreateInput validado. La recurrencia llega en el
// formato heredado ("All", "Mon,Wed").
func (s *Service) CreateReminder(ctx context.Context, patientID string, r patients.Reminder) error {
	rec, err := ParseRecurrence(r.Recurrence)
	if err != nil {
		return err
	}

	_, err = s.Create(ctx, CreateInput{
		PatientID:    patientID,
		Name:         r.Name,
		Dosage:       r.Dosage,
		ScheduleTime: r.Time,
		Instructions: r.Instructions,
		Recurrence:   rec,
		Stock:        r.Stock,
		MaxStock:     r.MaxStock,
	})
	return err
}
