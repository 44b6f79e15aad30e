package medications

import (
	"sort"
	"time"

	"care-companion/internal/platform/calendar"
)

// ScheduleEntry es una dosis que toca hoy, con su estado calculado.
type ScheduleEntry struct {
	MedicationID string
	PatientName  string
	Name         string
	Time         string // "HH:MM"
	Status       DoseStatus
	IsDone       bool
}

// PatientMedication es la medicación junto al nombre del paciente dueño,
// que es lo único que la proyección necesita del otro módulo.
type PatientMedication struct {
	Medication  Medication
	PatientName string
}

// DueToday es la proyección pura de "qué toca hoy":
// filtra por recurrencia, calcula estado y ordena por hora ascendente.
// Sin efectos; seguro de llamar concurrentemente sobre los mismos datos.
//
// Estados:
//   - completed: LastTaken es la fecha de now
//   - upcoming:  hora programada estrictamente mayor a la hora de now
//   - pending:   el resto (incluye hora igual a now)
//
// Las medicaciones que no tocan hoy no aparecen: no son "missed",
// simplemente no están programadas.
func DueToday(now time.Time, meds []PatientMedication) []ScheduleEntry {
	nowTime := calendar.TimeOfDay(now)
	todayAbbr := calendar.WeekdayAbbr(now)

	out := make([]ScheduleEntry, 0, len(meds))
	for _, pm := range meds {
		m := pm.Medication
		if !m.Recurrence.DueOn(todayAbbr) {
			continue
		}

		isDone := calendar.SameDate(m.LastTaken, now)
		status := StatusPending
		switch {
		case isDone:
			status = StatusCompleted
		case m.ScheduleTime > nowTime:
			status = StatusUpcoming
		}

		out = append(out, ScheduleEntry{
			MedicationID: m.ID,
			PatientName:  pm.PatientName,
			Name:         m.Name,
			Time:         m.ScheduleTime,
			Status:       status,
			IsDone:       isDone,
		})
	}

	// Orden lexicográfico de "HH:MM" == orden temporal.
	// Estable: horas iguales conservan el orden de iteración.
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Time < out[j].Time
	})

	return out
}
