package medications

import (
	"time"

	"care-companion/internal/platform/calendar"
)

// Stats es el resumen de adherencia del día.
type Stats struct {
	Total  int
	Taken  int
	Missed int
	Score  int // porcentaje entero, truncado hacia cero
}

// Adherence cuenta sobre TODAS las medicaciones de la cuenta, toquen hoy
// o no: el tablero resume el plan completo, no solo la agenda del día.
func Adherence(now time.Time, meds []Medication) Stats {
	st := Stats{Total: len(meds)}
	for _, m := range meds {
		if calendar.SameDate(m.LastTaken, now) {
			st.Taken++
		}
	}
	st.Missed = st.Total - st.Taken

	if st.Total > 0 {
		st.Score = st.Taken * 100 / st.Total
	}
	return st
}
