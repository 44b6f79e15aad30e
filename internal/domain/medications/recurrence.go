package medications

import (
	"strings"
)

// Weekday es la abreviatura de día que usa el evaluador ("Mon".."Sun").
type Weekday string

const (
	Mon Weekday = "Mon"
	Tue Weekday = "Tue"
	Wed Weekday = "Wed"
	Thu Weekday = "Thu"
	Fri Weekday = "Fri"
	Sat Weekday = "Sat"
	Sun Weekday = "Sun"
)

var validWeekdays = map[Weekday]bool{
	Mon: true, Tue: true, Wed: true, Thu: true, Fri: true, Sat: true, Sun: true,
}

// Recurrence es la variante etiquetada de recurrencia:
// Daily, o un set explícito de días. Si Daily es true, Days se ignora.
type Recurrence struct {
	Daily bool
	Days  []Weekday
}

func DailyRecurrence() Recurrence {
	return Recurrence{Daily: true}
}

func OnDays(days ...Weekday) Recurrence {
	return Recurrence{Days: days}
}

// DueOn decide si la medicación toca en el día con abreviatura abbr.
func (r Recurrence) DueOn(abbr string) bool {
	if r.Daily {
		return true
	}
	for _, d := range r.Days {
		if string(d) == abbr {
			return true
		}
	}
	return false
}

// Valid exige Daily, o al menos un día conocido sin repetidos.
func (r Recurrence) Valid() bool {
	if r.Daily {
		return true
	}
	if len(r.Days) == 0 {
		return false
	}
	seen := map[Weekday]bool{}
	for _, d := range r.Days {
		if !validWeekdays[d] || seen[d] {
			return false
		}
		seen[d] = true
	}
	return true
}

// String codifica al formato de almacenamiento/API heredado:
// "Daily", o CSV de días ("Mon,Wed").
func (r Recurrence) String() string {
	if r.Daily {
		return "Daily"
	}
	parts := make([]string, 0, len(r.Days))
	for _, d := range r.Days {
		parts = append(parts, string(d))
	}
	return strings.Join(parts, ",")
}

// ParseRecurrence acepta "Daily" (y el alias viejo "All"), o CSV de días.
func ParseRecurrence(s string) (Recurrence, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "Daily") || strings.EqualFold(s, "All") {
		return DailyRecurrence(), nil
	}

	parts := strings.Split(s, ",")
	days := make([]Weekday, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		d := Weekday(strings.ToUpper(p[:1]) + strings.ToLower(p[1:]))
		days = append(days, d)
	}

	r := OnDays(days...)
	if !r.Valid() {
		return Recurrence{}, ErrInvalidInput
	}
	return r, nil
}
