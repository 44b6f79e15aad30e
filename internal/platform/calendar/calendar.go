package calendar

import (
	"strings"
	"time"
)

// Formatos de fecha/hora que usa todo el motor.
// Se mantienen fijos porque el orden lexicográfico de "HH:MM" y
// "YYYY-MM-DD" coincide con el orden temporal.
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// DateKey devuelve la fecha calendario de t como "YYYY-MM-DD".
func DateKey(t time.Time) string {
	return t.Format(DateLayout)
}

// TimeOfDay devuelve la hora del día de t como "HH:MM".
func TimeOfDay(t time.Time) string {
	return t.Format(TimeLayout)
}

// WeekdayAbbr devuelve la abreviatura del día ("Mon", "Tue", ...).
func WeekdayAbbr(t time.Time) string {
	return t.Format("Mon")
}

// ValidTimeOfDay valida un "HH:MM" con cero a la izquierda.
func ValidTimeOfDay(s string) bool {
	s = strings.TrimSpace(s)
	if len(s) != len(TimeLayout) {
		return false
	}
	_, err := time.Parse(TimeLayout, s)
	return err == nil
}

// SameDate compara una fecha nullable contra la fecha de now.
func SameDate(d *time.Time, now time.Time) bool {
	if d == nil {
		return false
	}
	return DateKey(*d) == DateKey(now)
}
