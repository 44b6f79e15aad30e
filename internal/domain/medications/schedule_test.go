package medications

import (
	"testing"
	"time"
)

// Lunes 2025-12-22, 12:00 local.
var monNoon = time.Date(2025, 12, 22, 12, 0, 0, 0, time.UTC)

func med(id, name, schedTime string, rec Recurrence) PatientMedication {
	return PatientMedication{
		Medication: Medication{
			ID:           id,
			Name:         name,
			ScheduleTime: schedTime,
			Recurrence:   rec,
			Stock:        10,
			MaxStock:     30,
		},
		PatientName: "Rosa",
	}
}

func TestDueToday_FiltersByRecurrence(t *testing.T) {
	meds := []PatientMedication{
		med("m1", "Aspirin", "08:00", DailyRecurrence()),
		med("m2", "Lipitor", "09:00", OnDays(Mon, Wed)),
		med("m3", "Insulin", "10:00", OnDays(Tue, Thu)),
	}

	out := DueToday(monNoon, meds)
	if len(out) != 2 {
		t.Fatalf("expected 2 entries on Monday, got %d", len(out))
	}
	for _, e := range out {
		if e.MedicationID == "m3" {
			t.Fatalf("m3 (Tue,Thu) should not appear on Monday")
		}
	}
}

func TestDueToday_StatusPerEntry(t *testing.T) {
	taken := monNoon.Add(-2 * time.Hour)

	past := med("m1", "Past", "08:00", DailyRecurrence())
	future := med("m2", "Future", "20:00", DailyRecurrence())
	done := med("m3", "Done", "09:00", DailyRecurrence())
	done.Medication.LastTaken = &taken

	out := DueToday(monNoon, []PatientMedication{past, future, done})
	if len(out) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(out))
	}

	byID := map[string]ScheduleEntry{}
	for _, e := range out {
		byID[e.MedicationID] = e
	}

	if got := byID["m1"].Status; got != StatusPending {
		t.Fatalf("past-due untaken: expected pending, got %s", got)
	}
	if got := byID["m2"].Status; got != StatusUpcoming {
		t.Fatalf("future untaken: expected upcoming, got %s", got)
	}
	if got := byID["m3"].Status; got != StatusCompleted {
		t.Fatalf("taken today: expected completed, got %s", got)
	}
	if !byID["m3"].IsDone || byID["m1"].IsDone {
		t.Fatalf("IsDone should mirror taken-today")
	}
}

func TestDueToday_ExactHourIsPending(t *testing.T) {
	// Hora programada == hora actual: no es upcoming.
	m := med("m1", "OnTheDot", "12:00", DailyRecurrence())

	out := DueToday(monNoon, []PatientMedication{m})
	if len(out) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(out))
	}
	if out[0].Status != StatusPending {
		t.Fatalf("expected pending at exact hour, got %s", out[0].Status)
	}
}

func TestDueToday_CompletedBeatsUpcoming(t *testing.T) {
	// Tomada temprano aunque la hora programada todavía no llega.
	taken := monNoon.Add(-3 * time.Hour)
	m := med("m1", "Early", "20:00", DailyRecurrence())
	m.Medication.LastTaken = &taken

	out := DueToday(monNoon, []PatientMedication{m})
	if out[0].Status != StatusCompleted {
		t.Fatalf("expected completed, got %s", out[0].Status)
	}
}

func TestDueToday_TakenYesterdayDoesNotCount(t *testing.T) {
	yesterday := monNoon.AddDate(0, 0, -1)
	m := med("m1", "Stale", "08:00", DailyRecurrence())
	m.Medication.LastTaken = &yesterday

	out := DueToday(monNoon, []PatientMedication{m})
	if out[0].Status != StatusPending {
		t.Fatalf("taken yesterday: expected pending today, got %s", out[0].Status)
	}
	if out[0].IsDone {
		t.Fatalf("taken yesterday: IsDone should be false today")
	}
}

func TestDueToday_SortedByTimeStable(t *testing.T) {
	meds := []PatientMedication{
		med("m1", "Late", "21:00", DailyRecurrence()),
		med("m2", "EarlyA", "08:00", DailyRecurrence()),
		med("m3", "EarlyB", "08:00", DailyRecurrence()),
		med("m4", "Mid", "13:30", DailyRecurrence()),
	}

	out := DueToday(monNoon, meds)
	want := []string{"m2", "m3", "m4", "m1"}
	for i, id := range want {
		if out[i].MedicationID != id {
			t.Fatalf("position %d: expected %s, got %s", i, id, out[i].MedicationID)
		}
	}
}

func TestDueToday_PureNoMutation(t *testing.T) {
	meds := []PatientMedication{
		med("m1", "A", "08:00", DailyRecurrence()),
	}
	_ = DueToday(monNoon, meds)
	_ = DueToday(monNoon, meds)

	m := meds[0].Medication
	if m.Stock != 10 || m.LastTaken != nil || m.ScheduleTime != "08:00" {
		t.Fatalf("DueToday mutated its input: %+v", m)
	}
}
