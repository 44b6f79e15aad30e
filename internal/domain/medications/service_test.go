package medications

import (
	"context"
	"errors"
	"testing"
	"time"

	"care-companion/internal/platform/logger"
)

func newCreateService(t *testing.T) (*Service, *testRepo) {
	t.Helper()
	repo := newTestRepo()
	svc := NewService(repo, &testTrail{}, logger.Nop())
	svc.now = func() time.Time {
		return time.Date(2025, 12, 22, 12, 0, 0, 0, time.UTC)
	}
	return svc, repo
}

func TestCreate_Defaults(t *testing.T) {
	svc, _ := newCreateService(t)

	m, err := svc.Create(context.Background(), CreateInput{
		PatientID:    "p1",
		Name:         "Aspirin",
		ScheduleTime: "08:00",
		Recurrence:   DailyRecurrence(),
	})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	if m.Stock != DefaultMaxStock || m.MaxStock != DefaultMaxStock {
		t.Fatalf("expected full default bottle, got %d/%d", m.Stock, m.MaxStock)
	}
	if m.Dosage != "1 pill" {
		t.Fatalf("expected default dosage, got %q", m.Dosage)
	}
	if m.Instructions != "None" {
		t.Fatalf("expected default instructions, got %q", m.Instructions)
	}
	if m.LastTaken != nil {
		t.Fatalf("new medication must start untaken")
	}
	if m.ID == "" {
		t.Fatalf("expected generated id")
	}
}

func TestCreate_StockAboveMaxRaisesMax(t *testing.T) {
	svc, _ := newCreateService(t)

	m, err := svc.Create(context.Background(), CreateInput{
		PatientID:    "p1",
		Name:         "Aspirin",
		ScheduleTime: "08:00",
		Recurrence:   DailyRecurrence(),
		Stock:        45,
		MaxStock:     30,
	})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if m.Stock != 45 || m.MaxStock != 45 {
		t.Fatalf("expected max raised to stock, got %d/%d", m.Stock, m.MaxStock)
	}
}

func TestCreate_Validation(t *testing.T) {
	svc, _ := newCreateService(t)

	cases := []struct {
		name string
		in   CreateInput
	}{
		{"missing patient", CreateInput{Name: "A", ScheduleTime: "08:00", Recurrence: DailyRecurrence()}},
		{"missing name", CreateInput{PatientID: "p1", ScheduleTime: "08:00", Recurrence: DailyRecurrence()}},
		{"bad time", CreateInput{PatientID: "p1", Name: "A", ScheduleTime: "8am", Recurrence: DailyRecurrence()}},
		{"empty recurrence", CreateInput{PatientID: "p1", Name: "A", ScheduleTime: "08:00"}},
		{"negative stock", CreateInput{PatientID: "p1", Name: "A", ScheduleTime: "08:00", Recurrence: DailyRecurrence(), Stock: -1}},
	}

	for _, c := range cases {
		if _, err := svc.Create(context.Background(), c.in); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("%s: expected ErrInvalidInput, got %v", c.name, err)
		}
	}
}

func TestParseRecurrence(t *testing.T) {
	for _, raw := range []string{"", "Daily", "daily", "All", "all"} {
		r, err := ParseRecurrence(raw)
		if err != nil {
			t.Fatalf("%q: unexpected error %v", raw, err)
		}
		if !r.Daily {
			t.Fatalf("%q: expected daily", raw)
		}
	}

	r, err := ParseRecurrence("mon, WED")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Daily || len(r.Days) != 2 || r.Days[0] != Mon || r.Days[1] != Wed {
		t.Fatalf("expected [Mon Wed], got %+v", r)
	}
	if r.String() != "Mon,Wed" {
		t.Fatalf("round-trip: got %q", r.String())
	}

	if _, err := ParseRecurrence("Mon,Funday"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("unknown day should be rejected, got %v", err)
	}
	if _, err := ParseRecurrence("Mon,Mon"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("duplicate day should be rejected, got %v", err)
	}
}

func TestRecurrence_DueOn(t *testing.T) {
	if !DailyRecurrence().DueOn("Sun") {
		t.Fatalf("daily should be due any day")
	}
	r := OnDays(Mon, Fri)
	if !r.DueOn("Mon") || r.DueOn("Tue") {
		t.Fatalf("weekday set evaluated wrong")
	}
}
