package medications

import (
	"testing"
	"time"
)

func TestAdherence_CountsAllMedications(t *testing.T) {
	now := time.Date(2025, 12, 22, 18, 0, 0, 0, time.UTC)
	taken := now.Add(-4 * time.Hour)

	mk := func(last *time.Time, rec Recurrence) Medication {
		return Medication{Recurrence: rec, LastTaken: last}
	}

	// 4 medicaciones, 3 tomadas hoy. La no programada hoy (Tue) cuenta
	// igual en el denominador.
	meds := []Medication{
		mk(&taken, DailyRecurrence()),
		mk(&taken, DailyRecurrence()),
		mk(&taken, OnDays(Tue)),
		mk(nil, DailyRecurrence()),
	}

	st := Adherence(now, meds)
	if st.Total != 4 || st.Taken != 3 || st.Missed != 1 {
		t.Fatalf("expected 4/3/1, got %d/%d/%d", st.Total, st.Taken, st.Missed)
	}
	if st.Score != 75 {
		t.Fatalf("expected score 75, got %d", st.Score)
	}
}

func TestAdherence_ScoreTruncates(t *testing.T) {
	now := time.Date(2025, 12, 22, 18, 0, 0, 0, time.UTC)
	taken := now.Add(-time.Hour)

	meds := []Medication{
		{LastTaken: &taken},
		{},
		{},
	}

	st := Adherence(now, meds)
	if st.Score != 33 {
		t.Fatalf("1/3 should truncate to 33, got %d", st.Score)
	}
}

func TestAdherence_EmptyIsZero(t *testing.T) {
	st := Adherence(time.Now(), nil)
	if st.Total != 0 || st.Taken != 0 || st.Missed != 0 || st.Score != 0 {
		t.Fatalf("expected all-zero stats, got %+v", st)
	}
}

func TestAdherence_YesterdayDoesNotCount(t *testing.T) {
	now := time.Date(2025, 12, 22, 9, 0, 0, 0, time.UTC)
	yesterday := now.AddDate(0, 0, -1)

	st := Adherence(now, []Medication{{LastTaken: &yesterday}})
	if st.Taken != 0 || st.Missed != 1 {
		t.Fatalf("stale LastTaken should not count as taken: %+v", st)
	}
}

func TestHealth_Thresholds(t *testing.T) {
	cases := []struct {
		stock int
		want  StockStatus
	}{
		{0, StockLow},
		{4, StockLow},
		{5, StockOK},
		{30, StockOK},
	}
	for _, c := range cases {
		status, _ := Health(Medication{Stock: c.stock, MaxStock: 30})
		if status != c.want {
			t.Fatalf("stock %d: expected %s, got %s", c.stock, c.want, status)
		}
	}
}

func TestHealth_TotalFallback(t *testing.T) {
	// Registro viejo sin máximo: el display usa el default.
	_, total := Health(Medication{Stock: 12})
	if total != DefaultMaxStock {
		t.Fatalf("expected default total %d, got %d", DefaultMaxStock, total)
	}

	_, total = Health(Medication{Stock: 12, MaxStock: 60})
	if total != 60 {
		t.Fatalf("expected total 60, got %d", total)
	}
}
