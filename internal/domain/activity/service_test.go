package activity

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"
)

type testRepo struct {
	entries []Entry
}

func (r *testRepo) Append(ctx context.Context, e Entry) error {
	if e.ID == "" {
		return errors.New("repo: id required")
	}
	r.entries = append(r.entries, e)
	return nil
}

func (r *testRepo) ListByAccount(ctx context.Context, accountID string, limit int) ([]Entry, error) {
	out := make([]Entry, 0)
	for _, e := range r.entries {
		if e.AccountID == accountID {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func TestRecord_StampsIDAndTime(t *testing.T) {
	repo := &testRepo{}
	svc := NewService(repo)

	now := time.Date(2025, 12, 22, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	if err := svc.Record(context.Background(), "acct-1", "Dispensed Aspirin", "Stock remaining: 9"); err != nil {
		t.Fatalf("Record error: %v", err)
	}

	if len(repo.entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(repo.entries))
	}
	e := repo.entries[0]
	if e.ID == "" {
		t.Fatalf("expected generated id")
	}
	if e.CreatedAt != now {
		t.Fatalf("expected CreatedAt stamped with service clock")
	}
}

func TestRecord_RequiresAccountAndAction(t *testing.T) {
	svc := NewService(&testRepo{})

	if err := svc.Record(context.Background(), "", "Dispensed Aspirin", ""); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput without account, got %v", err)
	}
	if err := svc.Record(context.Background(), "acct-1", "  ", ""); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput without action, got %v", err)
	}
}

func TestList_NewestFirstScopedToAccount(t *testing.T) {
	repo := &testRepo{}
	svc := NewService(repo)

	base := time.Date(2025, 12, 22, 10, 0, 0, 0, time.UTC)
	for i, acct := range []string{"acct-1", "acct-2", "acct-1"} {
		svc.now = func() time.Time { return base.Add(time.Duration(i) * time.Minute) }
		if err := svc.Record(context.Background(), acct, "Action", ""); err != nil {
			t.Fatalf("Record #%d error: %v", i, err)
		}
	}

	out, err := svc.List(context.Background(), "acct-1", 0)
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected 2 entries for acct-1, got %d", len(out))
	}
	if !out[0].CreatedAt.After(out[1].CreatedAt) {
		t.Fatalf("expected newest first")
	}
}
