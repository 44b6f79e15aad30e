package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"care-companion/internal/domain/activity"
)

// activityRepo es append-only: no hay update ni delete, ni siquiera acá.
type activityRepo struct {
	mu      sync.RWMutex
	entries []activity.Entry
}

func NewActivityRepo() activity.Repository {
	return &activityRepo{
		entries: make([]activity.Entry, 0),
	}
}

func (r *activityRepo) Append(ctx context.Context, e activity.Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(e.ID) == "" {
		return errors.New("entry id required")
	}
	r.entries = append(r.entries, e)
	return nil
}

func (r *activityRepo) ListByAccount(ctx context.Context, accountID string, limit int) ([]activity.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]activity.Entry, 0)
	for _, e := range r.entries {
		if e.AccountID == accountID {
			out = append(out, e)
		}
	}

	// Más reciente primero
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
