package memory

import (
	"context"
	"errors"
	"strings"
	"sync"

	"care-companion/internal/domain/floorplan"
)

// Un plano por cuenta, indexado directo por cuenta.
type floorplanRepo struct {
	mu        sync.RWMutex
	byAccount map[string]floorplan.Layout
}

func NewFloorplanRepo() floorplan.Repository {
	return &floorplanRepo{
		byAccount: make(map[string]floorplan.Layout),
	}
}

func (r *floorplanRepo) Upsert(ctx context.Context, l floorplan.Layout) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(l.AccountID) == "" {
		return errors.New("account id required")
	}
	r.byAccount[l.AccountID] = l
	return nil
}

func (r *floorplanRepo) GetByAccount(ctx context.Context, accountID string) (floorplan.Layout, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	l, ok := r.byAccount[accountID]
	if !ok {
		return floorplan.Layout{}, ErrNotFound
	}
	return l, nil
}
