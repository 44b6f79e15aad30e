package memory

import (
	"context"
	"errors"
	"strings"
	"sync"

	"care-companion/internal/domain/accounts"
)

type accountsRepo struct {
	mu         sync.RWMutex
	byID       map[string]accounts.Account
	byUsername map[string]string // username -> id
}

func NewAccountsRepo() accounts.Repository {
	return &accountsRepo{
		byID:       make(map[string]accounts.Account),
		byUsername: make(map[string]string),
	}
}

func (r *accountsRepo) Create(ctx context.Context, a accounts.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(a.ID) == "" {
		return errors.New("account id required")
	}
	if _, exists := r.byID[a.ID]; exists {
		return errors.New("account already exists")
	}
	key := strings.ToLower(a.Username)
	if _, exists := r.byUsername[key]; exists {
		return errors.New("username already exists")
	}

	r.byID[a.ID] = a
	r.byUsername[key] = a.ID
	return nil
}

func (r *accountsRepo) GetByID(ctx context.Context, id string) (accounts.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.byID[id]
	if !ok {
		return accounts.Account{}, ErrNotFound
	}
	return a, nil
}

func (r *accountsRepo) GetByUsername(ctx context.Context, username string) (accounts.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byUsername[strings.ToLower(strings.TrimSpace(username))]
	if !ok {
		return accounts.Account{}, ErrNotFound
	}
	return r.byID[id], nil
}
