package activity

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
)

const defaultListLimit = 100

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

// Record inserta una entrada nueva. No valida más allá de action no vacío.
func (s *Service) Record(ctx context.Context, accountID, action, detail string) error {
	accountID = strings.TrimSpace(accountID)
	action = strings.TrimSpace(action)
	if accountID == "" || action == "" {
		return ErrInvalidInput
	}

	return s.repo.Append(ctx, Entry{
		ID:        uuid.NewString(),
		AccountID: accountID,
		Action:    action,
		Detail:    strings.TrimSpace(detail),
		CreatedAt: s.now(),
	})
}

// List devuelve el historial de la cuenta, más reciente primero.
func (s *Service) List(ctx context.Context, accountID string, limit int) ([]Entry, error) {
	accountID = strings.TrimSpace(accountID)
	if accountID == "" {
		return nil, ErrInvalidInput
	}
	if limit <= 0 || limit > 500 {
		limit = defaultListLimit
	}
	return s.repo.ListByAccount(ctx, accountID, limit)
}
