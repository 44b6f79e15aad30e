package floorplan

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("no saved map found")
)

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

// Save guarda el plano de la cuenta, reemplazando el anterior si existe.
// El grid solo se valida como JSON; su forma es asunto del frontend.
func (s *Service) Save(ctx context.Context, accountID string, grid json.RawMessage) (Layout, error) {
	accountID = strings.TrimSpace(accountID)
	if accountID == "" || len(grid) == 0 || !json.Valid(grid) {
		return Layout{}, ErrInvalidInput
	}

	l := Layout{
		ID:        uuid.NewString(),
		AccountID: accountID,
		Grid:      grid,
		UpdatedAt: s.now(),
	}
	if existing, err := s.repo.GetByAccount(ctx, accountID); err == nil {
		l.ID = existing.ID
	}

	if err := s.repo.Upsert(ctx, l); err != nil {
		return Layout{}, err
	}
	return l, nil
}

// Load devuelve el plano guardado de la cuenta, o ErrNotFound.
func (s *Service) Load(ctx context.Context, accountID string) (Layout, error) {
	accountID = strings.TrimSpace(accountID)
	if accountID == "" {
		return Layout{}, ErrInvalidInput
	}

	l, err := s.repo.GetByAccount(ctx, accountID)
	if err != nil {
		return Layout{}, ErrNotFound
	}
	return l, nil
}
