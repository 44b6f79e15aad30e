package medications

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"care-companion/internal/platform/calendar"
	"care-companion/internal/platform/logger"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("medication not found")
	ErrOutOfStock   = errors.New("out of stock")
)

// ActivityRecorder es el trail de auditoría que el ledger alimenta.
// Lo satisface *activity.Service.
type ActivityRecorder interface {
	Record(ctx context.Context, accountID, action, detail string) error
}

type Service struct {
	repo  Repository
	trail ActivityRecorder
	log   logger.Logger
	now   func() time.Time

	// Un mutex por medicación: serializa take/undo sobre el mismo id.
	// Toggles sobre ids distintos no se bloquean entre sí.
	locksMu sync.Mutex
	locks   map[string]*sync.Mutex
}

func NewService(repo Repository, trail ActivityRecorder, log logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		repo:  repo,
		trail: trail,
		log:   log,
		now:   time.Now,
		locks: make(map[string]*sync.Mutex),
	}
}

// Now expone el reloj inyectado para que los handlers evalúen
// proyecciones (DueToday, Adherence) con el mismo "ahora" del servicio.
func (s *Service) Now() time.Time {
	return s.now()
}

type CreateInput struct {
	PatientID    string
	Name         string
	Dosage       string
	ScheduleTime string // "HH:MM"
	Instructions string
	Recurrence   Recurrence

	// Stock/MaxStock en 0 => defaults (DefaultMaxStock).
	Stock    int
	MaxStock int
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Medication, error) {
	patientID := strings.TrimSpace(in.PatientID)
	name := strings.TrimSpace(in.Name)
	schedTime := strings.TrimSpace(in.ScheduleTime)

	if patientID == "" || name == "" {
		return Medication{}, ErrInvalidInput
	}
	if !calendar.ValidTimeOfDay(schedTime) {
		return Medication{}, ErrInvalidInput
	}
	if !in.Recurrence.Valid() {
		return Medication{}, ErrInvalidInput
	}
	if in.Stock < 0 || in.MaxStock < 0 {
		return Medication{}, ErrInvalidInput
	}

	stock := in.Stock
	maxStock := in.MaxStock
	if maxStock == 0 {
		maxStock = DefaultMaxStock
	}
	if stock == 0 && in.MaxStock == 0 {
		stock = maxStock
	}
	// Un frasco más grande que el default sube el máximo, nunca al revés:
	// el invariante stock <= max se cumple desde la creación.
	if stock > maxStock {
		maxStock = stock
	}

	dosage := strings.TrimSpace(in.Dosage)
	if dosage == "" {
		dosage = "1 pill"
	}
	instructions := strings.TrimSpace(in.Instructions)
	if instructions == "" {
		instructions = "None"
	}

	now := s.now()
	m := Medication{
		ID:           uuid.NewString(),
		PatientID:    patientID,
		Name:         name,
		Dosage:       dosage,
		Instructions: instructions,
		ScheduleTime: schedTime,
		Recurrence:   in.Recurrence,
		Stock:        stock,
		MaxStock:     maxStock,
		LastTaken:    nil,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, m); err != nil {
		return Medication{}, err
	}
	return m, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Medication, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Medication{}, ErrNotFound
	}
	m, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Medication{}, ErrNotFound
	}
	return m, nil
}

func (s *Service) ListByPatient(ctx context.Context, patientID string) ([]Medication, error) {
	return s.repo.ListByPatient(ctx, patientID)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrNotFound
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return ErrNotFound
	}
	return nil
}

// DeleteByPatient implementa patients.MedicationPurger (cascada del setup).
func (s *Service) DeleteByPatient(ctx context.Context, patientID string) error {
	return s.repo.DeleteByPatient(ctx, patientID)
}

func (s *Service) lockFor(medicationID string) *sync.Mutex {
	s.locksMu.Lock()
	defer s.locksMu.Unlock()

	mu, ok := s.locks[medicationID]
	if !ok {
		mu = &sync.Mutex{}
		s.locks[medicationID] = mu
	}
	return mu
}
