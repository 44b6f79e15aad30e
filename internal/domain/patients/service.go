package patients

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

// Reminder son los datos de una medicación tal como llegan del setup.
// El módulo de medicaciones los valida y aplica sus defaults.
type Reminder struct {
	Name         string
	Dosage       string
	Time         string // "HH:MM"
	Instructions string
	Recurrence   string // "Daily" o "Mon,Wed"
	Stock        int
	MaxStock     int
}

// MedicationWriter es lo que este módulo necesita del de medicaciones.
// Se define acá (y lo implementa medications.Service) para evitar un
// ciclo de imports entre patients y medications.
type MedicationWriter interface {
	CreateReminder(ctx context.Context, patientID string, r Reminder) error
	DeleteByPatient(ctx context.Context, patientID string) error
}

type Service struct {
	repo Repository
	meds MedicationWriter
	now  func() time.Time
}

func NewService(repo Repository, meds MedicationWriter) *Service {
	return &Service{
		repo: repo,
		meds: meds,
		now:  time.Now,
	}
}

func (s *Service) Create(ctx context.Context, accountID, name string) (Patient, error) {
	accountID = strings.TrimSpace(accountID)
	name = strings.TrimSpace(name)
	if accountID == "" || name == "" {
		return Patient{}, ErrInvalidInput
	}

	p := Patient{
		ID:        uuid.NewString(),
		AccountID: accountID,
		Name:      name,
		CreatedAt: s.now(),
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return Patient{}, err
	}
	return p, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Patient, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListByAccount(ctx context.Context, accountID string) ([]Patient, error) {
	return s.repo.ListByAccount(ctx, accountID)
}

// AccountOf expone la cuenta dueña de un paciente.
// Los handlers lo usan para chequear ownership sin acoplar módulos.
func (s *Service) AccountOf(ctx context.Context, patientID string) (string, error) {
	p, err := s.GetByID(ctx, patientID)
	if err != nil {
		return "", err
	}
	return p.AccountID, nil
}

// SetupPatient es un paciente con sus medicaciones para el setup inicial.
type SetupPatient struct {
	Name string
	Meds []Reminder
}

// ReplaceAccount reemplaza la lista completa de pacientes de la cuenta:
// borra los existentes (las medicaciones van en cascada) y crea los nuevos.
// Es lo que evita duplicados si el cuidador re-corre el setup.
func (s *Service) ReplaceAccount(ctx context.Context, accountID string, setup []SetupPatient) ([]Patient, error) {
	accountID = strings.TrimSpace(accountID)
	if accountID == "" {
		return nil, ErrInvalidInput
	}
	for _, sp := range setup {
		if strings.TrimSpace(sp.Name) == "" {
			return nil, ErrInvalidInput
		}
	}

	existing, err := s.repo.ListByAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}
	for _, p := range existing {
		if err := s.meds.DeleteByPatient(ctx, p.ID); err != nil {
			return nil, err
		}
	}
	if err := s.repo.DeleteByAccount(ctx, accountID); err != nil {
		return nil, err
	}

	created := make([]Patient, 0, len(setup))
	for _, sp := range setup {
		p, err := s.Create(ctx, accountID, sp.Name)
		if err != nil {
			return nil, err
		}
		for _, rem := range sp.Meds {
			if err := s.meds.CreateReminder(ctx, p.ID, rem); err != nil {
				return nil, err
			}
		}
		created = append(created, p)
	}
	return created, nil
}
