package alerts

import (
	"context"
	"errors"
	"strings"
	"time"

	"care-companion/internal/platform/logger"
	"care-companion/internal/ports/notify"
)

var (
	ErrInvalidInput = errors.New("invalid input")
)

// RequestKind son los pedidos manuales del dashboard.
// @Enum medicine, water, help
type RequestKind string

const (
	RequestMedicine RequestKind = "medicine"
	RequestWater    RequestKind = "water"
	RequestHelp     RequestKind = "help"
)

func ParseRequestKind(s string) (RequestKind, error) {
	switch RequestKind(strings.ToLower(strings.TrimSpace(s))) {
	case RequestMedicine:
		return RequestMedicine, nil
	case RequestWater:
		return RequestWater, nil
	case RequestHelp:
		return RequestHelp, nil
	default:
		return "", ErrInvalidInput
	}
}

// ActivityRecorder es el trail de auditoría. Lo satisface *activity.Service.
type ActivityRecorder interface {
	Record(ctx context.Context, accountID, action, detail string) error
}

type Service struct {
	trail  ActivityRecorder
	sender notify.Sender // puede ser nil (sin notificador configurado)
	log    logger.Logger

	// Timeout del envío asíncrono; el request nunca espera este contexto.
	sendTimeout time.Duration
}

func NewService(trail ActivityRecorder, sender notify.Sender, log logger.Logger) *Service {
	return &Service{
		trail:       trail,
		sender:      sender,
		log:         log,
		sendTimeout: 15 * time.Second,
	}
}

// HandleRequest registra un pedido manual. Para "help" registra la alerta
// de emergencia y dispara el notificador fire-and-forget: la entrada del
// trail se commitea antes y nunca depende del resultado del envío.
func (s *Service) HandleRequest(ctx context.Context, accountID string, kind RequestKind, note string) error {
	accountID = strings.TrimSpace(accountID)
	if accountID == "" {
		return ErrInvalidInput
	}

	action := "Requested " + strings.ToUpper(string(kind)[:1]) + string(kind)[1:]
	detail := "Manual Request via Dashboard"

	if kind == RequestHelp {
		action = "EMERGENCY ALERT"
		detail = "Patient pressed Panic Button"
		if note = strings.TrimSpace(note); note != "" {
			detail += ": " + note
		}
	}

	if err := s.trail.Record(ctx, accountID, action, detail); err != nil {
		return err
	}

	if kind == RequestHelp && s.sender != nil {
		go s.dispatchAlert(accountID, detail)
	}
	return nil
}

// dispatchAlert corre fuera del request: contexto propio con timeout,
// resultado solo al log del servidor.
func (s *Service) dispatchAlert(accountID, detail string) {
	ctx, cancel := context.WithTimeout(context.Background(), s.sendTimeout)
	defer cancel()

	delivered, err := s.sender.Send(ctx, "EMERGENCY ALERT", detail)
	if err != nil || !delivered {
		s.log.Warn("emergency alert delivery failed", map[string]any{
			"account_id": accountID,
			"error":      errString(err),
		})
		return
	}
	s.log.Info("emergency alert delivered", map[string]any{"account_id": accountID})
}

func errString(err error) string {
	if err == nil {
		return "not delivered"
	}
	return err.Error()
}
