package voice

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"care-companion/internal/platform/logger"
	"care-companion/internal/ports/assistant"
)

var (
	ErrInvalidInput         = errors.New("invalid input")
	ErrAssistantUnavailable = errors.New("assistant unavailable")
)

// MedicationContext es una línea del inventario que se le muestra al
// asistente para que responda solo sobre medicaciones que existen.
type MedicationContext struct {
	PatientName  string
	Name         string
	Dosage       string
	Stock        int
	ScheduleTime string
	Instructions string
}

type Service struct {
	ai  assistant.Assistant // puede ser nil (sin asistente configurado)
	log logger.Logger
}

func NewService(ai assistant.Assistant, log logger.Logger) *Service {
	return &Service{ai: ai, log: log}
}

// Process interpreta un comando de texto contra el inventario actual.
// El asistente es caja negra: puede emitir una intención DISPENSE, pero
// acá nunca se ejecuta — el caller decide qué hacer con ella.
// Si el colaborador falla o no está configurado, la respuesta degrada;
// nunca escala como fallo de la operación.
func (s *Service) Process(ctx context.Context, meds []MedicationContext, userText string) (assistant.Reply, error) {
	userText = strings.TrimSpace(userText)
	if userText == "" {
		return assistant.Reply{}, ErrInvalidInput
	}

	if s.ai == nil {
		return assistant.Reply{
			Message: "The assistant is not configured.",
			Action:  assistant.ActionNone,
		}, nil
	}

	reply, err := s.ai.Interpret(ctx, buildPrompt(meds, userText))
	if err != nil {
		s.log.Warn("assistant call failed", map[string]any{"error": err.Error()})
		return assistant.Reply{}, ErrAssistantUnavailable
	}

	if reply.Action != assistant.ActionDispense {
		reply.Action = assistant.ActionNone
	}
	return reply, nil
}

// buildPrompt arma el contexto de sistema con el inventario real por
// paciente, y las reglas que fuerzan al modelo a no inventar medicaciones.
func buildPrompt(meds []MedicationContext, userText string) string {
	var b strings.Builder

	byPatient := map[string][]MedicationContext{}
	order := make([]string, 0)
	for _, m := range meds {
		if _, ok := byPatient[m.PatientName]; !ok {
			order = append(order, m.PatientName)
		}
		byPatient[m.PatientName] = append(byPatient[m.PatientName], m)
	}

	for i, name := range order {
		if i > 0 {
			b.WriteString("\n\n")
		}
		fmt.Fprintf(&b, "PATIENT: %s\nMEDS:", name)
		for _, m := range byPatient[name] {
			fmt.Fprintf(&b, "\n - %s (%s): Stock %d, Due %s, Note: %s",
				m.Name, m.Dosage, m.Stock, m.ScheduleTime, m.Instructions)
		}
	}

	return fmt.Sprintf(`You are MediBot.

SYSTEM DATA (Only these meds exist):
%s

USER COMMAND: %q

RULES:
1. STRICTLY CHECK INVENTORY. If user asks for a med NOT in System Data, say "I don't have that medication in my records."
2. CHECK INSTRUCTIONS. If dispensing, remind them of the instructions (e.g. "Take before food").
3. Output JSON ONLY: {"response": "text", "action": "NONE" or "DISPENSE"}`,
		b.String(), userText)
}
