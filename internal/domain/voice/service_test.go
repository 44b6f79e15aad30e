package voice

import (
	"context"
	"errors"
	"strings"
	"testing"

	"care-companion/internal/platform/logger"
	"care-companion/internal/ports/assistant"
)

type testAssistant struct {
	gotPrompt string
	reply     assistant.Reply
	err       error
}

func (a *testAssistant) Interpret(ctx context.Context, prompt string) (assistant.Reply, error) {
	a.gotPrompt = prompt
	return a.reply, a.err
}

func TestProcess_EmptyText(t *testing.T) {
	svc := NewService(nil, logger.Nop())
	if _, err := svc.Process(context.Background(), nil, "  "); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestProcess_NoAssistantDegrades(t *testing.T) {
	svc := NewService(nil, logger.Nop())

	reply, err := svc.Process(context.Background(), nil, "give me aspirin")
	if err != nil {
		t.Fatalf("degraded mode must not error: %v", err)
	}
	if reply.Action != assistant.ActionNone {
		t.Fatalf("expected NONE action, got %s", reply.Action)
	}
	if reply.Message == "" {
		t.Fatalf("expected a readable degraded message")
	}
}

func TestProcess_AssistantErrorIsUnavailable(t *testing.T) {
	ai := &testAssistant{err: errors.New("timeout")}
	svc := NewService(ai, logger.Nop())

	if _, err := svc.Process(context.Background(), nil, "hello"); !errors.Is(err, ErrAssistantUnavailable) {
		t.Fatalf("expected ErrAssistantUnavailable, got %v", err)
	}
}

func TestProcess_NormalizesUnknownAction(t *testing.T) {
	ai := &testAssistant{reply: assistant.Reply{Message: "ok", Action: assistant.Action("SELF_DESTRUCT")}}
	svc := NewService(ai, logger.Nop())

	reply, err := svc.Process(context.Background(), nil, "hello")
	if err != nil {
		t.Fatalf("Process error: %v", err)
	}
	if reply.Action != assistant.ActionNone {
		t.Fatalf("unknown action must normalize to NONE, got %s", reply.Action)
	}
}

func TestProcess_PromptCarriesInventory(t *testing.T) {
	ai := &testAssistant{reply: assistant.Reply{Message: "ok", Action: assistant.ActionDispense}}
	svc := NewService(ai, logger.Nop())

	meds := []MedicationContext{
		{PatientName: "Rosa", Name: "Aspirin", Dosage: "100mg", Stock: 9, ScheduleTime: "08:00", Instructions: "Take before food"},
		{PatientName: "Rosa", Name: "Lipitor", Dosage: "20mg", Stock: 3, ScheduleTime: "21:00", Instructions: "None"},
		{PatientName: "Pedro", Name: "Metformin", Dosage: "500mg", Stock: 8, ScheduleTime: "13:00", Instructions: "None"},
	}

	reply, err := svc.Process(context.Background(), meds, "dispense aspirin")
	if err != nil {
		t.Fatalf("Process error: %v", err)
	}
	if reply.Action != assistant.ActionDispense {
		t.Fatalf("dispense action must pass through, got %s", reply.Action)
	}

	for _, want := range []string{
		"PATIENT: Rosa",
		"PATIENT: Pedro",
		" - Aspirin (100mg): Stock 9, Due 08:00, Note: Take before food",
		`"dispense aspirin"`,
	} {
		if !strings.Contains(ai.gotPrompt, want) {
			t.Fatalf("prompt missing %q:\n%s", want, ai.gotPrompt)
		}
	}
}
