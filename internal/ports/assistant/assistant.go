package assistant

import "context"

// Action es la intención que el asistente puede emitir.
// El motor nunca ejecuta DISPENSE por su cuenta: solo la reporta al caller.
type Action string

const (
	ActionNone     Action = "NONE"
	ActionDispense Action = "DISPENSE"
)

// Reply es la respuesta interpretada del asistente.
type Reply struct {
	Message string
	Action  Action
}

// Assistant interpreta un comando de texto del cuidador contra el
// inventario actual. Es una caja negra: prompt entra, Reply sale.
type Assistant interface {
	Interpret(ctx context.Context, prompt string) (Reply, error)
}
