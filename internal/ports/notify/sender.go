package notify

import "context"

// Sender es el colaborador de notificaciones de emergencia (email/SMS).
// El resultado nunca condiciona la operación de dominio que lo dispara:
// si el envío falla, la mutación y su entrada de auditoría quedan igual.
type Sender interface {
	Send(ctx context.Context, subject, body string) (delivered bool, err error)
}
