package auth

// Claims representa la información extraída del token.
// AccountID es la cuenta del cuidador dueña de pacientes y medicaciones.
type Claims struct {
	AccountID string
	Username  string
}
