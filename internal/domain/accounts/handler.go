package accounts

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// TokenIssuer firma tokens de sesión para una cuenta.
// Lo satisface el adapter de tokens JWT.
type TokenIssuer interface {
	Sign(accountID, username string) (string, error)
}

func RegisterRoutes(r chi.Router, svc *Service, issuer TokenIssuer) {
	r.Post("/auth/register", registerHandler(svc, issuer))
	r.Post("/auth/login", loginHandler(svc, issuer))
}

// credentialsRequest es el cuerpo de register/login.
type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// sessionResponse es la sesión emitida tras register/login.
type sessionResponse struct {
	Token     string `json:"token"`
	AccountID string `json:"account_id"`
	Username  string `json:"username"`
}

// registerHandler godoc
// @Summary Registrar cuenta de cuidador
// @Tags auth
// @Accept json
// @Produce json
// @Param payload body credentialsRequest true "Credenciales"
// @Success 201 {object} sessionResponse
// @Failure 400 {string} string "invalid json / datos inválidos"
// @Failure 409 {string} string "username already exists"
// @Router /auth/register [post]
func registerHandler(svc *Service, issuer TokenIssuer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req credentialsRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		a, err := svc.Register(r.Context(), req.Username, req.Password)
		if err != nil {
			if errors.Is(err, ErrUsernameTaken) {
				http.Error(w, "username already exists", http.StatusConflict)
				return
			}
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		writeSession(w, http.StatusCreated, a, issuer)
	}
}

// loginHandler godoc
// @Summary Iniciar sesión
// @Tags auth
// @Accept json
// @Produce json
// @Param payload body credentialsRequest true "Credenciales"
// @Success 200 {object} sessionResponse
// @Failure 400 {string} string "invalid json"
// @Failure 401 {string} string "invalid credentials"
// @Router /auth/login [post]
func loginHandler(svc *Service, issuer TokenIssuer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req credentialsRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		a, err := svc.Login(r.Context(), req.Username, req.Password)
		if err != nil {
			http.Error(w, "invalid credentials", http.StatusUnauthorized)
			return
		}

		writeSession(w, http.StatusOK, a, issuer)
	}
}

func writeSession(w http.ResponseWriter, status int, a Account, issuer TokenIssuer) {
	token := ""
	if issuer != nil {
		t, err := issuer.Sign(a.ID, a.Username)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		token = t
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(sessionResponse{
		Token:     token,
		AccountID: a.ID,
		Username:  a.Username,
	})
}
