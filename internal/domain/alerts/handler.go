package alerts

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"care-companion/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Post("/api/request", requestHandler(svc))
}

// manualRequest es el cuerpo de un pedido manual desde el dashboard.
type manualRequest struct {
	Type string `json:"type" enums:"medicine,water,help"`
	Note string `json:"note"`
}

// requestHandler godoc
// @Summary Pedido manual / botón de pánico
// @Description Registra un pedido manual en el historial. `help` registra una alerta de emergencia y dispara la notificación al cuidador (fire-and-forget: la respuesta no espera el envío).
// @Tags alerts
// @Accept json
// @Produce json
// @Param payload body manualRequest true "Tipo de pedido"
// @Success 200 {object} map[string]any
// @Failure 400 {string} string "invalid json / tipo inválido"
// @Failure 401 {string} string "unauthorized"
// @Router /api/request [post]
func requestHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.AccountID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req manualRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		kind, err := ParseRequestKind(req.Type)
		if err != nil {
			http.Error(w, "invalid request type", http.StatusBadRequest)
			return
		}

		if err := svc.HandleRequest(r.Context(), claims.AccountID, kind, req.Note); err != nil {
			if errors.Is(err, ErrInvalidInput) {
				http.Error(w, "invalid request", http.StatusBadRequest)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"message": string(kind) + " request received",
		})
	}
}
