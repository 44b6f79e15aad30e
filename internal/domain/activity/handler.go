package activity

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"care-companion/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Get("/api/history", listHistoryHandler(svc))
}

// historyEntryResponse representa una entrada del historial de actividad.
type historyEntryResponse struct {
	Action    string    `json:"action"`
	Detail    string    `json:"detail"`
	Timestamp time.Time `json:"timestamp"`
}

// listHistoryHandler godoc
// @Summary Historial de actividad
// @Description Lista el historial de la cuenta (dispensas, undos, emergencias), más reciente primero. Autenticación: `X-Debug-Account-ID` (dev) o `Authorization: Bearer <token>`.
// @Tags activity
// @Produce json
// @Param limit query int false "Máximo de entradas (1-500). Por defecto 100"
// @Success 200 {array} historyEntryResponse
// @Failure 401 {string} string "unauthorized"
// @Router /api/history [get]
func listHistoryHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.AccountID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		limit := 0
		if v := r.URL.Query().Get("limit"); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				limit = n
			}
		}

		items, err := svc.List(r.Context(), claims.AccountID, limit)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]historyEntryResponse, 0, len(items))
		for _, e := range items {
			out = append(out, historyEntryResponse{
				Action:    e.Action,
				Detail:    e.Detail,
				Timestamp: e.CreatedAt,
			})
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
