package floorplan

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"care-companion/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Post("/api/map/save", saveMapHandler(svc))
	r.Get("/api/map/load", loadMapHandler(svc))
}

// saveMapRequest es el cuerpo con la grilla dibujada.
type saveMapRequest struct {
	Grid json.RawMessage `json:"grid"`
}

// saveMapHandler godoc
// @Summary Guardar plano de la casa
// @Description Guarda la grilla 2D del plano para la cuenta, reemplazando la anterior si existía.
// @Tags floorplan
// @Accept json
// @Produce json
// @Param payload body saveMapRequest true "Grilla del plano"
// @Success 200 {object} map[string]any
// @Failure 400 {string} string "invalid json / grid requerido"
// @Failure 401 {string} string "unauthorized"
// @Router /api/map/save [post]
func saveMapHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.AccountID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req saveMapRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		if _, err := svc.Save(r.Context(), claims.AccountID, req.Grid); err != nil {
			if errors.Is(err, ErrInvalidInput) {
				http.Error(w, "grid required", http.StatusBadRequest)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"success": true,
			"message": "Map Layout Saved",
		})
	}
}

// loadMapHandler godoc
// @Summary Cargar plano de la casa
// @Description Devuelve la grilla guardada de la cuenta. Sin plano guardado responde success=false (no es error).
// @Tags floorplan
// @Produce json
// @Success 200 {object} map[string]any
// @Failure 401 {string} string "unauthorized"
// @Router /api/map/load [get]
func loadMapHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.AccountID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		l, err := svc.Load(r.Context(), claims.AccountID)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				writeJSON(w, http.StatusOK, map[string]any{
					"success": false,
					"message": "No saved map found",
				})
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"success": true,
			"grid":    l.Grid,
		})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
