package voice

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"care-companion/internal/domain/medications"
	"care-companion/internal/domain/patients"
	"care-companion/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, patientsSvc *patients.Service, medsSvc *medications.Service) {
	r.Post("/api/voice/process", processHandler(svc, patientsSvc, medsSvc))
}

// voiceRequest es el comando de texto del cuidador.
type voiceRequest struct {
	Text string `json:"text"`
}

// voiceResponse es la respuesta interpretada del asistente.
type voiceResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Action  string `json:"action,omitempty" enums:"NONE,DISPENSE"`
	Error   string `json:"error,omitempty"`
}

// processHandler godoc
// @Summary Procesar comando de voz
// @Description Manda el comando al asistente con el inventario de la cuenta como contexto. Una intención DISPENSE se devuelve al caller, nunca se ejecuta acá. Si el asistente no responde, la respuesta degrada sin fallar la operación.
// @Tags voice
// @Accept json
// @Produce json
// @Param payload body voiceRequest true "Comando de texto"
// @Success 200 {object} voiceResponse
// @Failure 400 {string} string "invalid json / texto vacío"
// @Failure 401 {string} string "unauthorized"
// @Router /api/voice/process [post]
func processHandler(svc *Service, patientsSvc *patients.Service, medsSvc *medications.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.AccountID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req voiceRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		ps, err := patientsSvc.ListByAccount(r.Context(), claims.AccountID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		ctxMeds := make([]MedicationContext, 0)
		for _, p := range ps {
			meds, err := medsSvc.ListByPatient(r.Context(), p.ID)
			if err != nil {
				http.Error(w, "internal error", http.StatusInternalServerError)
				return
			}
			for _, m := range meds {
				ctxMeds = append(ctxMeds, MedicationContext{
					PatientName:  p.Name,
					Name:         m.Name,
					Dosage:       m.Dosage,
					Stock:        m.Stock,
					ScheduleTime: m.ScheduleTime,
					Instructions: m.Instructions,
				})
			}
		}

		reply, err := svc.Process(r.Context(), ctxMeds, req.Text)
		if err != nil {
			if errors.Is(err, ErrInvalidInput) {
				http.Error(w, "text required", http.StatusBadRequest)
				return
			}
			// Colaborador caído: degradar, no fallar el request.
			writeJSON(w, http.StatusOK, voiceResponse{Success: false, Error: "assistant unavailable"})
			return
		}

		writeJSON(w, http.StatusOK, voiceResponse{
			Success: true,
			Message: reply.Message,
			Action:  string(reply.Action),
		})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
