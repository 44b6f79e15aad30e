package patients

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"care-companion/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Post("/api/setup", setupHandler(svc))
	r.Get("/api/patients", listPatientsHandler(svc))
}

// setupMedicationRequest es una medicación dentro del setup inicial.
type setupMedicationRequest struct {
	Name         string `json:"name"`
	Dosage       string `json:"dosage"`
	Stock        int    `json:"stock"`
	MaxStock     int    `json:"max_stock"` // opcional; 0 => default
	Time         string `json:"time"`      // "HH:MM"
	Instructions string `json:"instructions"`
	Frequency    string `json:"frequency"`     // "Daily" o "Weekly"
	SelectedDays string `json:"selected_days"` // "Mon,Wed" cuando no es Daily
}

// setupPatientRequest es un paciente con sus medicaciones.
type setupPatientRequest struct {
	Name string                   `json:"name"`
	Meds []setupMedicationRequest `json:"meds"`
}

// setupRequest es el cuerpo del setup inicial de la cuenta.
type setupRequest struct {
	Patients []setupPatientRequest `json:"patients"`
}

// patientResponse representa un paciente de la cuenta.
type patientResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// setupHandler godoc
// @Summary Setup inicial de la cuenta
// @Description Reemplaza la lista completa de pacientes y medicaciones de la cuenta (borra lo existente para evitar duplicados). Autenticación: `X-Debug-Account-ID` (dev) o `Authorization: Bearer <token>`.
// @Tags patients
// @Accept json
// @Produce json
// @Param payload body setupRequest true "Pacientes con sus medicaciones"
// @Success 200 {object} map[string]any
// @Failure 400 {string} string "invalid json / datos inválidos"
// @Failure 401 {string} string "unauthorized"
// @Router /api/setup [post]
func setupHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.AccountID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req setupRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		setup := make([]SetupPatient, 0, len(req.Patients))
		for _, sp := range req.Patients {
			meds := make([]Reminder, 0, len(sp.Meds))
			for _, m := range sp.Meds {
				rec := m.Frequency
				if !strings.EqualFold(rec, "Daily") {
					rec = m.SelectedDays
				}
				meds = append(meds, Reminder{
					Name:         m.Name,
					Dosage:       m.Dosage,
					Time:         m.Time,
					Instructions: m.Instructions,
					Recurrence:   rec,
					Stock:        m.Stock,
					MaxStock:     m.MaxStock,
				})
			}
			setup = append(setup, SetupPatient{Name: sp.Name, Meds: meds})
		}

		if _, err := svc.ReplaceAccount(r.Context(), claims.AccountID, setup); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{"success": true})
	}
}

// listPatientsHandler godoc
// @Summary Pacientes de la cuenta
// @Tags patients
// @Produce json
// @Success 200 {array} patientResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 500 {string} string "internal error"
// @Router /api/patients [get]
func listPatientsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.AccountID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		items, err := svc.ListByAccount(r.Context(), claims.AccountID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]patientResponse, 0, len(items))
		for _, p := range items {
			out = append(out, patientResponse{ID: p.ID, Name: p.Name, CreatedAt: p.CreatedAt})
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
