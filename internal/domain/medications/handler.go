package medications

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"care-companion/internal/domain/patients"
	"care-companion/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, patientsSvc *patients.Service) {
	r.Get("/api/schedule", scheduleHandler(svc, patientsSvc))
	r.Get("/api/inventory", inventoryHandler(svc, patientsSvc))
	r.Get("/api/stats", statsHandler(svc, patientsSvc))

	r.Post("/api/task/add", addTaskHandler(svc, patientsSvc))
	r.Post("/api/task/delete", deleteTaskHandler(svc, patientsSvc))
	r.Post("/api/task/toggle", toggleTaskHandler(svc, patientsSvc))
}

// scheduleEntryResponse es una dosis que toca hoy.
type scheduleEntryResponse struct {
	ID      string     `json:"id"`
	Day     string     `json:"day"`
	Time    string     `json:"time"`
	Task    string     `json:"task"`
	Patient string     `json:"patient"`
	Type    string     `json:"type"`
	Status  DoseStatus `json:"status" enums:"completed,upcoming,pending"`
	IsDone  bool       `json:"is_done"`
}

// inventoryItemResponse es el estado de inventario de una medicación.
type inventoryItemResponse struct {
	Name         string      `json:"name"`
	Dosage       string      `json:"dosage"`
	Stock        int         `json:"stock"`
	Total        int         `json:"total"`
	Unit         string      `json:"unit"`
	Status       StockStatus `json:"status" enums:"ok,low"`
	Instructions string      `json:"instructions"`
}

// statsResponse es el resumen de adherencia del día.
type statsResponse struct {
	Total  int `json:"total"`
	Taken  int `json:"taken"`
	Missed int `json:"missed"`
	Score  int `json:"score"`
}

// accountMedications junta las medicaciones de todos los pacientes de la
// cuenta con el nombre de cada paciente. Es el join que las proyecciones
// necesitan; los permisos ya quedaron resueltos por claims.
func accountMedications(r *http.Request, svc *Service, patientsSvc *patients.Service, accountID string) ([]PatientMedication, error) {
	ps, err := patientsSvc.ListByAccount(r.Context(), accountID)
	if err != nil {
		return nil, err
	}

	out := make([]PatientMedication, 0)
	for _, p := range ps {
		meds, err := svc.ListByPatient(r.Context(), p.ID)
		if err != nil {
			return nil, err
		}
		for _, m := range meds {
			out = append(out, PatientMedication{Medication: m, PatientName: p.Name})
		}
	}
	return out, nil
}

// scheduleHandler godoc
// @Summary Agenda de hoy
// @Description Devuelve las dosis que tocan hoy para todos los pacientes de la cuenta, con estado calculado y ordenadas por hora. Autenticación: `X-Debug-Account-ID` (dev) o `Authorization: Bearer <token>`.
// @Tags medications
// @Produce json
// @Success 200 {array} scheduleEntryResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 500 {string} string "internal error"
// @Router /api/schedule [get]
func scheduleHandler(svc *Service, patientsSvc *patients.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.AccountID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		meds, err := accountMedications(r, svc, patientsSvc, claims.AccountID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		entries := DueToday(svc.Now(), meds)

		out := make([]scheduleEntryResponse, 0, len(entries))
		for _, e := range entries {
			out = append(out, scheduleEntryResponse{
				ID:      e.MedicationID,
				Day:     "Today",
				Time:    e.Time,
				Task:    e.Name,
				Patient: e.PatientName,
				Type:    "medicine",
				Status:  e.Status,
				IsDone:  e.IsDone,
			})
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// inventoryHandler godoc
// @Summary Inventario de medicaciones
// @Description Stock y salud de inventario por medicación de la cuenta. `status` es `low` bajo el umbral de reposición.
// @Tags medications
// @Produce json
// @Success 200 {array} inventoryItemResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 500 {string} string "internal error"
// @Router /api/inventory [get]
func inventoryHandler(svc *Service, patientsSvc *patients.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.AccountID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		meds, err := accountMedications(r, svc, patientsSvc, claims.AccountID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]inventoryItemResponse, 0, len(meds))
		for _, pm := range meds {
			status, total := Health(pm.Medication)
			out = append(out, inventoryItemResponse{
				Name:         pm.Medication.Name + " (" + pm.PatientName + ")",
				Dosage:       pm.Medication.Dosage,
				Stock:        pm.Medication.Stock,
				Total:        total,
				Unit:         "tablets",
				Status:       status,
				Instructions: pm.Medication.Instructions,
			})
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// statsHandler godoc
// @Summary Adherencia del día
// @Description Resumen tomadas/pendientes sobre todas las medicaciones de la cuenta.
// @Tags medications
// @Produce json
// @Success 200 {object} statsResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 500 {string} string "internal error"
// @Router /api/stats [get]
func statsHandler(svc *Service, patientsSvc *patients.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.AccountID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		pms, err := accountMedications(r, svc, patientsSvc, claims.AccountID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		meds := make([]Medication, 0, len(pms))
		for _, pm := range pms {
			meds = append(meds, pm.Medication)
		}

		st := Adherence(svc.Now(), meds)
		writeJSON(w, http.StatusOK, statsResponse{
			Total:  st.Total,
			Taken:  st.Taken,
			Missed: st.Missed,
			Score:  st.Score,
		})
	}
}

// addTaskRequest es el cuerpo para crear un recordatorio manual.
type addTaskRequest struct {
	PatientID    string `json:"patient_id"` // opcional: default primer paciente
	Name         string `json:"name"`
	Dosage       string `json:"dosage"`
	Time         string `json:"time"` // "HH:MM"
	Instructions string `json:"instructions"`
	Recurrence   string `json:"recurrence"` // "Daily" o "Mon,Wed"; default Daily
}

// addTaskHandler godoc
// @Summary Agregar recordatorio
// @Description Crea una medicación con defaults del recordatorio manual (stock = máximo = 30, recurrencia diaria salvo indicación).
// @Tags medications
// @Accept json
// @Produce json
// @Param payload body addTaskRequest true "Datos del recordatorio"
// @Success 201 {object} map[string]any
// @Failure 400 {string} string "invalid json / datos inválidos"
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "patient not found"
// @Router /api/task/add [post]
func addTaskHandler(svc *Service, patientsSvc *patients.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.AccountID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req addTaskRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		patientID := strings.TrimSpace(req.PatientID)
		if patientID == "" {
			// Sin paciente explícito: el primero de la cuenta.
			ps, err := patientsSvc.ListByAccount(r.Context(), claims.AccountID)
			if err != nil || len(ps) == 0 {
				http.Error(w, "patient not found", http.StatusNotFound)
				return
			}
			patientID = ps[0].ID
		} else {
			owner, err := patientsSvc.AccountOf(r.Context(), patientID)
			if err != nil || owner != claims.AccountID {
				http.Error(w, "patient not found", http.StatusNotFound)
				return
			}
		}

		rec, err := ParseRecurrence(req.Recurrence)
		if err != nil {
			http.Error(w, "invalid recurrence", http.StatusBadRequest)
			return
		}

		m, err := svc.Create(r.Context(), CreateInput{
			PatientID:    patientID,
			Name:         req.Name,
			Dosage:       req.Dosage,
			ScheduleTime: req.Time,
			Instructions: req.Instructions,
			Recurrence:   rec,
		})
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		writeJSON(w, http.StatusCreated, map[string]any{"success": true, "id": m.ID})
	}
}

// taskIDRequest referencia una medicación por id.
type taskIDRequest struct {
	ID string `json:"id"`
}

// deleteTaskHandler godoc
// @Summary Eliminar medicación
// @Description Elimina una medicación de la cuenta por id.
// @Tags medications
// @Accept json
// @Produce json
// @Param payload body taskIDRequest true "ID de la medicación"
// @Success 200 {object} map[string]any
// @Failure 400 {string} string "invalid json"
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "medication not found"
// @Router /api/task/delete [post]
func deleteTaskHandler(svc *Service, patientsSvc *patients.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.AccountID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req taskIDRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		if !ownsMedication(r, svc, patientsSvc, claims.AccountID, req.ID) {
			http.Error(w, "medication not found", http.StatusNotFound)
			return
		}

		if err := svc.Delete(r.Context(), req.ID); err != nil {
			http.Error(w, "medication not found", http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"success": true})
	}
}

// toggleTaskHandler godoc
// @Summary Marcar/desmarcar dosis
// @Description Take/undo de la dosis de hoy. Take descuenta stock y registra "Dispensed"; undo devuelve stock (capeado al máximo) y registra "Undo". Con stock 0 el take falla sin mutar.
// @Tags medications
// @Accept json
// @Produce json
// @Param payload body taskIDRequest true "ID de la medicación"
// @Success 200 {object} map[string]any
// @Failure 400 {string} string "invalid json"
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "medication not found"
// @Failure 409 {string} string "out of stock"
// @Router /api/task/toggle [post]
func toggleTaskHandler(svc *Service, patientsSvc *patients.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.AccountID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req taskIDRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		m, err := svc.GetByID(r.Context(), req.ID)
		if err != nil {
			http.Error(w, "medication not found", http.StatusNotFound)
			return
		}
		owner, err := patientsSvc.AccountOf(r.Context(), m.PatientID)
		if err != nil || owner != claims.AccountID {
			http.Error(w, "medication not found", http.StatusNotFound)
			return
		}

		res, err := svc.Toggle(r.Context(), req.ID, claims.AccountID)
		if err != nil {
			switch {
			case errors.Is(err, ErrOutOfStock):
				http.Error(w, "Error: "+m.Name+" is Out of Stock!", http.StatusConflict)
			case errors.Is(err, ErrNotFound):
				http.Error(w, "medication not found", http.StatusNotFound)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"success": true,
			"taken":   res.Taken,
			"stock":   res.Medication.Stock,
		})
	}
}

func ownsMedication(r *http.Request, svc *Service, patientsSvc *patients.Service, accountID, medicationID string) bool {
	m, err := svc.GetByID(r.Context(), medicationID)
	if err != nil {
		return false
	}
	owner, err := patientsSvc.AccountOf(r.Context(), m.PatientID)
	return err == nil && owner == accountID
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
