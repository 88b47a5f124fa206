package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/kiryshahaha/MAX/services/psychologist-service/internal/availability"
	"github.com/kiryshahaha/MAX/services/psychologist-service/internal/booking"
	"github.com/kiryshahaha/MAX/services/psychologist-service/internal/model"
)

type AppointmentsHandler struct {
	svc    *booking.Service
	logger *slog.Logger
}

func NewAppointmentsHandler(svc *booking.Service, logger *slog.Logger) *AppointmentsHandler {
	return &AppointmentsHandler{svc: svc, logger: logger}
}

type createAppointmentRequest struct {
	UserID           string  `json:"user_id"`
	PsychologistName string  `json:"psychologist_name"`
	AppointmentTime  string  `json:"appointment_time"`
	Notes            *string `json:"notes"`
}

type appointmentItem struct {
	ID               string  `json:"id"`
	UserID           string  `json:"user_id"`
	PsychologistName string  `json:"psychologist_name"`
	AppointmentTime  string  `json:"appointment_time"`
	Notes            *string `json:"notes"`
	CreatedAt        string  `json:"created_at"`
}

type slotItem struct {
	Time     string `json:"time"`
	Occupied bool   `json:"occupied"`
}

func (h *AppointmentsHandler) Create(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req createAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json body", http.StatusBadRequest)
		return
	}

	req.UserID = strings.TrimSpace(req.UserID)
	req.PsychologistName = strings.TrimSpace(req.PsychologistName)
	if req.UserID == "" || req.PsychologistName == "" {
		http.Error(w, "user_id and psychologist_name are required", http.StatusBadRequest)
		return
	}

	t, err := time.Parse(time.RFC3339, req.AppointmentTime)
	if err != nil {
		http.Error(w, "invalid appointment_time (want RFC 3339)", http.StatusBadRequest)
		return
	}

	notes := ""
	if req.Notes != nil {
		notes = strings.TrimSpace(*req.Notes)
	}

	appt, err := h.svc.Book(r.Context(), req.UserID, req.PsychologistName, t, notes)
	if err != nil {
		if availability.IsValidationError(err) {
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
			return
		}
		h.logger.Error("booking failed", "err", err, "psychologist", req.PsychologistName)
		http.Error(w, "failed to create appointment", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"message":     "appointment created",
		"appointment": toAppointmentItem(appt),
	})
}

// ListByUser serves GET /appointments/{user_id}.
func (h *AppointmentsHandler) ListByUser(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID := strings.Trim(strings.TrimPrefix(r.URL.Path, "/appointments/"), "/")
	if userID == "" || strings.Contains(userID, "/") {
		http.Error(w, "user_id required", http.StatusBadRequest)
		return
	}

	appts, err := h.svc.ListForUser(r.Context(), userID)
	if err != nil {
		h.logger.Error("listing appointments failed", "err", err, "user_id", userID)
		http.Error(w, "failed to list appointments", http.StatusInternalServerError)
		return
	}

	items := make([]appointmentItem, 0, len(appts))
	for _, a := range appts {
		items = append(items, toAppointmentItem(a))
	}
	writeJSON(w, http.StatusOK, map[string]any{"appointments": items})
}

// AvailableSlots serves GET /available_slots?psychologist_name=&date=.
func (h *AppointmentsHandler) AvailableSlots(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	name := strings.TrimSpace(r.URL.Query().Get("psychologist_name"))
	date, ok := parseDateParam(w, r)
	if name == "" {
		http.Error(w, "psychologist_name required", http.StatusBadRequest)
		return
	}
	if !ok {
		return
	}

	open, err := h.svc.AvailableSlots(r.Context(), name, date)
	if err != nil {
		h.logger.Error("available slots failed", "err", err, "psychologist", name)
		http.Error(w, "failed to compute available slots", http.StatusInternalServerError)
		return
	}

	out := make([]string, 0, len(open))
	for _, t := range open {
		out = append(out, t.Format(time.RFC3339))
	}
	writeJSON(w, http.StatusOK, map[string]any{"available_slots": out})
}

// Schedule serves GET /schedule/{psychologist_name}?date=.
func (h *AppointmentsHandler) Schedule(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	name := strings.Trim(strings.TrimPrefix(r.URL.Path, "/schedule/"), "/")
	if name == "" {
		http.Error(w, "psychologist_name required", http.StatusBadRequest)
		return
	}
	date, ok := parseDateParam(w, r)
	if !ok {
		return
	}

	slots, err := h.svc.ScheduleFor(r.Context(), name, date)
	if err != nil {
		h.logger.Error("schedule failed", "err", err, "psychologist", name)
		http.Error(w, "failed to compute schedule", http.StatusInternalServerError)
		return
	}

	items := make([]slotItem, 0, len(slots))
	for _, s := range slots {
		items = append(items, slotItem{Time: s.Time.Format(time.RFC3339), Occupied: s.Occupied})
	}
	writeJSON(w, http.StatusOK, map[string]any{"schedule": items})
}

func parseDateParam(w http.ResponseWriter, r *http.Request) (time.Time, bool) {
	raw := strings.TrimSpace(r.URL.Query().Get("date"))
	if raw == "" {
		http.Error(w, "date required", http.StatusBadRequest)
		return time.Time{}, false
	}
	date, err := time.ParseInLocation("2006-01-02", raw, time.UTC)
	if err != nil {
		http.Error(w, "invalid date (want YYYY-MM-DD)", http.StatusBadRequest)
		return time.Time{}, false
	}
	return date, true
}

func toAppointmentItem(a model.Appointment) appointmentItem {
	item := appointmentItem{
		ID:               a.ID,
		UserID:           a.UserID,
		PsychologistName: a.PsychologistName,
		AppointmentTime:  a.AppointmentTime.UTC().Format(time.RFC3339),
		CreatedAt:        a.CreatedAt.UTC().Format(time.RFC3339),
	}
	if a.Notes != "" {
		item.Notes = &a.Notes
	}
	return item
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		http.Error(w, "failed to build response", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}
