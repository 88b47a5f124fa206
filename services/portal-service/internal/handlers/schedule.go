package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/kiryshahaha/MAX/services/portal-service/internal/storage"
)

// ScheduleHandler serves the scraped week schedule back to the miniapp. The
// stored blob maps ISO dates (YYYY-MM-DD) to that day's lessons; day views
// are picked out of it here, not in the database.
type ScheduleHandler struct {
	repo   *storage.UserDataRepository
	logger *slog.Logger
	now    func() time.Time
}

func NewScheduleHandler(repo *storage.UserDataRepository, logger *slog.Logger) *ScheduleHandler {
	return &ScheduleHandler{repo: repo, logger: logger, now: time.Now}
}

// Overview serves GET /schedule?uid= with today, tomorrow and yesterday.
func (h *ScheduleHandler) Overview(w http.ResponseWriter, r *http.Request) {
	uid, ok := requireUID(w, r)
	if !ok {
		return
	}

	rec, found, err := h.repo.GetSchedule(r.Context(), uid)
	if err != nil {
		h.logger.Error("schedule fetch failed", "err", err, "uid", uid)
		http.Error(w, "failed to get schedule", http.StatusInternalServerError)
		return
	}

	today := h.now().UTC()
	resp := map[string]any{
		"success":   true,
		"uid":       uid,
		"today":     nil,
		"tomorrow":  nil,
		"yesterday": nil,
	}
	if found {
		resp["today"] = daySlice(rec.Schedule, today)
		resp["tomorrow"] = daySlice(rec.Schedule, today.AddDate(0, 0, 1))
		resp["yesterday"] = daySlice(rec.Schedule, today.AddDate(0, 0, -1))
	}
	writeJSON(w, http.StatusOK, resp)
}

// Day serves /schedule/today, /schedule/tomorrow and /schedule/yesterday.
func (h *ScheduleHandler) Day(offsetDays int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, ok := requireUID(w, r)
		if !ok {
			return
		}

		rec, found, err := h.repo.GetSchedule(r.Context(), uid)
		if err != nil {
			h.logger.Error("schedule fetch failed", "err", err, "uid", uid)
			http.Error(w, "failed to get schedule", http.StatusInternalServerError)
			return
		}

		var day any
		if found {
			day = daySlice(rec.Schedule, h.now().UTC().AddDate(0, 0, offsetDays))
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"success":  true,
			"uid":      uid,
			"schedule": day,
		})
	}
}

// Week serves GET /schedule/week?uid= with the whole stored blob.
func (h *ScheduleHandler) Week(w http.ResponseWriter, r *http.Request) {
	uid, ok := requireUID(w, r)
	if !ok {
		return
	}

	rec, found, err := h.repo.GetSchedule(r.Context(), uid)
	if err != nil {
		h.logger.Error("schedule fetch failed", "err", err, "uid", uid)
		http.Error(w, "failed to get schedule", http.StatusInternalServerError)
		return
	}

	resp := map[string]any{
		"success":  true,
		"uid":      uid,
		"week":     0,
		"schedule": nil,
	}
	if found {
		resp["week"] = rec.Week
		resp["schedule"] = rec.Schedule
	}
	writeJSON(w, http.StatusOK, resp)
}

type updateScheduleRequest struct {
	UID      string          `json:"uid"`
	Schedule json.RawMessage `json:"schedule"`
	Year     int             `json:"year"`
	Week     int             `json:"week"`
}

// Update serves POST /schedule/update; the scraper pushes fresh blobs here.
func (h *ScheduleHandler) Update(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req updateScheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json body", http.StatusBadRequest)
		return
	}
	req.UID = strings.TrimSpace(req.UID)
	if req.UID == "" || len(req.Schedule) == 0 {
		http.Error(w, "uid and schedule are required", http.StatusBadRequest)
		return
	}

	if err := h.repo.SaveSchedule(r.Context(), req.UID, req.Schedule, req.Year, req.Week); err != nil {
		h.logger.Error("schedule save failed", "err", err, "uid", req.UID)
		http.Error(w, "failed to save schedule", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "uid": req.UID})
}

// daySlice picks one day's lessons out of the stored week blob. Returns nil
// when the blob is not an object or has no entry for the date.
func daySlice(blob json.RawMessage, date time.Time) json.RawMessage {
	var days map[string]json.RawMessage
	if err := json.Unmarshal(blob, &days); err != nil {
		return nil
	}
	return days[date.Format("2006-01-02")]
}
