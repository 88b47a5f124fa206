package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/kiryshahaha/MAX/services/portal-service/internal/storage"
)

type TasksHandler struct {
	repo   *storage.UserDataRepository
	logger *slog.Logger
}

func NewTasksHandler(repo *storage.UserDataRepository, logger *slog.Logger) *TasksHandler {
	return &TasksHandler{repo: repo, logger: logger}
}

// List serves GET /tasks?uid=.
func (h *TasksHandler) List(w http.ResponseWriter, r *http.Request) {
	uid, ok := requireUID(w, r)
	if !ok {
		return
	}

	tasks, found, err := h.repo.GetTasks(r.Context(), uid)
	if err != nil {
		h.logger.Error("tasks fetch failed", "err", err, "uid", uid)
		http.Error(w, "failed to get tasks", http.StatusInternalServerError)
		return
	}

	count := 0
	if found {
		var parsed []json.RawMessage
		if err := json.Unmarshal(tasks, &parsed); err == nil {
			count = len(parsed)
		}
	}
	if !found || len(tasks) == 0 || string(tasks) == "null" {
		tasks = json.RawMessage("[]")
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success":     true,
		"tasks":       tasks,
		"tasks_count": count,
		"uid":         uid,
	})
}

type updateTasksRequest struct {
	UID   string          `json:"uid"`
	Tasks json.RawMessage `json:"tasks"`
}

// Update serves POST /tasks/update.
func (h *TasksHandler) Update(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req updateTasksRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json body", http.StatusBadRequest)
		return
	}
	req.UID = strings.TrimSpace(req.UID)
	if req.UID == "" || len(req.Tasks) == 0 {
		http.Error(w, "uid and tasks are required", http.StatusBadRequest)
		return
	}

	if err := h.repo.SaveTasks(r.Context(), req.UID, req.Tasks); err != nil {
		h.logger.Error("tasks save failed", "err", err, "uid", req.UID)
		http.Error(w, "failed to save tasks", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "uid": req.UID})
}
