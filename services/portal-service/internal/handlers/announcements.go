package handlers

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/kiryshahaha/MAX/services/portal-service/internal/storage"
)

type AnnouncementsHandler struct {
	repo   *storage.AnnouncementsRepository
	logger *slog.Logger
}

func NewAnnouncementsHandler(repo *storage.AnnouncementsRepository, logger *slog.Logger) *AnnouncementsHandler {
	return &AnnouncementsHandler{repo: repo, logger: logger}
}

type announcementItem struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Body      string `json:"body"`
	CreatedAt string `json:"created_at"`
}

// List serves GET /announcements?limit=.
func (h *AnnouncementsHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	limit := 50
	if raw := strings.TrimSpace(r.URL.Query().Get("limit")); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 && n <= 200 {
			limit = n
		}
	}

	list, err := h.repo.List(r.Context(), limit)
	if err != nil {
		h.logger.Error("announcements fetch failed", "err", err)
		http.Error(w, "failed to get announcements", http.StatusInternalServerError)
		return
	}

	items := make([]announcementItem, 0, len(list))
	for _, a := range list {
		items = append(items, announcementItem{
			ID:        a.ID,
			Title:     a.Title,
			Body:      a.Body,
			CreatedAt: a.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success":       true,
		"announcements": items,
	})
}
