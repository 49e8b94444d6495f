package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/promptweaver/api/internal/auth"
	"github.com/promptweaver/api/internal/usage"
)

type UsageHandler struct {
	svc *usage.Service
}

func NewUsageHandler(svc *usage.Service) *UsageHandler {
	return &UsageHandler{svc: svc}
}

// Summary returns the caller's aggregated token and cost usage over the
// requested window (default 30 days).
func (h *UsageHandler) Summary(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())

	days, _ := strconv.Atoi(r.URL.Query().Get("days"))
	if days <= 0 {
		days = 30
	}
	since := time.Now().AddDate(0, 0, -days)

	sum, err := h.svc.Summary(r.Context(), userID, since)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "could not load usage"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"since": since,
		"usage": sum,
	})
}
