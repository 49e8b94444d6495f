package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/promptweaver/api/internal/auth"
	"github.com/promptweaver/api/internal/refine"
)

type RefineHandler struct {
	svc *refine.Service
}

func NewRefineHandler(svc *refine.Service) *RefineHandler {
	return &RefineHandler{svc: svc}
}

// Refine runs one refinement request. Guests get suggestions without
// persistence; authenticated users additionally get a temporary record.
func (h *RefineHandler) Refine(w http.ResponseWriter, r *http.Request) {
	var in refine.Input
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	in.UserID = auth.UserIDFromContext(r.Context())

	result, err := h.svc.Refine(r.Context(), in)
	if err != nil {
		writeRefineError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// writeRefineError maps the refinement error taxonomy onto HTTP statuses
// and returns the classified user-facing message.
func writeRefineError(w http.ResponseWriter, err error) {
	c := refine.Classify(err)

	status := http.StatusInternalServerError
	switch c.Kind {
	case refine.KindValidation:
		status = http.StatusBadRequest
	case refine.KindOverloaded:
		status = http.StatusServiceUnavailable
	case refine.KindMalformedResponse:
		status = http.StatusBadGateway
	case refine.KindNetworkError:
		status = http.StatusBadGateway
	}

	if c.Kind == refine.KindUnknown {
		slog.Error("refinement failed", "error", err)
	}

	writeJSON(w, status, map[string]string{
		"error": c.UserMessage,
		"kind":  string(c.Kind),
	})
}
