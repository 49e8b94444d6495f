package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/promptweaver/api/internal/auth"
	"github.com/promptweaver/api/internal/models"
	"github.com/promptweaver/api/internal/record"
)

type RecordHandler struct {
	svc *record.Service
}

func NewRecordHandler(svc *record.Service) *RecordHandler {
	return &RecordHandler{svc: svc}
}

// List returns the caller's live prompt records. Expired temporaries are
// swept as a side effect of reading.
func (h *RecordHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())

	records, err := h.svc.List(r.Context(), userID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "could not load prompts"})
		return
	}
	if records == nil {
		records = []models.PromptRecord{}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"prompts": records, "count": len(records)})
}

// Save promotes a temporary record to permanent.
func (h *RecordHandler) Save(w http.ResponseWriter, r *http.Request) {
	h.lifecycle(w, r, h.svc.Promote)
}

// Unsave reverts a permanent record back to temporary with a fresh expiry.
// Favorited records are refused.
func (h *RecordHandler) Unsave(w http.ResponseWriter, r *http.Request) {
	h.lifecycle(w, r, h.svc.Revert)
}

// Favorite pins a record permanently.
func (h *RecordHandler) Favorite(w http.ResponseWriter, r *http.Request) {
	h.lifecycle(w, r, h.svc.Favorite)
}

// Unfavorite clears the favorite flag; the record stays permanent.
func (h *RecordHandler) Unfavorite(w http.ResponseWriter, r *http.Request) {
	h.lifecycle(w, r, h.svc.Unfavorite)
}

func (h *RecordHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid prompt ID"})
		return
	}

	if err := h.svc.Delete(r.Context(), userID, id); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "could not delete prompt"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (h *RecordHandler) lifecycle(w http.ResponseWriter, r *http.Request, op func(context.Context, uuid.UUID, uuid.UUID) (*models.PromptRecord, error)) {
	userID := auth.UserIDFromContext(r.Context())
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid prompt ID"})
		return
	}

	rec, err := op(r.Context(), userID, id)
	if err != nil {
		switch {
		case errors.Is(err, record.ErrNotFound):
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "prompt not found"})
		case errors.Is(err, record.ErrCannotRevertFavorite):
			writeJSON(w, http.StatusConflict, map[string]string{"error": "favorited prompts cannot be unsaved"})
		default:
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "could not update prompt"})
		}
		return
	}

	writeJSON(w, http.StatusOK, rec)
}
