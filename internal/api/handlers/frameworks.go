package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/promptweaver/api/internal/framework"
)

type FrameworkHandler struct {
	svc *framework.Service
}

func NewFrameworkHandler(svc *framework.Service) *FrameworkHandler {
	return &FrameworkHandler{svc: svc}
}

// List returns the full framework catalog.
func (h *FrameworkHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"frameworks": framework.Catalog,
		"count":      len(framework.Catalog),
	})
}

// Suggest recommends the best-fitting framework for a rough instruction.
func (h *FrameworkHandler) Suggest(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Instruction string `json:"instruction"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	suggestion, err := h.svc.Suggest(r.Context(), req.Instruction)
	if err != nil {
		if errors.Is(err, framework.ErrEmptyInstruction) {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "instruction cannot be empty"})
			return
		}
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": "could not suggest a framework"})
		return
	}

	writeJSON(w, http.StatusOK, suggestion)
}

// Search ranks catalog frameworks by semantic similarity to a query.
func (h *FrameworkHandler) Search(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Query string `json:"query"`
		TopK  int    `json:"top_k"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	matches, err := h.svc.Search(r.Context(), req.Query, req.TopK)
	if err != nil {
		if errors.Is(err, framework.ErrEmptyInstruction) {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "query cannot be empty"})
			return
		}
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "search failed"})
		return
	}
	if matches == nil {
		matches = []framework.Match{}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"matches": matches, "count": len(matches)})
}

// SuggestTemplate generates a starter prompt template for a category.
func (h *FrameworkHandler) SuggestTemplate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Category string `json:"category"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	template, err := h.svc.SuggestTemplate(r.Context(), req.Category)
	if err != nil {
		if errors.Is(err, framework.ErrInvalidCategory) {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": "could not generate a template"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"template": template})
}
