package forms

import (
	"encoding/json"
	"net/http"

	"Formbase/internal/api/middleware"
	"Formbase/internal/core/forms"
)

// ListHandler handles listing the authenticated account's forms
type ListHandler struct {
	service forms.Service
}

// NewListHandler creates a new list handler
func NewListHandler(service forms.Service) *ListHandler {
	return &ListHandler{
		service: service,
	}
}

// HandleList lists the forms owned by the authenticated account
// GET /api/forms
func (h *ListHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	accountID := middleware.GetAccountID(r)
	if accountID == "" {
		writeError(w, http.StatusUnauthorized, "AuthRequired", "Authentication required")
		return
	}

	summaries, err := h.service.ListForms(r.Context(), accountID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	if summaries == nil {
		summaries = []*forms.FormSummary{}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(map[string]any{"forms": summaries}); err != nil {
		_ = err
	}
}
