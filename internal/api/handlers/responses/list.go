package responses

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"Formbase/internal/api/middleware"
	"Formbase/internal/core/responses"
)

// ListHandler handles listing a form's submissions for its owner
type ListHandler struct {
	service responses.Service
}

// NewListHandler creates a new list handler
func NewListHandler(service responses.Service) *ListHandler {
	return &ListHandler{
		service: service,
	}
}

// HandleList lists the submissions for a form the caller owns
// GET /api/forms/{formID}/responses
func (h *ListHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	formID := chi.URLParam(r, "formID")
	if formID == "" {
		writeError(w, http.StatusBadRequest, "InvalidRequest", "form id is required")
		return
	}

	accountID := middleware.GetAccountID(r)
	if accountID == "" {
		writeError(w, http.StatusUnauthorized, "AuthRequired", "Authentication required")
		return
	}

	summaries, err := h.service.ListForForm(r.Context(), formID, accountID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	if summaries == nil {
		summaries = []*responses.ResponseSummary{}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(map[string]any{"responses": summaries}); err != nil {
		_ = err
	}
}
