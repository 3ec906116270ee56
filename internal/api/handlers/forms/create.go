package forms

import (
	"encoding/json"
	"net/http"

	"Formbase/internal/api/middleware"
	"Formbase/internal/core/forms"
)

// CreateHandler handles form creation
type CreateHandler struct {
	service forms.Service
}

// NewCreateHandler creates a new create handler
func NewCreateHandler(service forms.Service) *CreateHandler {
	return &CreateHandler{service: service}
}

// HandleCreate creates a new form
// POST /api/forms
// Body matches CreateFormRequest
func (h *CreateHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req forms.CreateFormRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "InvalidRequest", "Invalid request body")
		return
	}

	// Ownership is derived from the session, never from the body
	accountID := middleware.GetAccountID(r)
	if accountID == "" {
		writeError(w, http.StatusUnauthorized, "AuthRequired", "Authentication required")
		return
	}
	req.OwnerID = accountID

	form, err := h.service.CreateForm(r.Context(), req)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(form); err != nil {
		// Headers already sent, nothing to do
		_ = err
	}
}
