package forms

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"Formbase/internal/core/forms"
)

// GetHandler handles form retrieval
type GetHandler struct {
	service forms.Service
}

// NewGetHandler creates a new get handler
func NewGetHandler(service forms.Service) *GetHandler {
	return &GetHandler{
		service: service,
	}
}

// HandleGet retrieves a form definition by id
// GET /api/forms/{formID}
// Public: anonymous visitors load the definition to render the fill surface.
// Stored credentials never appear in the response.
func (h *GetHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	formID := chi.URLParam(r, "formID")
	if formID == "" {
		writeError(w, http.StatusBadRequest, "InvalidRequest", "form id is required")
		return
	}

	form, err := h.service.GetForm(r.Context(), formID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(form); err != nil {
		_ = err
	}
}
