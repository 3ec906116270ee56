package responses

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"Formbase/internal/core/responses"
)

// SubmitHandler handles anonymous form submissions
type SubmitHandler struct {
	service responses.Service
}

// NewSubmitHandler creates a new submit handler
func NewSubmitHandler(service responses.Service) *SubmitHandler {
	return &SubmitHandler{service: service}
}

// HandleSubmit accepts a visitor's answers and performs the delegated write
// POST /api/forms/{formID}/submit
// Body: { "answers": { "questionKey": value, ... } }
// The caller is anonymous; the write runs under the form owner's credential.
func (h *SubmitHandler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	formID := chi.URLParam(r, "formID")
	if formID == "" {
		writeError(w, http.StatusBadRequest, "InvalidRequest", "form id is required")
		return
	}

	var req responses.SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "InvalidRequest", "Invalid request body")
		return
	}
	req.FormID = formID

	result, err := h.service.Submit(r.Context(), req)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(result); err != nil {
		_ = err
	}
}
