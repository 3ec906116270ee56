package responses

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"Formbase/internal/api/middleware"
	"Formbase/internal/core/responses"
)

// GetHandler handles single submission retrieval
type GetHandler struct {
	service responses.Service
}

// NewGetHandler creates a new get handler
func NewGetHandler(service responses.Service) *GetHandler {
	return &GetHandler{
		service: service,
	}
}

// HandleGet retrieves one submission with full answers
// GET /api/responses/{responseID}
// Only the owner of the submission's form may read it.
func (h *GetHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	responseID := chi.URLParam(r, "responseID")
	if responseID == "" {
		writeError(w, http.StatusBadRequest, "InvalidRequest", "response id is required")
		return
	}

	accountID := middleware.GetAccountID(r)
	if accountID == "" {
		writeError(w, http.StatusUnauthorized, "AuthRequired", "Authentication required")
		return
	}

	response, err := h.service.GetResponse(r.Context(), responseID, accountID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		_ = err
	}
}
