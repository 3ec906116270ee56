package forms

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"Formbase/internal/api/middleware"
	"Formbase/internal/core/forms"
)

// DeleteHandler handles form deletion
type DeleteHandler struct {
	service forms.Service
}

// NewDeleteHandler creates a new delete handler
func NewDeleteHandler(service forms.Service) *DeleteHandler {
	return &DeleteHandler{
		service: service,
	}
}

// HandleDelete deletes a form owned by the authenticated account
// DELETE /api/forms/{formID}
// Stored responses go with it (cascade), the Airtable records stay.
func (h *DeleteHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
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

	if err := h.service.DeleteForm(r.Context(), formID, accountID); err != nil {
		handleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
