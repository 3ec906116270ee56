package forms

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"Formbase/internal/airtable"
	"Formbase/internal/core/forms"
)

// APIError represents a JSON error response
type APIError struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// writeError writes a JSON error response
func writeError(w http.ResponseWriter, status int, error, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(APIError{
		Error:   error,
		Message: message,
	}); err != nil {
		log.Printf("Failed to encode error response: %v", err)
	}
}

// handleServiceError converts service errors to appropriate HTTP responses
func handleServiceError(w http.ResponseWriter, err error) {
	var upstream *airtable.UpstreamError

	switch {
	case forms.IsNotFound(err):
		writeError(w, http.StatusNotFound, "NotFound", "Form not found")
	case forms.IsValidationError(err):
		writeError(w, http.StatusBadRequest, "InvalidRequest", err.Error())
	case errors.Is(err, forms.ErrNotOwner):
		writeError(w, http.StatusForbidden, "Forbidden", "You do not own this form")
	case errors.As(err, &upstream):
		// Platform auth errors should prompt re-authorization
		if upstream.StatusCode == http.StatusUnauthorized || upstream.StatusCode == http.StatusForbidden {
			writeError(w, http.StatusUnauthorized, "AuthRequired", "Airtable authorization expired, please reconnect")
			return
		}
		log.Printf("Airtable error: %v", err)
		writeError(w, http.StatusBadGateway, "UpstreamError", "Airtable request failed")
	default:
		log.Printf("Form handler error: %v", err)
		writeError(w, http.StatusInternalServerError, "InternalServerError", "An internal error occurred")
	}
}
