package responses

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"Formbase/internal/core/forms"
	"Formbase/internal/core/responses"
)

// APIError represents a JSON error response
type APIError struct {
	Error   string   `json:"error"`
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
}

// writeError writes a JSON error response
func writeError(w http.ResponseWriter, status int, error, message string) {
	writeErrorDetails(w, status, error, message, nil)
}

func writeErrorDetails(w http.ResponseWriter, status int, error, message string, details []string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(APIError{
		Error:   error,
		Message: message,
		Details: details,
	}); err != nil {
		log.Printf("Failed to encode error response: %v", err)
	}
}

// handleServiceError converts service errors to appropriate HTTP responses.
// Delegation failures map to a distinct non-retryable category: the visitor
// can do nothing about the owner's credential, and no platform detail leaks.
func handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, responses.ErrResponseNotFound):
		writeError(w, http.StatusNotFound, "NotFound", "Response not found")
	case forms.IsNotFound(err):
		writeError(w, http.StatusNotFound, "NotFound", "Form not found")
	case errors.Is(err, forms.ErrNotOwner):
		writeError(w, http.StatusForbidden, "Forbidden", "You do not own this form")
	case responses.IsDelegationError(err):
		writeError(w, http.StatusConflict, "FormUnavailable",
			"This form cannot accept submissions right now")
	default:
		if valErr, ok := responses.IsSubmissionValidationError(err); ok {
			writeErrorDetails(w, http.StatusBadRequest, "InvalidSubmission",
				"Submission failed validation", valErr.Problems)
			return
		}
		log.Printf("Response handler error: %v", err)
		writeError(w, http.StatusInternalServerError, "InternalServerError", "An internal error occurred")
	}
}
