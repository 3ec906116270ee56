package responses

import (
	"errors"
	"fmt"
)

// Sentinel errors for submission and reconciliation operations
var (
	// ErrResponseNotFound is returned when a response lookup finds nothing
	ErrResponseNotFound = errors.New("response not found")

	// ErrDelegationUnavailable is returned when the form owner has no stored
	// credential. The submission fails closed - no fallback credential is
	// ever substituted.
	ErrDelegationUnavailable = errors.New("form owner has no platform credential")

	// ErrDelegationExpired is returned when the owner's stored credential is
	// past its expiry. The owner must re-authorize; there is no refresh.
	ErrDelegationExpired = errors.New("form owner's platform credential has expired")
)

// SubmissionValidationError reports answers that failed validation against
// the form definition.
type SubmissionValidationError struct {
	Problems []string
}

func (e *SubmissionValidationError) Error() string {
	return fmt.Sprintf("submission failed validation: %d problem(s)", len(e.Problems))
}

// IsSubmissionValidationError checks if error is a submission validation error
func IsSubmissionValidationError(err error) (*SubmissionValidationError, bool) {
	var valErr *SubmissionValidationError
	if errors.As(err, &valErr) {
		return valErr, true
	}
	return nil, false
}

// IsDelegationError checks for either delegation failure mode
func IsDelegationError(err error) bool {
	return errors.Is(err, ErrDelegationUnavailable) || errors.Is(err, ErrDelegationExpired)
}
