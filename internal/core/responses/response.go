package responses

import (
	"time"
)

// Lifecycle status of a submission. Mutated only by the reconciler after
// creation; the original writer never touches it again.
const (
	StatusActive  = "active"
	StatusDeleted = "deleted"
)

// Response is one successful delegated write: a local record of a submission
// that landed in the platform. AirtableRecordID is the reconciliation join
// key and unique per platform.
type Response struct {
	CreatedAt        time.Time      `json:"createdAt" db:"created_at"`
	UpdatedAt        time.Time      `json:"updatedAt" db:"updated_at"`
	Answers          map[string]any `json:"answers" db:"answers"`
	ID               string         `json:"id" db:"id"`
	FormID           string         `json:"formId" db:"form_id"`
	AirtableRecordID string         `json:"airtableRecordId" db:"airtable_record_id"`
	Status           string         `json:"status" db:"status"`
}

// SubmitRequest is a visitor's filled form. The caller carries no identity.
type SubmitRequest struct {
	FormID  string         `json:"-"`
	Answers map[string]any `json:"answers"`
}

// SubmitResult reports a successful submission.
type SubmitResult struct {
	ResponseID       string `json:"responseId"`
	AirtableRecordID string `json:"airtableRecordId"`
}

// ResponseSummary is the owner-facing listing projection, with answers
// reduced to short previews keyed by question label.
type ResponseSummary struct {
	CreatedAt        time.Time         `json:"createdAt"`
	UpdatedAt        time.Time         `json:"updatedAt"`
	Answers          map[string]string `json:"answers"`
	ID               string            `json:"id"`
	AirtableRecordID string            `json:"airtableRecordId"`
	Status           string            `json:"status"`
}
