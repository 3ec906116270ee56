package responses

import (
	"context"

	"Formbase/internal/airtable"
)

// Service defines the business logic interface for submissions and their
// reconciliation against platform change notifications.
type Service interface {
	// Submit performs the delegated write: the anonymous caller's answers
	// are written to the platform under the form owner's credential, then
	// recorded locally. No local record is created on platform failure.
	Submit(ctx context.Context, req SubmitRequest) (*SubmitResult, error)

	// ApplyEvent applies one platform notification to the local record
	// keyed by external record id. Unknown record ids are acknowledged
	// without mutation. Transitions are idempotent.
	ApplyEvent(ctx context.Context, n Notification) error

	// ListForForm lists submissions for a form after an ownership check
	ListForForm(ctx context.Context, formID, callerID string) ([]*ResponseSummary, error)

	// GetResponse retrieves a single submission after an ownership check
	GetResponse(ctx context.Context, responseID, callerID string) (*Response, error)
}

// Repository defines the data access interface for submissions
type Repository interface {
	Create(ctx context.Context, response *Response) (*Response, error)
	GetByID(ctx context.Context, id string) (*Response, error)
	GetByAirtableRecordID(ctx context.Context, recordID string) (*Response, error)
	ListByForm(ctx context.Context, formID string) ([]*Response, error)
	UpdateStatus(ctx context.Context, id, status string) error
}

// RecordCreator is the platform write surface the gate needs. Satisfied by
// *airtable.Client; narrowed for testing.
type RecordCreator interface {
	CreateRecord(ctx context.Context, accessToken, baseID, tableID string, fields map[string]any) (*airtable.Record, error)
}
