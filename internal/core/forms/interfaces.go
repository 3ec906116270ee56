package forms

import "context"

// Service defines the business logic interface for forms
type Service interface {
	// CreateForm validates and stores a new form owned by ownerID
	CreateForm(ctx context.Context, req CreateFormRequest) (*Form, error)

	// GetForm retrieves a form by id. Public: the fill surface needs the
	// form definition without authentication.
	GetForm(ctx context.Context, formID string) (*Form, error)

	// ListForms lists the forms owned by an account, newest first
	ListForms(ctx context.Context, ownerID string) ([]*FormSummary, error)

	// DeleteForm deletes a form; fails with ErrNotOwner when callerID does
	// not own it
	DeleteForm(ctx context.Context, formID, callerID string) error
}

// Repository defines the data access interface for forms
type Repository interface {
	Create(ctx context.Context, form *Form) (*Form, error)
	GetByID(ctx context.Context, formID string) (*Form, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*FormSummary, error)
	Delete(ctx context.Context, formID string) error
}
