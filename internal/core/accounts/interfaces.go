package accounts

import "context"

// Repository is the credential vault: a narrow get/put-by-key store with no
// logic of its own. The backing store's atomic update-by-key semantics are
// the only coordination the subsystem needs.
type Repository interface {
	// GetByID retrieves an account by its local id
	GetByID(ctx context.Context, id string) (*Account, error)

	// GetByAirtableUserID retrieves an account by external identity id
	GetByAirtableUserID(ctx context.Context, airtableUserID string) (*Account, error)

	// Upsert inserts or replaces the account keyed by external identity id
	// and returns the stored copy
	Upsert(ctx context.Context, account *Account) (*Account, error)
}
