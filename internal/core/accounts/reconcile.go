package accounts

import (
	"time"

	"github.com/google/uuid"
)

// Reconcile merges an incoming identity and token set into the local account
// keyed by the external identity id. When existing is nil a new account is
// returned; otherwise an updated copy is returned. Token fields and expiry
// are overwritten unconditionally: the last successful handshake always wins.
//
// Pure function - no storage or transport concerns.
func Reconcile(existing *Account, identity Identity, tokens TokenSet, now time.Time) *Account {
	account := &Account{
		ID:             uuid.NewString(),
		AirtableUserID: identity.AirtableUserID,
		CreatedAt:      now,
	}

	if existing != nil {
		copied := *existing
		account = &copied
	}

	account.Email = identity.Email
	if account.Email == "" {
		account.Email = identity.AirtableUserID + "@airtable.user"
	}

	if identity.Profile != nil {
		account.Profile = identity.Profile
	}

	account.AccessToken = tokens.AccessToken
	account.RefreshToken = tokens.RefreshToken
	account.TokenExpiresAt = tokens.ExpiresAt
	account.LastLoginAt = now
	account.UpdatedAt = now

	return account
}
