package accounts

import (
	"time"
)

// Account is one local account per external Airtable identity. It is the
// custody record for the identity's OAuth credential: the stored access token
// is the only credential ever used for delegated writes, and the stored
// expiry is a hard gate on its use.
type Account struct {
	CreatedAt      time.Time         `json:"createdAt" db:"created_at"`
	UpdatedAt      time.Time         `json:"updatedAt" db:"updated_at"`
	LastLoginAt    time.Time         `json:"lastLoginAt" db:"last_login_at"`
	TokenExpiresAt time.Time         `json:"-" db:"token_expires_at"`
	Profile        map[string]string `json:"profile" db:"profile"`
	ID             string            `json:"id" db:"id"`
	AirtableUserID string            `json:"airtableUserId" db:"airtable_user_id"`
	Email          string            `json:"email" db:"email"`
	AccessToken    string            `json:"-" db:"access_token"`
	RefreshToken   string            `json:"-" db:"refresh_token"`
}

// TokenSet is the credential material captured from a successful handshake.
// ExpiresAt is zero for personal tokens, which do not expire on a schedule.
type TokenSet struct {
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time
}

// Identity is the external identity snapshot resolved after an exchange.
type Identity struct {
	AirtableUserID string
	Email          string
	Profile        map[string]string
}

// HasCredential reports whether the account holds an access token at all.
func (a *Account) HasCredential() bool {
	return a != nil && a.AccessToken != ""
}

// CredentialExpired reports whether the stored access token is past its
// expiry at the given instant. A zero expiry never expires (personal tokens).
// There is no automatic renewal: expiry blocks use until re-authorization.
func (a *Account) CredentialExpired(now time.Time) bool {
	if a.TokenExpiresAt.IsZero() {
		return false
	}
	return now.After(a.TokenExpiresAt)
}
