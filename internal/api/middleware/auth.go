package middleware

import (
	"context"
	"log"
	"net/http"

	"github.com/gorilla/sessions"

	"Formbase/internal/core/accounts"
)

// Context keys for storing account information
type contextKey string

const (
	AccountIDKey contextKey = "account_id"
	AccountKey   contextKey = "account"
)

// SessionAuthMiddleware enforces cookie-session authentication for protected
// routes. The session only carries the account id; the account itself is
// resolved from the vault on every request so a deleted account is locked out
// immediately.
type SessionAuthMiddleware struct {
	store       *sessions.CookieStore
	vault       accounts.Repository
	sessionName string
}

// NewSessionAuthMiddleware creates a new session auth middleware
func NewSessionAuthMiddleware(store *sessions.CookieStore, vault accounts.Repository, sessionName string) *SessionAuthMiddleware {
	return &SessionAuthMiddleware{
		store:       store,
		vault:       vault,
		sessionName: sessionName,
	}
}

// RequireAuth middleware ensures the request carries a valid session bound to
// an existing account
// If not authenticated, returns 401
// If authenticated, injects the account id and account into context
func (m *SessionAuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		accountID := m.resolveAccountID(r)
		if accountID == "" {
			writeAuthError(w, "Authentication required")
			return
		}

		account, err := m.vault.GetByID(r.Context(), accountID)
		if err != nil {
			if err != accounts.ErrAccountNotFound {
				log.Printf("[AUTH_FAILURE] type=vault_error ip=%s method=%s path=%s error=%v",
					r.RemoteAddr, r.Method, r.URL.Path, err)
			}
			writeAuthError(w, "Authentication required")
			return
		}

		ctx := context.WithValue(r.Context(), AccountIDKey, account.ID)
		ctx = context.WithValue(ctx, AccountKey, account)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// OptionalAuth loads the account if a valid session is present, but doesn't
// require it
// Useful for endpoints that work for both authenticated and anonymous users
func (m *SessionAuthMiddleware) OptionalAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		accountID := m.resolveAccountID(r)
		if accountID == "" {
			next.ServeHTTP(w, r)
			return
		}

		account, err := m.vault.GetByID(r.Context(), accountID)
		if err != nil {
			// Stale session - continue without account context
			next.ServeHTTP(w, r)
			return
		}

		ctx := context.WithValue(r.Context(), AccountIDKey, account.ID)
		ctx = context.WithValue(ctx, AccountKey, account)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// resolveAccountID reads the account id bound to the request's session.
// Returns empty string if the session is absent, undecodable, or unbound.
func (m *SessionAuthMiddleware) resolveAccountID(r *http.Request) string {
	sess, err := m.store.Get(r, m.sessionName)
	if err != nil {
		// Undecodable cookie (rotated secret, tampering) is treated as anonymous
		return ""
	}

	accountID, _ := sess.Values["account_id"].(string)
	return accountID
}

// GetAccountID extracts the authenticated account's id from the request context
// Returns empty string if not authenticated
func GetAccountID(r *http.Request) string {
	id, _ := r.Context().Value(AccountIDKey).(string)
	return id
}

// GetAuthenticatedAccountID extracts the authenticated account id from the context
// This is used by service layers for defense-in-depth validation
// Returns empty string if not authenticated
func GetAuthenticatedAccountID(ctx context.Context) string {
	id, _ := ctx.Value(AccountIDKey).(string)
	return id
}

// GetAccount extracts the resolved account from the request context
// Returns nil if not authenticated
func GetAccount(ctx context.Context) *accounts.Account {
	account, _ := ctx.Value(AccountKey).(*accounts.Account)
	return account
}

// SetTestAccount sets the account in the context for testing purposes
// This function should ONLY be used in tests to mock authenticated users
func SetTestAccount(ctx context.Context, account *accounts.Account) context.Context {
	ctx = context.WithValue(ctx, AccountIDKey, account.ID)
	return context.WithValue(ctx, AccountKey, account)
}

// writeAuthError writes a JSON error response for authentication failures
func writeAuthError(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	response := `{"error":"AuthenticationRequired","message":"` + message + `"}`
	if _, err := w.Write([]byte(response)); err != nil {
		log.Printf("Failed to write auth error response: %v", err)
	}
}
