package auth

import (
	"context"
	"log"
	"net/http"
	"time"

	"Formbase/internal/airtable"
	"Formbase/internal/config"
	"Formbase/internal/core/accounts"
)

// PlatformAuthClient is the slice of the Airtable client the handshake needs
type PlatformAuthClient interface {
	ExchangeCode(ctx context.Context, code, redirectURI, codeVerifier string) (*airtable.TokenResponse, error)
	WhoAmI(ctx context.Context, accessToken string) (*airtable.Identity, error)
}

// CallbackHandler completes the OAuth authorization flow
type CallbackHandler struct {
	cfg      config.Config
	platform PlatformAuthClient
	vault    accounts.Repository
}

// NewCallbackHandler creates a new callback handler
func NewCallbackHandler(cfg config.Config, platform PlatformAuthClient, vault accounts.Repository) *CallbackHandler {
	return &CallbackHandler{
		cfg:      cfg,
		platform: platform,
		vault:    vault,
	}
}

// HandleCallback processes the platform's redirect back to us
// GET /api/auth/callback?code=...&state=...[&error=...]
//
// Checks run strictly in order and the first failure short-circuits; no
// network call is made until all of them pass. Whatever the outcome, the
// in-flight authorization attempt is erased from the session: an attempt is
// single-use.
func (h *CallbackHandler) HandleCallback(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("code")
	state := r.URL.Query().Get("state")
	errorParam := r.URL.Query().Get("error")

	sess, err := GetCookieStore().Get(r, SessionName)
	if err != nil {
		log.Printf("Failed to decode session on callback: %v", err)
	}

	boundState, _ := sess.Values[SessionOAuthState].(string)
	boundVerifier, _ := sess.Values[SessionCodeVerifier].(string)

	// consume the attempt before evaluating anything
	delete(sess.Values, SessionOAuthState)
	delete(sess.Values, SessionCodeVerifier)
	applySessionOptions(sess, h.cfg)

	fail := func(reason string) {
		if err := sess.Save(r, w); err != nil {
			log.Printf("Failed to save session while failing callback: %v", err)
		}
		http.Redirect(w, r, h.cfg.FrontendURL+"/login?error="+reason, http.StatusFound)
	}

	if errorParam != "" {
		log.Printf("Platform denied authorization: %s", errorParam)
		fail("access_denied")
		return
	}

	if code == "" {
		fail("no_code")
		return
	}

	if boundState == "" {
		fail("session_expired")
		return
	}

	if state != boundState {
		// expected vs received values are logged, never returned
		log.Printf("State mismatch on callback: expected %q, received %q", boundState, state)
		fail("invalid_state")
		return
	}

	if boundVerifier == "" {
		fail("no_verifier")
		return
	}

	ctx := r.Context()

	tokens, err := h.platform.ExchangeCode(ctx, code, h.cfg.AirtableRedirectURI, boundVerifier)
	if err != nil {
		log.Printf("Token exchange failed: %v", err)
		fail("auth_failed")
		return
	}

	identity, err := h.platform.WhoAmI(ctx, tokens.AccessToken)
	if err != nil {
		log.Printf("Identity fetch failed: %v", err)
		fail("auth_failed")
		return
	}

	account, err := h.resolveAccount(ctx, identity, tokens)
	if err != nil {
		log.Printf("Failed to persist account for %s: %v", identity.ID, err)
		fail("auth_failed")
		return
	}

	sess.Values[SessionAccountID] = account.ID

	if err := sess.Save(r, w); err != nil {
		// the browser must not be sent to an authenticated page the next
		// request cannot actually reach
		log.Printf("Failed to save authenticated session: %v", err)
		http.Redirect(w, r, h.cfg.FrontendURL+"/login?error=session_save_failed", http.StatusFound)
		return
	}

	http.Redirect(w, r, h.cfg.FrontendURL+"/dashboard", http.StatusFound)
}

func (h *CallbackHandler) resolveAccount(ctx context.Context, identity *airtable.Identity, tokens *airtable.TokenResponse) (*accounts.Account, error) {
	existing, err := h.vault.GetByAirtableUserID(ctx, identity.ID)
	if err != nil && err != accounts.ErrAccountNotFound {
		return nil, err
	}

	expiresIn := tokens.ExpiresIn
	if expiresIn == 0 {
		expiresIn = 3600
	}

	now := time.Now()
	account := accounts.Reconcile(existing, accounts.Identity{
		AirtableUserID: identity.ID,
		Email:          identity.Email,
	}, accounts.TokenSet{
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
		ExpiresAt:    now.Add(time.Duration(expiresIn) * time.Second),
	}, now)

	return h.vault.Upsert(ctx, account)
}
