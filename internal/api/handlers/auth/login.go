package auth

import (
	"log"
	"net/http"
	"net/url"

	"Formbase/internal/airtable"
	"Formbase/internal/api/handlers"
	"Formbase/internal/config"
)

// LoginHandler initiates the OAuth authorization flow
type LoginHandler struct {
	cfg config.Config
}

// NewLoginHandler creates a new login handler
func NewLoginHandler(cfg config.Config) *LoginHandler {
	return &LoginHandler{cfg: cfg}
}

// HandleLogin redirects the browser to the platform's authorization endpoint
// GET /api/auth/login
//
// The nonce and PKCE verifier are bound to the browser session, and the
// session must be persisted before the redirect is issued: a redirect on an
// unsaved session could never be matched by the callback.
func (h *LoginHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	if !h.cfg.OAuthConfigured() {
		handlers.WriteError(w, http.StatusInternalServerError, "ConfigurationError",
			"OAuth not configured. Set AIRTABLE_CLIENT_ID and AIRTABLE_CLIENT_SECRET")
		return
	}

	state, err := airtable.GenerateState()
	if err != nil {
		log.Printf("Failed to generate state: %v", err)
		handlers.WriteError(w, http.StatusInternalServerError, "InternalError", "Failed to initiate authorization")
		return
	}

	pkce, err := airtable.GeneratePKCEChallenge()
	if err != nil {
		log.Printf("Failed to generate PKCE challenge: %v", err)
		handlers.WriteError(w, http.StatusInternalServerError, "InternalError", "Failed to initiate authorization")
		return
	}

	sess, err := GetCookieStore().Get(r, SessionName)
	if err != nil {
		// a corrupt cookie is replaced by a fresh session
		log.Printf("Failed to decode session, starting fresh: %v", err)
	}

	sess.Values[SessionOAuthState] = state
	sess.Values[SessionCodeVerifier] = pkce.Verifier
	applySessionOptions(sess, h.cfg)

	if err := sess.Save(r, w); err != nil {
		log.Printf("Failed to save session before redirect: %v", err)
		http.Redirect(w, r, h.cfg.FrontendURL+"/login?error=session_error", http.StatusFound)
		return
	}

	params := url.Values{
		"client_id":             {h.cfg.AirtableClientID},
		"redirect_uri":          {h.cfg.AirtableRedirectURI},
		"response_type":         {"code"},
		"scope":                 {h.cfg.OAuthScopes},
		"state":                 {state},
		"code_challenge":        {pkce.Challenge},
		"code_challenge_method": {pkce.Method},
	}

	http.Redirect(w, r, h.cfg.AirtableAuthorizeURL+"?"+params.Encode(), http.StatusFound)
}
