package auth

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"Formbase/internal/api/handlers"
	"Formbase/internal/config"
	"Formbase/internal/core/accounts"
)

// TokenLoginHandler handles login with a personal access token instead of
// the three-legged OAuth flow. The token is validated against the identity
// endpoint before any account state is touched.
type TokenLoginHandler struct {
	cfg      config.Config
	platform PlatformAuthClient
	vault    accounts.Repository
}

// NewTokenLoginHandler creates a new token login handler
func NewTokenLoginHandler(cfg config.Config, platform PlatformAuthClient, vault accounts.Repository) *TokenLoginHandler {
	return &TokenLoginHandler{
		cfg:      cfg,
		platform: platform,
		vault:    vault,
	}
}

// HandleTokenLogin authenticates with a personal access token
// POST /api/auth/login-token
// Body: { "token": "pat..." }
func (h *TokenLoginHandler) HandleTokenLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Token string `json:"token"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Token == "" {
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", "Token is required")
		return
	}

	ctx := r.Context()

	identity, err := h.platform.WhoAmI(ctx, req.Token)
	if err != nil {
		log.Printf("Personal token validation failed: %v", err)
		handlers.WriteError(w, http.StatusUnauthorized, "InvalidToken", "Invalid token or failed to authenticate")
		return
	}

	existing, err := h.vault.GetByAirtableUserID(ctx, identity.ID)
	if err != nil && err != accounts.ErrAccountNotFound {
		log.Printf("Failed to look up account for %s: %v", identity.ID, err)
		handlers.WriteError(w, http.StatusInternalServerError, "InternalError", "Login failed")
		return
	}

	// personal tokens carry no refresh token and no scheduled expiry
	account := accounts.Reconcile(existing, accounts.Identity{
		AirtableUserID: identity.ID,
		Email:          identity.Email,
	}, accounts.TokenSet{
		AccessToken: req.Token,
	}, time.Now())

	stored, err := h.vault.Upsert(ctx, account)
	if err != nil {
		log.Printf("Failed to persist account for %s: %v", identity.ID, err)
		handlers.WriteError(w, http.StatusInternalServerError, "InternalError", "Login failed")
		return
	}

	sess, err := GetCookieStore().Get(r, SessionName)
	if err != nil {
		log.Printf("Failed to decode session, starting fresh: %v", err)
	}

	sess.Values = map[interface{}]interface{}{}
	sess.Values[SessionAccountID] = stored.ID
	applySessionOptions(sess, h.cfg)

	if err := sess.Save(r, w); err != nil {
		log.Printf("Failed to save session after token login: %v", err)
		handlers.WriteError(w, http.StatusInternalServerError, "InternalError", "Session save failed")
		return
	}

	handlers.WriteJSON(w, http.StatusOK, map[string]any{
		"message": "Login successful",
		"user": map[string]string{
			"id":    stored.ID,
			"email": stored.Email,
		},
	})
}
