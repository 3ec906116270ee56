package auth

import (
	"log"
	"net/http"

	"Formbase/internal/api/handlers"
	"Formbase/internal/core/accounts"
)

// MeHandler returns the currently authenticated account
type MeHandler struct {
	vault accounts.Repository
}

// NewMeHandler creates a new me handler
func NewMeHandler(vault accounts.Repository) *MeHandler {
	return &MeHandler{vault: vault}
}

// HandleMe returns the account bound to the session, tokens redacted
// GET /api/auth/me
func (h *MeHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	accountID := CurrentAccountID(r)
	if accountID == "" {
		handlers.WriteError(w, http.StatusUnauthorized, "AuthenticationRequired", "Not authenticated")
		return
	}

	account, err := h.vault.GetByID(r.Context(), accountID)
	if err != nil {
		if err == accounts.ErrAccountNotFound {
			handlers.WriteError(w, http.StatusNotFound, "NotFound", "Account not found")
			return
		}
		log.Printf("Failed to load account %s: %v", accountID, err)
		handlers.WriteError(w, http.StatusInternalServerError, "InternalError", "Failed to fetch account")
		return
	}

	// token fields carry json:"-" so the credential never leaves the vault
	handlers.WriteJSON(w, http.StatusOK, account)
}
