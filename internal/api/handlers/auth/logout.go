package auth

import (
	"log"
	"net/http"

	"Formbase/internal/api/handlers"
)

// LogoutHandler handles user logout
type LogoutHandler struct{}

// NewLogoutHandler creates a new logout handler
func NewLogoutHandler() *LogoutHandler {
	return &LogoutHandler{}
}

// HandleLogout logs out the current user
// POST /api/auth/logout
func (h *LogoutHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	sess, err := GetCookieStore().Get(r, SessionName)
	if err != nil || sess.IsNew {
		handlers.WriteJSON(w, http.StatusOK, map[string]string{"message": "Logged out successfully"})
		return
	}

	// server-side invalidation plus cookie clearing
	sess.Values = map[interface{}]interface{}{}
	sess.Options.MaxAge = -1
	if err := sess.Save(r, w); err != nil {
		log.Printf("Failed to clear session: %v", err)
		handlers.WriteError(w, http.StatusInternalServerError, "InternalError", "Logout failed")
		return
	}

	handlers.WriteJSON(w, http.StatusOK, map[string]string{"message": "Logged out successfully"})
}
