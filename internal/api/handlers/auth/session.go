package auth

import (
	"net/http"

	"github.com/gorilla/sessions"

	"Formbase/internal/config"
)

func applySessionOptions(sess *sessions.Session, cfg config.Config) {
	sess.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   SessionMaxAge,
		HttpOnly: true,
		Secure:   !cfg.IsDevelopment(),
		SameSite: http.SameSiteLaxMode,
	}
}

// CurrentAccountID returns the authenticated account id bound to the
// request's session, or "" when the session is anonymous.
func CurrentAccountID(r *http.Request) string {
	sess, err := GetCookieStore().Get(r, SessionName)
	if err != nil || sess.IsNew {
		return ""
	}

	id, _ := sess.Values[SessionAccountID].(string)
	return id
}
