package auth

const (
	// SessionName is the cookie name for the browser session
	SessionName = "formbase_session"

	// Session value keys. The oauth state and code verifier together form
	// the in-flight authorization attempt; account id is set once the
	// session is authenticated.
	SessionAccountID    = "account_id"
	SessionOAuthState   = "oauth_state"
	SessionCodeVerifier = "code_verifier"

	// SessionMaxAge is the fixed maximum session age in seconds
	SessionMaxAge = 24 * 60 * 60 // 24 hours

	// Minimum security requirements
	MinCookieSecretLength = 32 // bytes
)
