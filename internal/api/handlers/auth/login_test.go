package auth

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogin_RedirectsToAuthorizeEndpoint(t *testing.T) {
	initTestStore(t)

	handler := NewLoginHandler(testConfig())

	rec := httptest.NewRecorder()
	handler.HandleLogin(rec, httptest.NewRequest(http.MethodGet, "/api/auth/login", nil))

	require.Equal(t, http.StatusFound, rec.Code)

	loc, err := url.Parse(rec.Header().Get("Location"))
	require.NoError(t, err)
	assert.Equal(t, "airtable.com", loc.Host)
	assert.Equal(t, "/oauth2/v1/authorize", loc.Path)

	q := loc.Query()
	assert.Equal(t, "client-id", q.Get("client_id"))
	assert.Equal(t, "code", q.Get("response_type"))
	assert.Equal(t, "http://localhost:8081/api/auth/callback", q.Get("redirect_uri"))
	assert.Equal(t, "data.records:read data.records:write schema.bases:read", q.Get("scope"))
	assert.Equal(t, "S256", q.Get("code_challenge_method"))
	assert.NotEmpty(t, q.Get("state"))
	assert.NotEmpty(t, q.Get("code_challenge"))

	// The verifier never appears in the redirect
	assert.Empty(t, q.Get("code_verifier"))
}

func TestLogin_BindsAttemptToSession(t *testing.T) {
	initTestStore(t)

	handler := NewLoginHandler(testConfig())

	rec := httptest.NewRecorder()
	handler.HandleLogin(rec, httptest.NewRequest(http.MethodGet, "/api/auth/login", nil))
	require.Equal(t, http.StatusFound, rec.Code)

	loc, err := url.Parse(rec.Header().Get("Location"))
	require.NoError(t, err)

	// The state in the redirect matches the one bound to the session
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	var sessionCookie *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == SessionName {
			sessionCookie = c
			req.AddCookie(c)
		}
	}
	require.NotNil(t, sessionCookie, "login must persist the session before redirecting")
	assert.True(t, sessionCookie.HttpOnly)

	sess, err := GetCookieStore().Get(req, SessionName)
	require.NoError(t, err)
	assert.Equal(t, loc.Query().Get("state"), sess.Values[SessionOAuthState])
	assert.NotEmpty(t, sess.Values[SessionCodeVerifier])
}

func TestLogin_UniquePerAttempt(t *testing.T) {
	initTestStore(t)

	handler := NewLoginHandler(testConfig())

	states := make(map[string]bool)
	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		handler.HandleLogin(rec, httptest.NewRequest(http.MethodGet, "/api/auth/login", nil))

		loc, err := url.Parse(rec.Header().Get("Location"))
		require.NoError(t, err)
		states[loc.Query().Get("state")] = true
	}

	assert.Len(t, states, 3, "every attempt gets a fresh state nonce")
}

func TestLogin_OAuthNotConfigured(t *testing.T) {
	initTestStore(t)

	cfg := testConfig()
	cfg.AirtableClientID = ""
	handler := NewLoginHandler(cfg)

	rec := httptest.NewRecorder()
	handler.HandleLogin(rec, httptest.NewRequest(http.MethodGet, "/api/auth/login", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "ConfigurationError")
}
