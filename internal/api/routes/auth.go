package routes

import (
	"time"

	"github.com/go-chi/chi/v5"

	"Formbase/internal/api/handlers/auth"
	"Formbase/internal/api/middleware"
	"Formbase/internal/config"
	"Formbase/internal/core/accounts"
)

// RegisterAuthRoutes registers authentication endpoints on the router with
// dedicated rate limiting
// Auth endpoints have stricter rate limits to prevent:
// - Credential stuffing against the personal token login
// - OAuth state churn from scripted authorize/callback loops
func RegisterAuthRoutes(r chi.Router, cfg config.Config, platform auth.PlatformAuthClient, vault accounts.Repository) {
	loginHandler := auth.NewLoginHandler(cfg)
	callbackHandler := auth.NewCallbackHandler(cfg, platform, vault)
	tokenLoginHandler := auth.NewTokenLoginHandler(cfg, platform, vault)
	logoutHandler := auth.NewLogoutHandler()
	meHandler := auth.NewMeHandler(vault)

	// Login endpoints: 10 req/min per IP
	loginLimiter := middleware.NewRateLimiter(10, 1*time.Minute)

	// Authorization flow
	r.With(loginLimiter.Middleware).Get("/api/auth/login", loginHandler.HandleLogin)
	r.With(loginLimiter.Middleware).Get("/api/auth/callback", callbackHandler.HandleCallback)

	// Personal access token login
	r.With(loginLimiter.Middleware).Post("/api/auth/login-token", tokenLoginHandler.HandleTokenLogin)

	// Session management
	r.Post("/api/auth/logout", logoutHandler.HandleLogout)
	r.Get("/api/auth/me", meHandler.HandleMe)
}
