package routes

import (
	"time"

	"github.com/go-chi/chi/v5"

	responsehandlers "Formbase/internal/api/handlers/responses"
	"Formbase/internal/api/middleware"
	"Formbase/internal/core/responses"
)

// RegisterResponseRoutes registers submission endpoints on the router
// The public submit endpoint gets its own rate limiter: it is the only
// unauthenticated write surface in the system.
func RegisterResponseRoutes(r chi.Router, service responses.Service, sessionAuth *middleware.SessionAuthMiddleware, submitPerMinute int) {
	submitHandler := responsehandlers.NewSubmitHandler(service)
	listHandler := responsehandlers.NewListHandler(service)
	getHandler := responsehandlers.NewGetHandler(service)

	submitLimiter := middleware.NewRateLimiter(submitPerMinute, 1*time.Minute)

	// Public: anonymous visitors submit filled forms
	r.With(submitLimiter.Middleware).Post("/api/forms/{formID}/submit", submitHandler.HandleSubmit)

	// Owner endpoints - require an authenticated session
	r.With(sessionAuth.RequireAuth).Get("/api/forms/{formID}/responses", listHandler.HandleList)
	r.With(sessionAuth.RequireAuth).Get("/api/responses/{responseID}", getHandler.HandleGet)
}
