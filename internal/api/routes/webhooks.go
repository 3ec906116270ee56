package routes

import (
	"github.com/go-chi/chi/v5"

	"Formbase/internal/api/handlers/webhooks"
	"Formbase/internal/core/responses"
)

// RegisterWebhookRoutes registers the platform notification listener
// The listener is unauthenticated by contract with the sender; it never
// mutates anything except the status of an already-recorded submission.
func RegisterWebhookRoutes(r chi.Router, service responses.Service) {
	handler := webhooks.NewAirtableHandler(service)

	r.Post("/api/webhooks/airtable", handler.HandleNotification)
	r.Get("/api/webhooks/airtable", handler.HandleVerify)
}
