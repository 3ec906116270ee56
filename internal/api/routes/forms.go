package routes

import (
	"github.com/go-chi/chi/v5"

	formhandlers "Formbase/internal/api/handlers/forms"
	"Formbase/internal/api/middleware"
	"Formbase/internal/core/forms"
)

// RegisterFormRoutes registers form builder endpoints on the router
func RegisterFormRoutes(r chi.Router, service forms.Service, platform formhandlers.SchemaBrowser, sessionAuth *middleware.SessionAuthMiddleware) {
	createHandler := formhandlers.NewCreateHandler(service)
	getHandler := formhandlers.NewGetHandler(service)
	listHandler := formhandlers.NewListHandler(service)
	deleteHandler := formhandlers.NewDeleteHandler(service)
	schemaHandler := formhandlers.NewSchemaHandler(platform)

	// Public: the fill surface fetches the definition anonymously
	r.Get("/api/forms/{formID}", getHandler.HandleGet)

	// Owner endpoints - require an authenticated session
	r.With(sessionAuth.RequireAuth).Post("/api/forms", createHandler.HandleCreate)
	r.With(sessionAuth.RequireAuth).Get("/api/forms", listHandler.HandleList)
	r.With(sessionAuth.RequireAuth).Delete("/api/forms/{formID}", deleteHandler.HandleDelete)

	// Schema browsing for the builder, under the account's stored credential
	r.With(sessionAuth.RequireAuth).Get("/api/airtable/bases", schemaHandler.HandleListBases)
	r.With(sessionAuth.RequireAuth).Get("/api/airtable/bases/{baseID}/tables", schemaHandler.HandleListTables)
	r.With(sessionAuth.RequireAuth).Get("/api/airtable/bases/{baseID}/tables/{tableID}/fields", schemaHandler.HandleListFields)
}
