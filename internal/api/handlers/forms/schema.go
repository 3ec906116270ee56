package forms

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"Formbase/internal/airtable"
	"Formbase/internal/api/middleware"
)

// SchemaBrowser is the slice of the Airtable client the schema handlers need
type SchemaBrowser interface {
	ListBases(ctx context.Context, accessToken string) ([]airtable.Base, error)
	ListTables(ctx context.Context, accessToken, baseID string) ([]airtable.Table, error)
	ListFields(ctx context.Context, accessToken, baseID, tableID string) ([]airtable.Field, error)
}

// SchemaHandler exposes the account's Airtable schema for the form builder.
// Every call runs under the session account's stored credential, gated on
// its expiry the same way delegated writes are.
type SchemaHandler struct {
	platform SchemaBrowser
}

// NewSchemaHandler creates a new schema handler
func NewSchemaHandler(platform SchemaBrowser) *SchemaHandler {
	return &SchemaHandler{platform: platform}
}

// fieldView is the builder-facing projection of an Airtable field.
// Unsupported column types are filtered out entirely.
type fieldView struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Type    string   `json:"type"`
	Options []string `json:"options,omitempty"`
}

// HandleListBases lists the bases the account's credential can see
// GET /api/airtable/bases
func (h *SchemaHandler) HandleListBases(w http.ResponseWriter, r *http.Request) {
	token, ok := h.credential(w, r)
	if !ok {
		return
	}

	bases, err := h.platform.ListBases(r.Context(), token)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeSchemaJSON(w, map[string]any{"bases": bases})
}

// HandleListTables lists the tables of a base
// GET /api/airtable/bases/{baseID}/tables
func (h *SchemaHandler) HandleListTables(w http.ResponseWriter, r *http.Request) {
	token, ok := h.credential(w, r)
	if !ok {
		return
	}

	baseID := chi.URLParam(r, "baseID")
	if baseID == "" {
		writeError(w, http.StatusBadRequest, "InvalidRequest", "base id is required")
		return
	}

	tables, err := h.platform.ListTables(r.Context(), token, baseID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	// The builder picks a table before it sees fields; strip them here
	views := make([]map[string]string, 0, len(tables))
	for _, t := range tables {
		views = append(views, map[string]string{"id": t.ID, "name": t.Name})
	}

	writeSchemaJSON(w, map[string]any{"tables": views})
}

// HandleListFields lists the form-mappable fields of a table
// GET /api/airtable/bases/{baseID}/tables/{tableID}/fields
func (h *SchemaHandler) HandleListFields(w http.ResponseWriter, r *http.Request) {
	token, ok := h.credential(w, r)
	if !ok {
		return
	}

	baseID := chi.URLParam(r, "baseID")
	tableID := chi.URLParam(r, "tableID")
	if baseID == "" || tableID == "" {
		writeError(w, http.StatusBadRequest, "InvalidRequest", "base id and table id are required")
		return
	}

	fields, err := h.platform.ListFields(r.Context(), token, baseID, tableID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	views := make([]fieldView, 0, len(fields))
	for _, f := range fields {
		mapped := airtable.MapFieldType(f.Type)
		if mapped == "" {
			continue
		}
		views = append(views, fieldView{
			ID:      f.ID,
			Name:    f.Name,
			Type:    mapped,
			Options: airtable.FieldChoiceNames(f),
		})
	}

	writeSchemaJSON(w, map[string]any{"fields": views})
}

// credential resolves the session account's access token, writing a 401 when
// the account holds no usable credential. Expiry blocks schema browsing the
// same way it blocks delegated writes: reconnect, no silent renewal.
func (h *SchemaHandler) credential(w http.ResponseWriter, r *http.Request) (string, bool) {
	account := middleware.GetAccount(r.Context())
	if account == nil {
		writeError(w, http.StatusUnauthorized, "AuthRequired", "Authentication required")
		return "", false
	}

	if !account.HasCredential() || account.CredentialExpired(time.Now()) {
		writeError(w, http.StatusUnauthorized, "AuthRequired", "Airtable authorization expired, please reconnect")
		return "", false
	}

	return account.AccessToken, true
}

func writeSchemaJSON(w http.ResponseWriter, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		_ = err
	}
}
