package forms

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Formbase/internal/airtable"
	"Formbase/internal/api/middleware"
	"Formbase/internal/core/accounts"
)

// withURLParam injects a chi route parameter into the request context
func withURLParam(req *http.Request, key, value string) *http.Request {
	rctx := chi.RouteContext(req.Context())
	if rctx == nil {
		rctx = chi.NewRouteContext()
	}
	rctx.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

// mockSchemaBrowser implements SchemaBrowser for testing
type mockSchemaBrowser struct {
	fields []airtable.Field
	calls  int
}

func (m *mockSchemaBrowser) ListBases(ctx context.Context, accessToken string) ([]airtable.Base, error) {
	m.calls++
	return []airtable.Base{{ID: "appBase1", Name: "CRM"}}, nil
}

func (m *mockSchemaBrowser) ListTables(ctx context.Context, accessToken, baseID string) ([]airtable.Table, error) {
	m.calls++
	return []airtable.Table{{ID: "tblA", Name: "Responses"}}, nil
}

func (m *mockSchemaBrowser) ListFields(ctx context.Context, accessToken, baseID, tableID string) ([]airtable.Field, error) {
	m.calls++
	return m.fields, nil
}

func withCredential(req *http.Request, expiresAt time.Time) *http.Request {
	ctx := middleware.SetTestAccount(req.Context(), &accounts.Account{
		ID:             "acct-1",
		AccessToken:    "owner-token",
		TokenExpiresAt: expiresAt,
	})
	return req.WithContext(ctx)
}

func TestHandleListFields_FiltersUnsupportedTypes(t *testing.T) {
	browser := &mockSchemaBrowser{
		fields: []airtable.Field{
			{ID: "fld1", Name: "Name", Type: "singleLineText"},
			{ID: "fld2", Name: "Computed", Type: "formula"},
			{ID: "fld3", Name: "Color", Type: "singleSelect", Options: &airtable.FieldOptions{
				Choices: []airtable.FieldChoice{{Name: "Red"}, {Name: "Blue"}},
			}},
		},
	}
	handler := NewSchemaHandler(browser)

	req := httptest.NewRequest(http.MethodGet, "/api/airtable/bases/appBase1/tables/tblA/fields", nil)
	req = withURLParam(req, "baseID", "appBase1")
	req = withURLParam(req, "tableID", "tblA")
	rec := httptest.NewRecorder()

	handler.HandleListFields(rec, withCredential(req, time.Now().Add(time.Hour)))

	require.Equal(t, http.StatusOK, rec.Code)

	var out struct {
		Fields []fieldView `json:"fields"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	require.Len(t, out.Fields, 2, "unsupported column types are dropped")
	assert.Equal(t, "shortText", out.Fields[0].Type)
	assert.Equal(t, "singleSelect", out.Fields[1].Type)
	assert.Equal(t, []string{"Red", "Blue"}, out.Fields[1].Options)
}

func TestSchemaHandlers_ExpiredCredential(t *testing.T) {
	browser := &mockSchemaBrowser{}
	handler := NewSchemaHandler(browser)

	req := httptest.NewRequest(http.MethodGet, "/api/airtable/bases", nil)
	rec := httptest.NewRecorder()
	handler.HandleListBases(rec, withCredential(req, time.Now().Add(-time.Minute)))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "AuthRequired")
	assert.Zero(t, browser.calls, "expired credential must never reach the platform")
}

func TestSchemaHandlers_NoCredential(t *testing.T) {
	browser := &mockSchemaBrowser{}
	handler := NewSchemaHandler(browser)

	req := httptest.NewRequest(http.MethodGet, "/api/airtable/bases", nil)
	ctx := middleware.SetTestAccount(req.Context(), &accounts.Account{ID: "acct-1"})
	rec := httptest.NewRecorder()
	handler.HandleListBases(rec, req.WithContext(ctx))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Zero(t, browser.calls)
}

func TestHandleListBases(t *testing.T) {
	handler := NewSchemaHandler(&mockSchemaBrowser{})

	req := httptest.NewRequest(http.MethodGet, "/api/airtable/bases", nil)
	rec := httptest.NewRecorder()
	handler.HandleListBases(rec, withCredential(req, time.Time{}))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "appBase1")
}
