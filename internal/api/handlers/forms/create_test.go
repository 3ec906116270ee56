package forms

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Formbase/internal/api/middleware"
	"Formbase/internal/core/accounts"
	"Formbase/internal/core/forms"
)

// mockFormService implements forms.Service for testing
type mockFormService struct {
	createFunc func(ctx context.Context, req forms.CreateFormRequest) (*forms.Form, error)
	deleteFunc func(ctx context.Context, formID, callerID string) error
}

func (m *mockFormService) CreateForm(ctx context.Context, req forms.CreateFormRequest) (*forms.Form, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, req)
	}
	return &forms.Form{ID: "form-1", OwnerID: req.OwnerID, Title: req.Title}, nil
}

func (m *mockFormService) GetForm(ctx context.Context, formID string) (*forms.Form, error) {
	return nil, forms.ErrFormNotFound
}

func (m *mockFormService) ListForms(ctx context.Context, ownerID string) ([]*forms.FormSummary, error) {
	return nil, nil
}

func (m *mockFormService) DeleteForm(ctx context.Context, formID, callerID string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, formID, callerID)
	}
	return nil
}

func authenticated(req *http.Request, accountID string) *http.Request {
	ctx := middleware.SetTestAccount(req.Context(), &accounts.Account{ID: accountID})
	return req.WithContext(ctx)
}

func TestHandleCreate(t *testing.T) {
	var captured forms.CreateFormRequest
	service := &mockFormService{
		createFunc: func(ctx context.Context, req forms.CreateFormRequest) (*forms.Form, error) {
			captured = req
			return &forms.Form{ID: "form-1", OwnerID: req.OwnerID, Title: req.Title}, nil
		},
	}
	handler := NewCreateHandler(service)

	body := `{"title":"Feedback","airtableBaseId":"appBase1","airtableTableId":"tblA",
		"questions":[{"questionKey":"name","airtableFieldId":"fld1","label":"Name","type":"shortText"}],
		"ownerId":"acct-forged"}`
	req := httptest.NewRequest(http.MethodPost, "/api/forms", strings.NewReader(body))
	rec := httptest.NewRecorder()

	handler.HandleCreate(rec, authenticated(req, "acct-1"))

	require.Equal(t, http.StatusCreated, rec.Code)

	// Ownership comes from the session, a body-supplied owner is ignored
	assert.Equal(t, "acct-1", captured.OwnerID)
}

func TestHandleCreate_InvalidBody(t *testing.T) {
	handler := NewCreateHandler(&mockFormService{})

	req := httptest.NewRequest(http.MethodPost, "/api/forms", strings.NewReader("{broken"))
	rec := httptest.NewRecorder()
	handler.HandleCreate(rec, authenticated(req, "acct-1"))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleCreate_ValidationError(t *testing.T) {
	service := &mockFormService{
		createFunc: func(ctx context.Context, req forms.CreateFormRequest) (*forms.Form, error) {
			return nil, forms.NewValidationError("questions", "at least one question is required")
		},
	}
	handler := NewCreateHandler(service)

	req := httptest.NewRequest(http.MethodPost, "/api/forms", strings.NewReader(`{"title":"x"}`))
	rec := httptest.NewRecorder()
	handler.HandleCreate(rec, authenticated(req, "acct-1"))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "InvalidRequest")
}

func TestHandleCreate_Unauthenticated(t *testing.T) {
	handler := NewCreateHandler(&mockFormService{})

	req := httptest.NewRequest(http.MethodPost, "/api/forms", strings.NewReader(`{"title":"x"}`))
	rec := httptest.NewRecorder()
	handler.HandleCreate(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestHandleDelete_NotOwner(t *testing.T) {
	service := &mockFormService{
		deleteFunc: func(ctx context.Context, formID, callerID string) error {
			return forms.ErrNotOwner
		},
	}
	handler := NewDeleteHandler(service)

	req := httptest.NewRequest(http.MethodDelete, "/api/forms/form-1", nil)
	req = withURLParam(req, "formID", "form-1")
	rec := httptest.NewRecorder()
	handler.HandleDelete(rec, authenticated(req, "acct-intruder"))

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "Forbidden")
}

func TestHandleDelete(t *testing.T) {
	handler := NewDeleteHandler(&mockFormService{})

	req := httptest.NewRequest(http.MethodDelete, "/api/forms/form-1", nil)
	req = withURLParam(req, "formID", "form-1")
	rec := httptest.NewRecorder()
	handler.HandleDelete(rec, authenticated(req, "acct-1"))

	assert.Equal(t, http.StatusNoContent, rec.Code)
}
