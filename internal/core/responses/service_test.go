package responses

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Formbase/internal/airtable"
	"Formbase/internal/core/accounts"
	"Formbase/internal/core/forms"
)

// mockResponseRepo implements Repository for testing
type mockResponseRepo struct {
	responses     map[string]*Response
	byRecordID    map[string]*Response
	statusUpdates []string
	createCalls   int
}

func newMockResponseRepo() *mockResponseRepo {
	return &mockResponseRepo{
		responses:  make(map[string]*Response),
		byRecordID: make(map[string]*Response),
	}
}

func (m *mockResponseRepo) Create(ctx context.Context, response *Response) (*Response, error) {
	m.createCalls++
	m.responses[response.ID] = response
	m.byRecordID[response.AirtableRecordID] = response
	return response, nil
}

func (m *mockResponseRepo) GetByID(ctx context.Context, id string) (*Response, error) {
	if r, ok := m.responses[id]; ok {
		return r, nil
	}
	return nil, ErrResponseNotFound
}

func (m *mockResponseRepo) GetByAirtableRecordID(ctx context.Context, recordID string) (*Response, error) {
	if r, ok := m.byRecordID[recordID]; ok {
		return r, nil
	}
	return nil, ErrResponseNotFound
}

func (m *mockResponseRepo) ListByForm(ctx context.Context, formID string) ([]*Response, error) {
	var out []*Response
	for _, r := range m.responses {
		if r.FormID == formID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *mockResponseRepo) UpdateStatus(ctx context.Context, id, status string) error {
	r, ok := m.responses[id]
	if !ok {
		return ErrResponseNotFound
	}
	r.Status = status
	m.statusUpdates = append(m.statusUpdates, id+":"+status)
	return nil
}

// mockFormRepo implements forms.Repository for testing
type mockFormRepo struct {
	forms map[string]*forms.Form
}

func (m *mockFormRepo) Create(ctx context.Context, form *forms.Form) (*forms.Form, error) {
	return form, nil
}

func (m *mockFormRepo) GetByID(ctx context.Context, formID string) (*forms.Form, error) {
	if f, ok := m.forms[formID]; ok {
		return f, nil
	}
	return nil, forms.ErrFormNotFound
}

func (m *mockFormRepo) ListByOwner(ctx context.Context, ownerID string) ([]*forms.FormSummary, error) {
	return nil, nil
}

func (m *mockFormRepo) Delete(ctx context.Context, formID string) error {
	return nil
}

// mockAccountRepo implements accounts.Repository for testing
type mockAccountRepo struct {
	accounts map[string]*accounts.Account
}

func (m *mockAccountRepo) GetByID(ctx context.Context, id string) (*accounts.Account, error) {
	if a, ok := m.accounts[id]; ok {
		return a, nil
	}
	return nil, accounts.ErrAccountNotFound
}

func (m *mockAccountRepo) GetByAirtableUserID(ctx context.Context, airtableUserID string) (*accounts.Account, error) {
	return nil, accounts.ErrAccountNotFound
}

func (m *mockAccountRepo) Upsert(ctx context.Context, account *accounts.Account) (*accounts.Account, error) {
	return account, nil
}

// mockRecordCreator implements RecordCreator for testing
type mockRecordCreator struct {
	createFunc func(ctx context.Context, accessToken, baseID, tableID string, fields map[string]any) (*airtable.Record, error)
	calls      int
	lastToken  string
	lastFields map[string]any
}

func (m *mockRecordCreator) CreateRecord(ctx context.Context, accessToken, baseID, tableID string, fields map[string]any) (*airtable.Record, error) {
	m.calls++
	m.lastToken = accessToken
	m.lastFields = fields
	if m.createFunc != nil {
		return m.createFunc(ctx, accessToken, baseID, tableID, fields)
	}
	return &airtable.Record{ID: "recNew1", Fields: fields}, nil
}

func testForm() *forms.Form {
	return &forms.Form{
		ID:              "form-1",
		OwnerID:         "acct-owner",
		Title:           "Feedback",
		AirtableBaseID:  "appBase1",
		AirtableTableID: "tblA",
		Questions: []forms.Question{
			{QuestionKey: "name", AirtableFieldID: "fldName", Label: "Name", Type: forms.TypeShortText, Required: true},
			{QuestionKey: "color", AirtableFieldID: "fldColor", Label: "Color", Type: forms.TypeSingleSelect, Options: []string{"Red", "Blue"}},
			{QuestionKey: "tags", AirtableFieldID: "fldTags", Label: "Tags", Type: forms.TypeMultiSelect, Options: []string{"a", "b"}},
			{QuestionKey: "files", AirtableFieldID: "fldFiles", Label: "Files", Type: forms.TypeAttachment},
		},
	}
}

type fixture struct {
	service     Service
	repo        *mockResponseRepo
	formRepo    *mockFormRepo
	accountRepo *mockAccountRepo
	platform    *mockRecordCreator
}

func newFixture(owner *accounts.Account) *fixture {
	f := &fixture{
		repo:        newMockResponseRepo(),
		formRepo:    &mockFormRepo{forms: map[string]*forms.Form{"form-1": testForm()}},
		accountRepo: &mockAccountRepo{accounts: map[string]*accounts.Account{}},
		platform:    &mockRecordCreator{},
	}
	if owner != nil {
		f.accountRepo.accounts[owner.ID] = owner
	}
	f.service = NewService(f.repo, f.formRepo, f.accountRepo, f.platform)
	return f
}

func activeOwner() *accounts.Account {
	return &accounts.Account{
		ID:             "acct-owner",
		AirtableUserID: "usr123",
		AccessToken:    "owner-token",
		TokenExpiresAt: time.Now().Add(time.Hour),
	}
}

func TestSubmit_DelegatedWrite(t *testing.T) {
	f := newFixture(activeOwner())

	result, err := f.service.Submit(context.Background(), SubmitRequest{
		FormID: "form-1",
		Answers: map[string]any{
			"name":  "Ada",
			"color": "Red",
			"tags":  []any{"a"},
			"files": []any{"https://example.com/f.png"},
		},
	})
	require.NoError(t, err)

	assert.NotEmpty(t, result.ResponseID)
	assert.Equal(t, "recNew1", result.AirtableRecordID)

	// The write ran under the owner's stored credential
	assert.Equal(t, "owner-token", f.platform.lastToken)

	// Answers were mapped onto Airtable field ids
	assert.Equal(t, "Ada", f.platform.lastFields["fldName"])
	assert.Equal(t, []any{"a"}, f.platform.lastFields["fldTags"])
	assert.Equal(t, []map[string]any{{"url": "https://example.com/f.png"}}, f.platform.lastFields["fldFiles"])

	// Local record captured with active status and the platform join key
	stored, err := f.repo.GetByAirtableRecordID(context.Background(), "recNew1")
	require.NoError(t, err)
	assert.Equal(t, StatusActive, stored.Status)
	assert.Equal(t, "form-1", stored.FormID)
}

func TestSubmit_OwnerWithoutCredential(t *testing.T) {
	owner := activeOwner()
	owner.AccessToken = ""
	f := newFixture(owner)

	_, err := f.service.Submit(context.Background(), SubmitRequest{
		FormID:  "form-1",
		Answers: map[string]any{"name": "Ada"},
	})

	assert.ErrorIs(t, err, ErrDelegationUnavailable)
	assert.Zero(t, f.platform.calls, "no platform write may be attempted")
	assert.Zero(t, f.repo.createCalls, "no local record may be created")
}

func TestSubmit_OwnerAccountMissing(t *testing.T) {
	f := newFixture(nil)

	_, err := f.service.Submit(context.Background(), SubmitRequest{
		FormID:  "form-1",
		Answers: map[string]any{"name": "Ada"},
	})

	assert.ErrorIs(t, err, ErrDelegationUnavailable)
	assert.Zero(t, f.platform.calls)
}

func TestSubmit_ExpiredCredential(t *testing.T) {
	owner := activeOwner()
	owner.TokenExpiresAt = time.Now().Add(-time.Minute)
	f := newFixture(owner)

	_, err := f.service.Submit(context.Background(), SubmitRequest{
		FormID:  "form-1",
		Answers: map[string]any{"name": "Ada"},
	})

	assert.ErrorIs(t, err, ErrDelegationExpired)
	assert.Zero(t, f.platform.calls, "expired credential must never reach the platform")
	assert.Zero(t, f.repo.createCalls)
}

func TestSubmit_PersonalTokenNeverExpires(t *testing.T) {
	owner := activeOwner()
	owner.TokenExpiresAt = time.Time{}
	f := newFixture(owner)

	_, err := f.service.Submit(context.Background(), SubmitRequest{
		FormID:  "form-1",
		Answers: map[string]any{"name": "Ada"},
	})

	assert.NoError(t, err)
	assert.Equal(t, 1, f.platform.calls)
}

func TestSubmit_ValidationFailures(t *testing.T) {
	tests := []struct {
		name    string
		answers map[string]any
	}{
		{"missing required answer", map[string]any{"color": "Red"}},
		{"blank required answer", map[string]any{"name": "   "}},
		{"invalid single select option", map[string]any{"name": "Ada", "color": "Green"}},
		{"invalid multi select option", map[string]any{"name": "Ada", "tags": []any{"a", "z"}}},
		{"multi select not an array", map[string]any{"name": "Ada", "tags": "a"}},
		{"text answer not a string", map[string]any{"name": 42}},
		{"attachment not an array", map[string]any{"name": "Ada", "files": "https://example.com"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(activeOwner())

			_, err := f.service.Submit(context.Background(), SubmitRequest{
				FormID:  "form-1",
				Answers: tt.answers,
			})

			valErr, ok := IsSubmissionValidationError(err)
			require.True(t, ok, "expected a validation error, got %v", err)
			assert.NotEmpty(t, valErr.Problems)
			assert.Zero(t, f.platform.calls, "invalid answers must never reach the platform")
		})
	}
}

func TestSubmit_PlatformFailureLeavesNoLocalRecord(t *testing.T) {
	f := newFixture(activeOwner())
	f.platform.createFunc = func(ctx context.Context, accessToken, baseID, tableID string, fields map[string]any) (*airtable.Record, error) {
		return nil, &airtable.UpstreamError{Operation: "create record", StatusCode: 503}
	}

	_, err := f.service.Submit(context.Background(), SubmitRequest{
		FormID:  "form-1",
		Answers: map[string]any{"name": "Ada"},
	})

	require.Error(t, err)
	assert.Zero(t, f.repo.createCalls, "platform failure must not leave partial state")
}

func TestSubmit_FormNotFound(t *testing.T) {
	f := newFixture(activeOwner())

	_, err := f.service.Submit(context.Background(), SubmitRequest{
		FormID:  "missing",
		Answers: map[string]any{"name": "Ada"},
	})

	assert.True(t, forms.IsNotFound(err))
}

func TestApplyEvent_RecordDeleted(t *testing.T) {
	f := newFixture(activeOwner())
	seedResponse(f.repo, "resp-1", "recA")

	err := f.service.ApplyEvent(context.Background(), Notification{
		Event: "record.deleted", Base: "appBase1", Table: "tblA", RecordID: "recA",
	})
	require.NoError(t, err)

	stored, _ := f.repo.GetByID(context.Background(), "resp-1")
	assert.Equal(t, StatusDeleted, stored.Status)
}

func TestApplyEvent_Idempotent(t *testing.T) {
	f := newFixture(activeOwner())
	seedResponse(f.repo, "resp-1", "recA")

	n := Notification{Event: "record.deleted", Base: "appBase1", Table: "tblA", RecordID: "recA"}

	require.NoError(t, f.service.ApplyEvent(context.Background(), n))
	require.NoError(t, f.service.ApplyEvent(context.Background(), n), "reapplying the same event is not an error")

	stored, _ := f.repo.GetByID(context.Background(), "resp-1")
	assert.Equal(t, StatusDeleted, stored.Status)
}

func TestApplyEvent_UpdatedReactivates(t *testing.T) {
	f := newFixture(activeOwner())
	seedResponse(f.repo, "resp-1", "recA")
	require.NoError(t, f.repo.UpdateStatus(context.Background(), "resp-1", StatusDeleted))

	err := f.service.ApplyEvent(context.Background(), Notification{
		Event: "record.updated", Base: "appBase1", Table: "tblA", RecordID: "recA",
	})
	require.NoError(t, err)

	stored, _ := f.repo.GetByID(context.Background(), "resp-1")
	assert.Equal(t, StatusActive, stored.Status)
}

func TestApplyEvent_UnknownRecordIsNoOp(t *testing.T) {
	f := newFixture(activeOwner())

	err := f.service.ApplyEvent(context.Background(), Notification{
		Event: "record.deleted", Base: "appBase1", Table: "tblA", RecordID: "recUnknown",
	})

	assert.NoError(t, err, "unknown records are acknowledged without mutation")
	assert.Empty(t, f.repo.statusUpdates)
}

func TestApplyEvent_UnknownEventKindIsNoOp(t *testing.T) {
	f := newFixture(activeOwner())
	seedResponse(f.repo, "resp-1", "recA")

	err := f.service.ApplyEvent(context.Background(), Notification{
		Event: "record.archived", Base: "appBase1", Table: "tblA", RecordID: "recA",
	})

	assert.NoError(t, err)
	assert.Empty(t, f.repo.statusUpdates, "unknown event kinds must not mutate state")
}

func TestApplyEvent_RepoFailurePropagates(t *testing.T) {
	f := newFixture(activeOwner())
	seedResponse(f.repo, "resp-1", "recA")

	// simulate a lookup failure that is not "not found"
	failing := &failingRepo{Repository: f.repo, err: errors.New("connection reset")}
	service := NewService(failing, f.formRepo, f.accountRepo, f.platform)

	err := service.ApplyEvent(context.Background(), Notification{
		Event: "record.deleted", Base: "appBase1", Table: "tblA", RecordID: "recA",
	})
	assert.Error(t, err)
}

type failingRepo struct {
	Repository
	err error
}

func (f *failingRepo) GetByAirtableRecordID(ctx context.Context, recordID string) (*Response, error) {
	return nil, f.err
}

func TestListForForm_OwnershipCheck(t *testing.T) {
	f := newFixture(activeOwner())
	seedResponse(f.repo, "resp-1", "recA")

	_, err := f.service.ListForForm(context.Background(), "form-1", "acct-intruder")
	assert.ErrorIs(t, err, forms.ErrNotOwner)

	summaries, err := f.service.ListForForm(context.Background(), "form-1", "acct-owner")
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.Equal(t, "recA", summaries[0].AirtableRecordID)
}

func TestListForForm_AnswerPreviews(t *testing.T) {
	f := newFixture(activeOwner())
	long := strings.Repeat("abcde", 20)
	f.repo.Create(context.Background(), &Response{
		ID:               "resp-1",
		FormID:           "form-1",
		AirtableRecordID: "recA",
		Status:           StatusActive,
		Answers: map[string]any{
			"name":  long,
			"files": []any{"a", "b", "c"},
		},
	})

	summaries, err := f.service.ListForForm(context.Background(), "form-1", "acct-owner")
	require.NoError(t, err)
	require.Len(t, summaries, 1)

	preview := summaries[0].Answers
	assert.Equal(t, long[:50]+"...", preview["Name"])
	assert.Equal(t, "3 items", preview["Files"])
}

func TestGetResponse_OwnershipCheck(t *testing.T) {
	f := newFixture(activeOwner())
	seedResponse(f.repo, "resp-1", "recA")

	_, err := f.service.GetResponse(context.Background(), "resp-1", "acct-intruder")
	assert.ErrorIs(t, err, forms.ErrNotOwner)

	response, err := f.service.GetResponse(context.Background(), "resp-1", "acct-owner")
	require.NoError(t, err)
	assert.Equal(t, "resp-1", response.ID)
}

func seedResponse(repo *mockResponseRepo, id, recordID string) {
	repo.responses[id] = &Response{
		ID:               id,
		FormID:           "form-1",
		AirtableRecordID: recordID,
		Status:           StatusActive,
		Answers:          map[string]any{"name": "Ada"},
	}
	repo.byRecordID[recordID] = repo.responses[id]
}
