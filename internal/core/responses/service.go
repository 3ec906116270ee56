package responses

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"Formbase/internal/core/accounts"
	"Formbase/internal/core/forms"
)

type responseService struct {
	repo        Repository
	formRepo    forms.Repository
	accountRepo accounts.Repository
	platform    RecordCreator
}

// NewService creates a new response service
func NewService(repo Repository, formRepo forms.Repository, accountRepo accounts.Repository, platform RecordCreator) Service {
	return &responseService{
		repo:        repo,
		formRepo:    formRepo,
		accountRepo: accountRepo,
		platform:    platform,
	}
}

// Submit performs the delegated write. The caller is anonymous by design:
// the credential used is always the form owner's, resolved from the vault,
// never the caller's and never a fallback.
func (s *responseService) Submit(ctx context.Context, req SubmitRequest) (*SubmitResult, error) {
	form, err := s.formRepo.GetByID(ctx, req.FormID)
	if err != nil {
		return nil, err
	}

	owner, err := s.accountRepo.GetByID(ctx, form.OwnerID)
	if err != nil {
		if errors.Is(err, accounts.ErrAccountNotFound) {
			return nil, ErrDelegationUnavailable
		}
		return nil, fmt.Errorf("failed to resolve form owner: %w", err)
	}

	if !owner.HasCredential() {
		return nil, ErrDelegationUnavailable
	}
	if owner.CredentialExpired(time.Now()) {
		return nil, ErrDelegationExpired
	}

	if problems := validateAnswers(form.Questions, req.Answers); len(problems) > 0 {
		return nil, &SubmissionValidationError{Problems: problems}
	}

	fields := mapAnswersToFields(form.Questions, req.Answers)

	record, err := s.platform.CreateRecord(ctx, owner.AccessToken, form.AirtableBaseID, form.AirtableTableID, fields)
	if err != nil {
		// no partial state: the local record is only created after the
		// platform write succeeds
		return nil, fmt.Errorf("platform write failed: %w", err)
	}

	response := &Response{
		ID:               uuid.NewString(),
		FormID:           form.ID,
		AirtableRecordID: record.ID,
		Answers:          req.Answers,
		Status:           StatusActive,
	}

	stored, err := s.repo.Create(ctx, response)
	if err != nil {
		return nil, fmt.Errorf("failed to record submission: %w", err)
	}

	return &SubmitResult{
		ResponseID:       stored.ID,
		AirtableRecordID: stored.AirtableRecordID,
	}, nil
}

// ApplyEvent applies one change notification. Reapplying the same event
// yields the same final state and is not an error.
func (s *responseService) ApplyEvent(ctx context.Context, n Notification) error {
	response, err := s.repo.GetByAirtableRecordID(ctx, n.RecordID)
	if err != nil {
		if errors.Is(err, ErrResponseNotFound) {
			// the notification concerns data outside this system's
			// knowledge - acknowledge without mutation
			slog.Info("notification for unknown record", "recordId", n.RecordID)
			return nil
		}
		return fmt.Errorf("failed to look up response: %w", err)
	}

	switch ParseEventKind(n.Event) {
	case EventRecordUpdated:
		return s.repo.UpdateStatus(ctx, response.ID, StatusActive)
	case EventRecordDeleted:
		return s.repo.UpdateStatus(ctx, response.ID, StatusDeleted)
	default:
		slog.Info("unhandled notification event", "event", n.Event, "recordId", n.RecordID)
		return nil
	}
}

// ListForForm lists submissions for a form the caller owns
func (s *responseService) ListForForm(ctx context.Context, formID, callerID string) ([]*ResponseSummary, error) {
	form, err := s.formRepo.GetByID(ctx, formID)
	if err != nil {
		return nil, err
	}
	if form.OwnerID != callerID {
		return nil, forms.ErrNotOwner
	}

	all, err := s.repo.ListByForm(ctx, formID)
	if err != nil {
		return nil, err
	}

	summaries := make([]*ResponseSummary, 0, len(all))
	for _, r := range all {
		summaries = append(summaries, &ResponseSummary{
			ID:               r.ID,
			AirtableRecordID: r.AirtableRecordID,
			Answers:          previewAnswers(form.Questions, r.Answers),
			Status:           r.Status,
			CreatedAt:        r.CreatedAt,
			UpdatedAt:        r.UpdatedAt,
		})
	}

	return summaries, nil
}

// GetResponse retrieves one submission the caller is allowed to see
func (s *responseService) GetResponse(ctx context.Context, responseID, callerID string) (*Response, error) {
	response, err := s.repo.GetByID(ctx, responseID)
	if err != nil {
		return nil, err
	}

	form, err := s.formRepo.GetByID(ctx, response.FormID)
	if err != nil {
		return nil, err
	}
	if form.OwnerID != callerID {
		return nil, forms.ErrNotOwner
	}

	return response, nil
}

func validateAnswers(questions []forms.Question, answers map[string]any) []string {
	var problems []string

	for _, q := range questions {
		answer, present := answers[q.QuestionKey]

		if isEmptyAnswer(answer) {
			present = false
		}

		if q.Required && !present {
			problems = append(problems, q.Label+" is required")
			continue
		}
		if !present {
			continue
		}

		switch q.Type {
		case forms.TypeSingleSelect:
			str, ok := answer.(string)
			if !ok || !containsOption(q.Options, str) {
				problems = append(problems, q.Label+": invalid selection")
			}

		case forms.TypeMultiSelect:
			values, ok := toStringSlice(answer)
			if !ok {
				problems = append(problems, q.Label+": must be an array")
				continue
			}
			for _, v := range values {
				if !containsOption(q.Options, v) {
					problems = append(problems, q.Label+": invalid selection: "+v)
				}
			}

		case forms.TypeAttachment:
			if _, ok := answer.([]any); !ok {
				problems = append(problems, q.Label+": must be an array of attachments")
			}

		case forms.TypeShortText, forms.TypeLongText:
			if _, ok := answer.(string); !ok {
				problems = append(problems, q.Label+": must be a string")
			}
		}
	}

	return problems
}

// mapAnswersToFields maps validated answers into the platform's field model,
// keyed by Airtable field id.
func mapAnswersToFields(questions []forms.Question, answers map[string]any) map[string]any {
	fields := make(map[string]any)

	for _, q := range questions {
		answer, ok := answers[q.QuestionKey]
		if !ok || isEmptyAnswer(answer) {
			continue
		}

		if q.Type == forms.TypeAttachment {
			items, _ := answer.([]any)
			attachments := make([]map[string]any, 0, len(items))
			for _, item := range items {
				switch v := item.(type) {
				case string:
					attachments = append(attachments, map[string]any{"url": v})
				case map[string]any:
					if u, ok := v["url"]; ok {
						attachments = append(attachments, map[string]any{"url": u})
					}
				}
			}
			fields[q.AirtableFieldID] = attachments
			continue
		}

		fields[q.AirtableFieldID] = answer
	}

	return fields
}

func previewAnswers(questions []forms.Question, answers map[string]any) map[string]string {
	preview := make(map[string]string)

	for _, q := range questions {
		answer, ok := answers[q.QuestionKey]
		if !ok || answer == nil {
			continue
		}

		if items, isSlice := answer.([]any); isSlice {
			if len(items) == 0 {
				preview[q.Label] = "Empty"
			} else {
				preview[q.Label] = fmt.Sprintf("%d items", len(items))
			}
			continue
		}

		str := fmt.Sprintf("%v", answer)
		if len(str) > 50 {
			str = str[:50] + "..."
		}
		preview[q.Label] = str
	}

	return preview
}

func isEmptyAnswer(answer any) bool {
	if answer == nil {
		return true
	}
	if str, ok := answer.(string); ok {
		return strings.TrimSpace(str) == ""
	}
	return false
}

func containsOption(options []string, value string) bool {
	for _, opt := range options {
		if opt == value {
			return true
		}
	}
	return false
}

func toStringSlice(answer any) ([]string, bool) {
	items, ok := answer.([]any)
	if !ok {
		return nil, false
	}

	values := make([]string, 0, len(items))
	for _, item := range items {
		str, ok := item.(string)
		if !ok {
			return nil, false
		}
		values = append(values, str)
	}

	return values, true
}
