package forms

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

type formService struct {
	repo Repository
}

// NewService creates a new form service
func NewService(repo Repository) Service {
	return &formService{repo: repo}
}

// CreateForm validates and stores a new form
func (s *formService) CreateForm(ctx context.Context, req CreateFormRequest) (*Form, error) {
	if strings.TrimSpace(req.OwnerID) == "" {
		return nil, NewValidationError("owner", "owner is required")
	}
	if strings.TrimSpace(req.AirtableBaseID) == "" {
		return nil, NewValidationError("airtableBaseId", "base id is required")
	}
	if strings.TrimSpace(req.AirtableTableID) == "" {
		return nil, NewValidationError("airtableTableId", "table id is required")
	}
	if len(req.Questions) == 0 {
		return nil, NewValidationError("questions", "at least one question is required")
	}

	seen := make(map[string]bool, len(req.Questions))
	for i, q := range req.Questions {
		if err := validateQuestion(i, q); err != nil {
			return nil, err
		}
		if seen[q.QuestionKey] {
			return nil, NewValidationError("questions", "duplicate question key: "+q.QuestionKey)
		}
		seen[q.QuestionKey] = true
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		title = "Untitled Form"
	}

	form := &Form{
		ID:              uuid.NewString(),
		OwnerID:         req.OwnerID,
		Title:           title,
		AirtableBaseID:  req.AirtableBaseID,
		AirtableTableID: req.AirtableTableID,
		Questions:       req.Questions,
	}

	return s.repo.Create(ctx, form)
}

// GetForm retrieves a form by id
func (s *formService) GetForm(ctx context.Context, formID string) (*Form, error) {
	if strings.TrimSpace(formID) == "" {
		return nil, NewValidationError("formId", "form id is required")
	}
	return s.repo.GetByID(ctx, formID)
}

// ListForms lists forms owned by an account
func (s *formService) ListForms(ctx context.Context, ownerID string) ([]*FormSummary, error) {
	if strings.TrimSpace(ownerID) == "" {
		return nil, NewValidationError("owner", "owner is required")
	}
	return s.repo.ListByOwner(ctx, ownerID)
}

// DeleteForm deletes a form after an ownership check
func (s *formService) DeleteForm(ctx context.Context, formID, callerID string) error {
	form, err := s.repo.GetByID(ctx, formID)
	if err != nil {
		return err
	}

	if form.OwnerID != callerID {
		return ErrNotOwner
	}

	return s.repo.Delete(ctx, formID)
}

func validateQuestion(index int, q Question) error {
	field := fmt.Sprintf("questions[%d]", index)

	if strings.TrimSpace(q.QuestionKey) == "" {
		return NewValidationError(field, "questionKey is required")
	}
	if strings.TrimSpace(q.AirtableFieldID) == "" {
		return NewValidationError(field, "airtableFieldId is required")
	}
	if strings.TrimSpace(q.Label) == "" {
		return NewValidationError(field, "label is required")
	}
	if !ValidQuestionType(q.Type) {
		return NewValidationError(field, "invalid question type: "+q.Type)
	}
	if (q.Type == TypeSingleSelect || q.Type == TypeMultiSelect) && len(q.Options) == 0 {
		return NewValidationError(field, "select questions require options")
	}

	return nil
}

// IsNotFound checks if error is a form-not-found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrFormNotFound)
}
