package forms

import (
	"time"
)

// Question types supported by the form builder. The set is closed: anything
// else is rejected at creation time.
const (
	TypeShortText    = "shortText"
	TypeLongText     = "longText"
	TypeSingleSelect = "singleSelect"
	TypeMultiSelect  = "multiSelect"
	TypeAttachment   = "attachment"
)

// ValidQuestionType reports membership in the closed question type set.
func ValidQuestionType(t string) bool {
	switch t {
	case TypeShortText, TypeLongText, TypeSingleSelect, TypeMultiSelect, TypeAttachment:
		return true
	}
	return false
}

// Question maps one form input to one Airtable field.
type Question struct {
	QuestionKey     string   `json:"questionKey"`
	AirtableFieldID string   `json:"airtableFieldId"`
	Label           string   `json:"label"`
	Type            string   `json:"type"`
	Required        bool     `json:"required"`
	Options         []string `json:"options,omitempty"`
}

// Form is a delegated resource: visitors submit against it, but every write
// it triggers runs under the owning account's credential. Ownership is
// immutable after creation.
type Form struct {
	CreatedAt       time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time  `json:"updatedAt" db:"updated_at"`
	ID              string     `json:"id" db:"id"`
	OwnerID         string     `json:"ownerId" db:"owner_id"`
	Title           string     `json:"title" db:"title"`
	AirtableBaseID  string     `json:"airtableBaseId" db:"airtable_base_id"`
	AirtableTableID string     `json:"airtableTableId" db:"airtable_table_id"`
	Questions       []Question `json:"questions" db:"questions"`
}

// CreateFormRequest is the input for creating a new form.
type CreateFormRequest struct {
	OwnerID         string     `json:"-"`
	Title           string     `json:"title"`
	AirtableBaseID  string     `json:"airtableBaseId"`
	AirtableTableID string     `json:"airtableTableId"`
	Questions       []Question `json:"questions"`
}

// FormSummary is the dashboard listing projection of a form.
type FormSummary struct {
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	AirtableBaseID  string    `json:"airtableBaseId"`
	AirtableTableID string    `json:"airtableTableId"`
}
