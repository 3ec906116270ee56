package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"Formbase/internal/core/forms"
)

type postgresFormRepo struct {
	db *sql.DB
}

// NewFormRepository creates a new PostgreSQL form repository
func NewFormRepository(db *sql.DB) forms.Repository {
	return &postgresFormRepo{db: db}
}

// Create inserts a new form
func (r *postgresFormRepo) Create(ctx context.Context, form *forms.Form) (*forms.Form, error) {
	questions, err := json.Marshal(form.Questions)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal questions: %w", err)
	}

	query := `
		INSERT INTO forms (id, owner_id, title, airtable_base_id, airtable_table_id, questions)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at`

	err = r.db.QueryRowContext(
		ctx,
		query,
		form.ID,
		form.OwnerID,
		form.Title,
		form.AirtableBaseID,
		form.AirtableTableID,
		questions,
	).Scan(&form.CreatedAt, &form.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create form: %w", err)
	}

	return form, nil
}

// GetByID retrieves a form by id
func (r *postgresFormRepo) GetByID(ctx context.Context, formID string) (*forms.Form, error) {
	query := `
		SELECT id, owner_id, title, airtable_base_id, airtable_table_id,
		       questions, created_at, updated_at
		FROM forms
		WHERE id = $1`

	form := &forms.Form{}
	var questions []byte

	err := r.db.QueryRowContext(ctx, query, formID).Scan(
		&form.ID,
		&form.OwnerID,
		&form.Title,
		&form.AirtableBaseID,
		&form.AirtableTableID,
		&questions,
		&form.CreatedAt,
		&form.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, forms.ErrFormNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get form: %w", err)
	}

	if err := json.Unmarshal(questions, &form.Questions); err != nil {
		return nil, fmt.Errorf("failed to unmarshal questions: %w", err)
	}

	return form, nil
}

// ListByOwner lists the forms owned by an account, newest first
func (r *postgresFormRepo) ListByOwner(ctx context.Context, ownerID string) ([]*forms.FormSummary, error) {
	query := `
		SELECT id, title, airtable_base_id, airtable_table_id, created_at, updated_at
		FROM forms
		WHERE owner_id = $1
		ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list forms: %w", err)
	}
	defer rows.Close()

	var summaries []*forms.FormSummary
	for rows.Next() {
		summary := &forms.FormSummary{}
		if err := rows.Scan(
			&summary.ID,
			&summary.Title,
			&summary.AirtableBaseID,
			&summary.AirtableTableID,
			&summary.CreatedAt,
			&summary.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan form summary: %w", err)
		}
		summaries = append(summaries, summary)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate forms: %w", err)
	}

	return summaries, nil
}

// Delete removes a form
func (r *postgresFormRepo) Delete(ctx context.Context, formID string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM forms WHERE id = $1`, formID)
	if err != nil {
		return fmt.Errorf("failed to delete form: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rows == 0 {
		return forms.ErrFormNotFound
	}

	return nil
}
