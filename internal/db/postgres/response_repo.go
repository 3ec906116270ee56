package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"

	"Formbase/internal/core/responses"
)

type postgresResponseRepo struct {
	db *sql.DB
}

// NewResponseRepository creates a new PostgreSQL response repository
func NewResponseRepository(db *sql.DB) responses.Repository {
	return &postgresResponseRepo{db: db}
}

// Create inserts a new response row
func (r *postgresResponseRepo) Create(ctx context.Context, response *responses.Response) (*responses.Response, error) {
	answers, err := json.Marshal(response.Answers)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal answers: %w", err)
	}

	query := `
		INSERT INTO responses (id, form_id, airtable_record_id, answers, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at`

	err = r.db.QueryRowContext(
		ctx,
		query,
		response.ID,
		response.FormID,
		response.AirtableRecordID,
		answers,
		response.Status,
	).Scan(&response.CreatedAt, &response.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create response: %w", err)
	}

	return response, nil
}

// GetByID retrieves a response by local id
func (r *postgresResponseRepo) GetByID(ctx context.Context, id string) (*responses.Response, error) {
	query := `
		SELECT id, form_id, airtable_record_id, answers, status, created_at, updated_at
		FROM responses
		WHERE id = $1`

	return r.scanResponse(r.db.QueryRowContext(ctx, query, id))
}

// GetByAirtableRecordID retrieves a response by its reconciliation join key
func (r *postgresResponseRepo) GetByAirtableRecordID(ctx context.Context, recordID string) (*responses.Response, error) {
	query := `
		SELECT id, form_id, airtable_record_id, answers, status, created_at, updated_at
		FROM responses
		WHERE airtable_record_id = $1`

	return r.scanResponse(r.db.QueryRowContext(ctx, query, recordID))
}

// ListByForm lists responses for a form, newest first
func (r *postgresResponseRepo) ListByForm(ctx context.Context, formID string) ([]*responses.Response, error) {
	query := `
		SELECT id, form_id, airtable_record_id, answers, status, created_at, updated_at
		FROM responses
		WHERE form_id = $1
		ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, formID)
	if err != nil {
		return nil, fmt.Errorf("failed to list responses: %w", err)
	}
	defer rows.Close()

	var out []*responses.Response
	for rows.Next() {
		response, err := r.scanResponse(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, response)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate responses: %w", err)
	}

	return out, nil
}

// UpdateStatus sets the lifecycle status of a response. Setting the same
// status twice is a no-op, which keeps reconciliation idempotent.
func (r *postgresResponseRepo) UpdateStatus(ctx context.Context, id, status string) error {
	query := `
		UPDATE responses SET
			status = $2,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id, status)
	if err != nil {
		return fmt.Errorf("failed to update response status: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rows == 0 {
		return responses.ErrResponseNotFound
	}

	slog.Debug("response status updated", "id", id, "status", status)
	return nil
}

func (r *postgresResponseRepo) scanResponse(row rowScanner) (*responses.Response, error) {
	response := &responses.Response{}
	var answers []byte

	err := row.Scan(
		&response.ID,
		&response.FormID,
		&response.AirtableRecordID,
		&answers,
		&response.Status,
		&response.CreatedAt,
		&response.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, responses.ErrResponseNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan response: %w", err)
	}

	if len(answers) > 0 {
		if err := json.Unmarshal(answers, &response.Answers); err != nil {
			return nil, fmt.Errorf("failed to unmarshal answers: %w", err)
		}
	}

	return response, nil
}
