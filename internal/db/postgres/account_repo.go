package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"Formbase/internal/core/accounts"
)

type postgresAccountRepo struct {
	db *sql.DB
}

// NewAccountRepository creates a new PostgreSQL account repository
func NewAccountRepository(db *sql.DB) accounts.Repository {
	return &postgresAccountRepo{db: db}
}

// GetByID retrieves an account by its local id
func (r *postgresAccountRepo) GetByID(ctx context.Context, id string) (*accounts.Account, error) {
	query := `
		SELECT id, airtable_user_id, email, access_token, refresh_token,
		       token_expires_at, profile, last_login_at, created_at, updated_at
		FROM accounts
		WHERE id = $1`

	return r.scanAccount(r.db.QueryRowContext(ctx, query, id))
}

// GetByAirtableUserID retrieves an account by external identity id
func (r *postgresAccountRepo) GetByAirtableUserID(ctx context.Context, airtableUserID string) (*accounts.Account, error) {
	query := `
		SELECT id, airtable_user_id, email, access_token, refresh_token,
		       token_expires_at, profile, last_login_at, created_at, updated_at
		FROM accounts
		WHERE airtable_user_id = $1`

	return r.scanAccount(r.db.QueryRowContext(ctx, query, airtableUserID))
}

// Upsert inserts or replaces the account keyed by external identity id.
// The last successful handshake always wins.
func (r *postgresAccountRepo) Upsert(ctx context.Context, account *accounts.Account) (*accounts.Account, error) {
	profile, err := json.Marshal(account.Profile)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal profile: %w", err)
	}

	query := `
		INSERT INTO accounts (
			id, airtable_user_id, email, access_token, refresh_token,
			token_expires_at, profile, last_login_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (airtable_user_id) DO UPDATE SET
			email = EXCLUDED.email,
			access_token = EXCLUDED.access_token,
			refresh_token = EXCLUDED.refresh_token,
			token_expires_at = EXCLUDED.token_expires_at,
			profile = EXCLUDED.profile,
			last_login_at = EXCLUDED.last_login_at,
			updated_at = CURRENT_TIMESTAMP
		RETURNING id, airtable_user_id, email, access_token, refresh_token,
		          token_expires_at, profile, last_login_at, created_at, updated_at`

	var expiresAt sql.NullTime
	if !account.TokenExpiresAt.IsZero() {
		expiresAt = sql.NullTime{Time: account.TokenExpiresAt, Valid: true}
	}

	return r.scanAccount(r.db.QueryRowContext(
		ctx,
		query,
		account.ID,
		account.AirtableUserID,
		account.Email,
		account.AccessToken,
		account.RefreshToken,
		expiresAt,
		profile,
		account.LastLoginAt,
	))
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *postgresAccountRepo) scanAccount(row rowScanner) (*accounts.Account, error) {
	account := &accounts.Account{}
	var refreshToken sql.NullString
	var expiresAt, lastLoginAt sql.NullTime
	var profile []byte

	err := row.Scan(
		&account.ID,
		&account.AirtableUserID,
		&account.Email,
		&account.AccessToken,
		&refreshToken,
		&expiresAt,
		&profile,
		&lastLoginAt,
		&account.CreatedAt,
		&account.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, accounts.ErrAccountNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan account: %w", err)
	}

	account.RefreshToken = refreshToken.String
	if expiresAt.Valid {
		account.TokenExpiresAt = expiresAt.Time
	}
	if lastLoginAt.Valid {
		account.LastLoginAt = lastLoginAt.Time
	} else {
		account.LastLoginAt = time.Time{}
	}

	if len(profile) > 0 {
		if err := json.Unmarshal(profile, &account.Profile); err != nil {
			return nil, fmt.Errorf("failed to unmarshal profile: %w", err)
		}
	}

	return account, nil
}
