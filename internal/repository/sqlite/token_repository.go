package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"contact-book/internal/domain"
	"contact-book/internal/repository"
)

const createTokensTable = `
CREATE TABLE IF NOT EXISTS auth_tokens (
	user_id INTEGER PRIMARY KEY REFERENCES users(id),
	token TEXT NOT NULL UNIQUE,
	created_at DATETIME NOT NULL
);
`

type TokenRepository struct {
	db *sql.DB
}

func NewTokenRepository(db *sql.DB) repository.TokenRepository {
	return &TokenRepository{db: db}
}

func (r *TokenRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createTokensTable); err != nil {
		return fmt.Errorf("create auth_tokens table: %w", err)
	}
	return nil
}

// Replace stores a fresh token for the user, overwriting any previous one.
// The table is keyed by user_id, so a user never holds two live tokens.
func (r *TokenRepository) Replace(ctx context.Context, userID int64, token string) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO auth_tokens (user_id, token, created_at)
VALUES (?, ?, ?)
ON CONFLICT(user_id) DO UPDATE SET token = excluded.token, created_at = excluded.created_at`,
		userID,
		token,
		time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("replace token: %w", err)
	}
	return nil
}

func (r *TokenRepository) FindUser(ctx context.Context, token string) (int64, error) {
	var userID int64
	err := r.db.QueryRowContext(ctx, `
SELECT user_id
FROM auth_tokens
WHERE token = ?`,
		token,
	).Scan(&userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, domain.ErrNotFound
		}
		return 0, fmt.Errorf("find token: %w", err)
	}
	return userID, nil
}

// Delete revokes a token. Deleting an unknown token is not an error.
func (r *TokenRepository) Delete(ctx context.Context, token string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM auth_tokens WHERE token = ?`, token); err != nil {
		return fmt.Errorf("delete token: %w", err)
	}
	return nil
}
