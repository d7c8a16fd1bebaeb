package repository

import "context"

// TokenRepository defines persistence operations for auth tokens. The table
// is keyed by user, so Replace enforces at most one live token per user.
type TokenRepository interface {
	Init(ctx context.Context) error
	Replace(ctx context.Context, userID int64, token string) error
	FindUser(ctx context.Context, token string) (int64, error)
	Delete(ctx context.Context, token string) error
}
