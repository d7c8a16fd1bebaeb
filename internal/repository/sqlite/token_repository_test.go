package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"contact-book/internal/domain"
)

func TestTokenRepositoryReplaceAndFind(t *testing.T) {
	db := newTestDB(t)
	users := NewUserRepository(db)
	repo := NewTokenRepository(db)
	ctx := context.Background()

	userID := createTestUser(t, users, "alice")

	require.NoError(t, repo.Replace(ctx, userID, "token-1"))

	found, err := repo.FindUser(ctx, "token-1")
	require.NoError(t, err)
	assert.Equal(t, userID, found)
}

func TestTokenRepositoryReplaceInvalidatesPrevious(t *testing.T) {
	db := newTestDB(t)
	users := NewUserRepository(db)
	repo := NewTokenRepository(db)
	ctx := context.Background()

	userID := createTestUser(t, users, "alice")

	require.NoError(t, repo.Replace(ctx, userID, "token-1"))
	require.NoError(t, repo.Replace(ctx, userID, "token-2"))

	_, err := repo.FindUser(ctx, "token-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	found, err := repo.FindUser(ctx, "token-2")
	require.NoError(t, err)
	assert.Equal(t, userID, found)
}

func TestTokenRepositoryDeleteIdempotent(t *testing.T) {
	db := newTestDB(t)
	users := NewUserRepository(db)
	repo := NewTokenRepository(db)
	ctx := context.Background()

	userID := createTestUser(t, users, "alice")
	require.NoError(t, repo.Replace(ctx, userID, "token-1"))

	require.NoError(t, repo.Delete(ctx, "token-1"))
	require.NoError(t, repo.Delete(ctx, "token-1"))
	require.NoError(t, repo.Delete(ctx, "never-issued"))

	_, err := repo.FindUser(ctx, "token-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
