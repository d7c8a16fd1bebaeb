package sqlite

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"contact-book/internal/domain"
	"contact-book/internal/repository"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	ctx := context.Background()
	require.NoError(t, NewUserRepository(db).Init(ctx))
	require.NoError(t, NewTokenRepository(db).Init(ctx))
	require.NoError(t, NewContactRepository(db).Init(ctx))
	return db
}

func createTestUser(t *testing.T, users repository.UserRepository, username string) int64 {
	t.Helper()
	id, err := users.Create(context.Background(), &domain.User{
		Username:     username,
		PasswordHash: "x",
	})
	require.NoError(t, err)
	return id
}
