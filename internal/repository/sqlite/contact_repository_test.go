package sqlite

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"contact-book/internal/domain"
	"contact-book/internal/repository"
)

func createTestContact(t *testing.T, repo repository.ContactRepository, userID int64, name, phone string) int64 {
	t.Helper()
	id, err := repo.Create(context.Background(), &domain.Contact{
		UserID: userID,
		Name:   name,
		Phone:  phone,
	})
	require.NoError(t, err)
	return id
}

func TestContactRepositoryOwnerScoping(t *testing.T) {
	db := newTestDB(t)
	users := NewUserRepository(db)
	repo := NewContactRepository(db)
	ctx := context.Background()

	alice := createTestUser(t, users, "alice")
	bob := createTestUser(t, users, "bob")

	contactID := createTestContact(t, repo, alice, "Carol", "555-0100")

	listed, err := repo.List(ctx, bob, "")
	require.NoError(t, err)
	assert.Empty(t, listed)

	_, err = repo.Get(ctx, bob, contactID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	err = repo.Update(ctx, &domain.Contact{ID: contactID, UserID: bob, Name: "X", Phone: "555-0199"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	err = repo.Delete(ctx, bob, contactID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// the owner still sees the row untouched
	got, err := repo.Get(ctx, alice, contactID)
	require.NoError(t, err)
	assert.Equal(t, "Carol", got.Name)
}

func TestContactRepositoryPhoneUniquePerOwner(t *testing.T) {
	db := newTestDB(t)
	users := NewUserRepository(db)
	repo := NewContactRepository(db)
	ctx := context.Background()

	alice := createTestUser(t, users, "alice")
	bob := createTestUser(t, users, "bob")

	createTestContact(t, repo, alice, "Carol", "555-0100")

	_, err := repo.Create(ctx, &domain.Contact{UserID: alice, Name: "Dave", Phone: "555-0100"})
	assert.ErrorIs(t, err, domain.ErrDuplicatePhone)

	// the same phone under a different owner is fine
	_, err = repo.Create(ctx, &domain.Contact{UserID: bob, Name: "Dave", Phone: "555-0100"})
	assert.NoError(t, err)
}

func TestContactRepositoryUpdatePhoneConflict(t *testing.T) {
	db := newTestDB(t)
	users := NewUserRepository(db)
	repo := NewContactRepository(db)
	ctx := context.Background()

	alice := createTestUser(t, users, "alice")

	createTestContact(t, repo, alice, "Carol", "555-0100")
	daveID := createTestContact(t, repo, alice, "Dave", "555-0200")

	err := repo.Update(ctx, &domain.Contact{ID: daveID, UserID: alice, Name: "Dave", Phone: "555-0100"})
	assert.ErrorIs(t, err, domain.ErrDuplicatePhone)

	// keeping its own phone is not a conflict
	err = repo.Update(ctx, &domain.Contact{ID: daveID, UserID: alice, Name: "David", Phone: "555-0200"})
	require.NoError(t, err)

	got, err := repo.Get(ctx, alice, daveID)
	require.NoError(t, err)
	assert.Equal(t, "David", got.Name)
}

func TestContactRepositoryListNewestFirst(t *testing.T) {
	db := newTestDB(t)
	users := NewUserRepository(db)
	repo := NewContactRepository(db)
	ctx := context.Background()

	alice := createTestUser(t, users, "alice")
	for i := 1; i <= 3; i++ {
		createTestContact(t, repo, alice, fmt.Sprintf("Contact %d", i), fmt.Sprintf("555-010%d", i))
	}

	listed, err := repo.List(ctx, alice, "")
	require.NoError(t, err)
	require.Len(t, listed, 3)
	assert.Equal(t, "Contact 3", listed[0].Name)
	assert.Equal(t, "Contact 2", listed[1].Name)
	assert.Equal(t, "Contact 1", listed[2].Name)
}

func TestContactRepositorySearch(t *testing.T) {
	db := newTestDB(t)
	users := NewUserRepository(db)
	repo := NewContactRepository(db)
	ctx := context.Background()

	alice := createTestUser(t, users, "alice")

	_, err := repo.Create(ctx, &domain.Contact{UserID: alice, Name: "Carol Smith", Phone: "555-0100", Email: "carol@example.com"})
	require.NoError(t, err)
	_, err = repo.Create(ctx, &domain.Contact{UserID: alice, Name: "Dave Jones", Phone: "777-0200", Address: "12 Oak Street"})
	require.NoError(t, err)

	byName, err := repo.List(ctx, alice, "Smith")
	require.NoError(t, err)
	require.Len(t, byName, 1)
	assert.Equal(t, "Carol Smith", byName[0].Name)

	byPhone, err := repo.List(ctx, alice, "777")
	require.NoError(t, err)
	require.Len(t, byPhone, 1)
	assert.Equal(t, "Dave Jones", byPhone[0].Name)

	byEmail, err := repo.List(ctx, alice, "example.com")
	require.NoError(t, err)
	assert.Len(t, byEmail, 1)

	byAddress, err := repo.List(ctx, alice, "Oak")
	require.NoError(t, err)
	assert.Len(t, byAddress, 1)

	none, err := repo.List(ctx, alice, "nowhere")
	require.NoError(t, err)
	assert.Empty(t, none)

	// LIKE metacharacters in the term are literals, not wildcards
	wild, err := repo.List(ctx, alice, "%")
	require.NoError(t, err)
	assert.Empty(t, wild)
}

func TestContactRepositorySuggestNames(t *testing.T) {
	db := newTestDB(t)
	users := NewUserRepository(db)
	repo := NewContactRepository(db)
	ctx := context.Background()

	alice := createTestUser(t, users, "alice")
	bob := createTestUser(t, users, "bob")

	for i := 0; i < 7; i++ {
		createTestContact(t, repo, alice, fmt.Sprintf("Anna %d", i), fmt.Sprintf("555-02%02d", i))
	}
	createTestContact(t, repo, bob, "Anna Foreign", "555-0300")

	names, err := repo.SuggestNames(ctx, alice, "Anna", 5)
	require.NoError(t, err)
	assert.Len(t, names, 5)
	assert.NotContains(t, names, "Anna Foreign")
}

func TestContactRepositoryOptionalFieldsDefaultEmpty(t *testing.T) {
	db := newTestDB(t)
	users := NewUserRepository(db)
	repo := NewContactRepository(db)
	ctx := context.Background()

	alice := createTestUser(t, users, "alice")
	id := createTestContact(t, repo, alice, "Carol", "555-0100")

	got, err := repo.Get(ctx, alice, id)
	require.NoError(t, err)
	assert.Equal(t, "", got.Email)
	assert.Equal(t, "", got.Address)
}
