package repository

import (
	"context"

	"contact-book/internal/domain"
)

// ContactRepository defines persistence operations for Contact entities.
// Every operation is scoped to the owning user.
type ContactRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, contact *domain.Contact) (int64, error)
	List(ctx context.Context, userID int64, search string) ([]domain.Contact, error)
	Get(ctx context.Context, userID, id int64) (*domain.Contact, error)
	Update(ctx context.Context, contact *domain.Contact) error
	Delete(ctx context.Context, userID, id int64) error
	SuggestNames(ctx context.Context, userID int64, partial string, limit int) ([]string, error)
	Count(ctx context.Context) (int64, error)
}
