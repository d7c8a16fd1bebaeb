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

const createContactsTable = `
CREATE TABLE IF NOT EXISTS contacts (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id INTEGER NOT NULL REFERENCES users(id),
	name TEXT NOT NULL,
	phone TEXT NOT NULL,
	email TEXT NOT NULL DEFAULT '',
	address TEXT NOT NULL DEFAULT '',
	created_at DATETIME NOT NULL,
	UNIQUE(user_id, phone)
);
`

type ContactRepository struct {
	db *sql.DB
}

func NewContactRepository(db *sql.DB) repository.ContactRepository {
	return &ContactRepository{db: db}
}

func (r *ContactRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createContactsTable); err != nil {
		return fmt.Errorf("create contacts table: %w", err)
	}
	return nil
}

// Create inserts a contact for its owner. Phone uniqueness is per owner and
// enforced by the UNIQUE(user_id, phone) constraint.
func (r *ContactRepository) Create(ctx context.Context, contact *domain.Contact) (int64, error) {
	contact.CreatedAt = time.Now().UTC()

	res, err := r.db.ExecContext(ctx, `
INSERT INTO contacts (user_id, name, phone, email, address, created_at)
VALUES (?, ?, ?, ?, ?, ?)`,
		contact.UserID,
		contact.Name,
		contact.Phone,
		contact.Email,
		contact.Address,
		contact.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, domain.ErrDuplicatePhone
		}
		return 0, fmt.Errorf("insert contact: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("contact last insert id: %w", err)
	}
	contact.ID = id
	return id, nil
}

// List returns the user's contacts newest first. A non-empty search term
// narrows the result to rows where any text column contains the term.
func (r *ContactRepository) List(ctx context.Context, userID int64, search string) ([]domain.Contact, error) {
	query := `
SELECT id, user_id, name, phone, email, address, created_at
FROM contacts
WHERE user_id = ?`
	args := []any{userID}

	if search != "" {
		query += `
AND (name LIKE ? ESCAPE '\' OR phone LIKE ? ESCAPE '\' OR email LIKE ? ESCAPE '\' OR address LIKE ? ESCAPE '\')`
		pattern := likePattern(search)
		args = append(args, pattern, pattern, pattern, pattern)
	}
	query += `
ORDER BY created_at DESC, id DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query contacts: %w", err)
	}
	defer rows.Close()

	contacts := []domain.Contact{}
	for rows.Next() {
		contact, err := scanContact(rows)
		if err != nil {
			return nil, err
		}
		contacts = append(contacts, *contact)
	}

	return contacts, rows.Err()
}

func (r *ContactRepository) Get(ctx context.Context, userID, id int64) (*domain.Contact, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, user_id, name, phone, email, address, created_at
FROM contacts
WHERE id = ? AND user_id = ?`,
		id,
		userID,
	)
	return scanContact(row)
}

// Update rewrites the mutable fields of a contact the user owns. A row owned
// by someone else is reported as ErrNotFound, same as an absent one.
func (r *ContactRepository) Update(ctx context.Context, contact *domain.Contact) error {
	res, err := r.db.ExecContext(ctx, `
UPDATE contacts
SET name = ?, phone = ?, email = ?, address = ?
WHERE id = ? AND user_id = ?`,
		contact.Name,
		contact.Phone,
		contact.Email,
		contact.Address,
		contact.ID,
		contact.UserID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicatePhone
		}
		return fmt.Errorf("update contact: %w", err)
	}

	aff, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("contact update rows affected: %w", err)
	}
	if aff == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ContactRepository) Delete(ctx context.Context, userID, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM contacts WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("delete contact: %w", err)
	}

	aff, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("contact delete rows affected: %w", err)
	}
	if aff == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SuggestNames returns up to limit distinct contact names of the user
// containing partial as a substring.
func (r *ContactRepository) SuggestNames(ctx context.Context, userID int64, partial string, limit int) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT DISTINCT name
FROM contacts
WHERE user_id = ? AND name LIKE ? ESCAPE '\'
LIMIT ?`,
		userID,
		likePattern(partial),
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query suggestions: %w", err)
	}
	defer rows.Close()

	names := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan suggestion: %w", err)
		}
		names = append(names, name)
	}

	return names, rows.Err()
}

func (r *ContactRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM contacts`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count contacts: %w", err)
	}
	return count, nil
}

func scanContact(scanner interface {
	Scan(dest ...any) error
}) (*domain.Contact, error) {
	var contact domain.Contact
	if err := scanner.Scan(
		&contact.ID,
		&contact.UserID,
		&contact.Name,
		&contact.Phone,
		&contact.Email,
		&contact.Address,
		&contact.CreatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scan contact: %w", err)
	}
	return &contact, nil
}
