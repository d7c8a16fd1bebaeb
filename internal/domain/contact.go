package domain

import "time"

// Contact is a single address-book entry owned by exactly one user. Email and
// address are optional and stored as empty strings rather than NULLs.
type Contact struct {
	ID        int64
	UserID    int64
	Name      string
	Phone     string
	Email     string
	Address   string
	CreatedAt time.Time
}
