package domain

import "time"

// AuthToken binds an opaque token string to a user. Each user holds at most
// one live token; issuing a new one replaces the previous row.
type AuthToken struct {
	UserID    int64
	Token     string
	CreatedAt time.Time
}
