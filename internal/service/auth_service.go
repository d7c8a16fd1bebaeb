package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"contact-book/internal/domain"
	"contact-book/internal/repository"
)

const (
	minUsernameLen = 3
	minPasswordLen = 6
	// tokenBytes is the entropy of an issued token before hex encoding.
	tokenBytes = 32
)

// AuthService describes account lifecycle and token resolution operations.
type AuthService interface {
	Register(ctx context.Context, username, password string) (*domain.User, error)
	Login(ctx context.Context, username, password string) (string, *domain.User, error)
	Logout(ctx context.Context, token string) error
	ResolveIdentity(ctx context.Context, token string) (int64, error)
}

type authService struct {
	users  repository.UserRepository
	tokens repository.TokenRepository
}

func NewAuthService(users repository.UserRepository, tokens repository.TokenRepository) AuthService {
	return &authService{
		users:  users,
		tokens: tokens,
	}
}

// Register validates the credentials, hashes the password, and persists the
// new user. The returned user carries no password hash.
func (s *authService) Register(ctx context.Context, username, password string) (*domain.User, error) {
	username = strings.TrimSpace(username)

	if username == "" {
		return nil, domain.NewValidationError("username is required")
	}
	if len(username) < minUsernameLen {
		return nil, domain.NewValidationError(fmt.Sprintf("username must be at least %d characters", minUsernameLen))
	}
	if password == "" {
		return nil, domain.NewValidationError("password is required")
	}
	if len(password) < minPasswordLen {
		return nil, domain.NewValidationError(fmt.Sprintf("password must be at least %d characters", minPasswordLen))
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		Username:     username,
		PasswordHash: string(hash),
	}

	if _, err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	return sanitizeUser(user), nil
}

// Login verifies the credentials and issues a fresh token, replacing any
// token the user already held. Unknown usernames and wrong passwords produce
// the same error so accounts cannot be enumerated.
func (s *authService) Login(ctx context.Context, username, password string) (string, *domain.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := generateToken()
	if err != nil {
		return "", nil, err
	}
	if err := s.tokens.Replace(ctx, user.ID, token); err != nil {
		return "", nil, err
	}

	return token, sanitizeUser(user), nil
}

// Logout revokes the token. Revoking an unknown token is not an error.
func (s *authService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.tokens.Delete(ctx, token)
}

// ResolveIdentity maps a presented token to the owning user id.
func (s *authService) ResolveIdentity(ctx context.Context, token string) (int64, error) {
	if token == "" {
		return 0, domain.ErrUnauthenticated
	}
	userID, err := s.tokens.FindUser(ctx, token)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return 0, domain.ErrUnauthenticated
		}
		return 0, err
	}
	return userID, nil
}

func generateToken() (string, error) {
	buf := make([]byte, tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

func sanitizeUser(user *domain.User) *domain.User {
	if user == nil {
		return nil
	}
	return &domain.User{
		ID:        user.ID,
		Username:  user.Username,
		CreatedAt: user.CreatedAt,
	}
}
