package domain

import "errors"

var (
	// ErrNotFound indicates the requested entity does not exist or is not
	// owned by the caller. The two cases are deliberately indistinguishable.
	ErrNotFound = errors.New("not found")
	// ErrDuplicateUsername is returned when registering an already taken username.
	ErrDuplicateUsername = errors.New("username already exists")
	// ErrDuplicatePhone is returned when a contact owned by the same user
	// already uses the phone number.
	ErrDuplicatePhone = errors.New("phone number already exists")
	// ErrInvalidCredentials indicates a failed login. It covers both unknown
	// usernames and wrong passwords so usernames cannot be enumerated.
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrUnauthenticated indicates a missing, malformed, or revoked token.
	ErrUnauthenticated = errors.New("unauthenticated")
)

// ValidationError reports a missing or malformed input field.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError builds a ValidationError with the given message.
func NewValidationError(message string) error {
	return &ValidationError{Message: message}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
