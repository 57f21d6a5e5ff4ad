package apperr

import "errors"

// Sentinel errors shared across the service, store, and token layers.
// Handlers translate these into HTTP status codes at the request boundary.
var (
	// ErrEmailTaken is returned when registration hits an already registered email.
	ErrEmailTaken = errors.New("email already registered")

	// ErrInvalidCredentials covers both an unknown email and a wrong password,
	// so a caller cannot tell which field was wrong.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrUserNotFound is returned by lookups that find no matching user.
	ErrUserNotFound = errors.New("user not found")

	// ErrItemNotFound is returned by lookups that find no matching item.
	ErrItemNotFound = errors.New("item not found")

	// ErrTokenInvalid means the token signature or signing method is wrong.
	ErrTokenInvalid = errors.New("invalid token")

	// ErrTokenExpired means the signature checked out but the token is past its expiry.
	ErrTokenExpired = errors.New("token has expired")

	// ErrTokenMalformed means the token could not be parsed at all.
	ErrTokenMalformed = errors.New("malformed token")
)

// ValidationError reports missing or malformed request input.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// NewValidation creates a ValidationError with the given message.
func NewValidation(message string) *ValidationError {
	return &ValidationError{Message: message}
}
