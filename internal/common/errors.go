package common

import "errors"

// Callers should match these with errors.Is; lower layers wrap them with context.
var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Service-level errors (generic/internal flow control).
	ErrorInternal   = errors.New("internal error")
	ErrorValidation = errors.New("validation error")

	// Authentication flow errors. Unknown user and wrong password both map to
	// ErrorAuthenticationFailed so callers cannot enumerate usernames.
	ErrorAuthenticationFailed = errors.New("authentication failed")
	ErrorRegistrationFailed   = errors.New("registration failed")
	ErrorLoginFailed          = errors.New("login failed")

	// Access-control errors.
	ErrorAccessDenied = errors.New("access denied")
	ErrInvalidToken   = errors.New("invalid token")
	ErrTokenExpired   = errors.New("token expired")
)
