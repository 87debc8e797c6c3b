package auth

import (
	"errors"

	"staffpay/internal/domain/apperr"
)

var (
	ErrUsernameRequired   = apperr.InvalidInput("username cannot be empty")
	ErrPasswordRequired   = apperr.InvalidInput("password cannot be empty")
	ErrUnknownRole        = apperr.InvalidInput("unknown role")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// NotFoundError is what repositories return for an unknown username.
func NotFoundError(username string) error {
	return apperr.NotFound("User", "username", username)
}
