package errors

import (
	"errors"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailAlreadyInUse  = errors.New("email already in use")
	ErrPasswordMismatch   = errors.New("passwords do not match")
	ErrInvalidToken       = errors.New("invalid token")
	ErrMissingEmailClaim  = errors.New("email claim missing from identity provider")
	ErrPlayerNotFound     = errors.New("player not found")
	ErrProviderAuth       = errors.New("external provider authentication failed")
)
