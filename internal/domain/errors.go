package domain

import "errors"

var (
	ErrPoolNotFound      = errors.New("pool not found")
	ErrInvalidBounds     = errors.New("invalid scaling bounds")
	ErrSecretNotFound    = errors.New("secret not found")
	ErrMissingCredential = errors.New("missing credential")
)
