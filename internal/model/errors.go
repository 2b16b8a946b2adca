package model

import "errors"

var (
	// ErrNotFound is returned by stores when no row matches.
	ErrNotFound = errors.New("not found")

	// ErrInvalidCredentials covers both unknown email and wrong password.
	// Callers must not be able to tell which one happened.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidToken covers bad signature, malformed structure, expiry,
	// wrong kind and revoked tokens.
	ErrInvalidToken = errors.New("invalid token")

	ErrUserNotFound          = errors.New("user not found")
	ErrSamePassword          = errors.New("new password matches the current one")
	ErrUserAlreadyExists     = errors.New("user already exists")
	ErrInactiveAccount       = errors.New("account is inactive")
	ErrInsufficientPrivilege = errors.New("insufficient privilege")
)
