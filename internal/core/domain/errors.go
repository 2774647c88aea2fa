package domain

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidKey         = errors.New("invalid key")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
	ErrRoleNotFound       = errors.New("role not found")
	ErrNotFound           = errors.New("not found")
	ErrUnknownKind        = errors.New("invalid entity")
	ErrInvalidParams      = errors.New("invalid parameters")
	ErrNoPermissions      = errors.New("permission list is empty")
)

// Code generation errors.
var (
	ErrInvalidName   = errors.New("name must be at least two characters long")
	ErrCodeExhausted = errors.New("voting code space exhausted")
)
