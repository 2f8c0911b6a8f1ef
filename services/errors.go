package services

import "errors"

// Domain failures raised at the service boundary. Handlers translate them
// 1:1 into HTTP responses; anything else is an internal error.
var (
	ErrNotFound           = errors.New("not found")
	ErrInvalidInput       = errors.New("invalid input")
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
)
