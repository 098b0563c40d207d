package service

import (
	"errors"
	"fmt"
)

// Error kinds returned by the services. Match with errors.Is.
var (
	ErrDuplicateEmail      = errors.New("email already registered")
	ErrWeakCredential      = errors.New("password does not meet policy")
	ErrInvalidRegistration = errors.New("invalid registration details")
	// ErrInvalidCredentials covers unknown email, deleted account and wrong
	// password alike.
	ErrInvalidCredentials = errors.New("incorrect email or password")
	ErrInvalidAmount      = errors.New("amount must be greater than zero")
	ErrInvalidCategory    = errors.New("category not valid for transaction kind")
	ErrInvalidDescription = errors.New("description too long")
	// ErrNotFound covers missing, deleted and foreign records alike.
	ErrNotFound    = errors.New("not found")
	ErrUnavailable = errors.New("storage unavailable")
)

func unavailable(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrUnavailable, op, err)
}
