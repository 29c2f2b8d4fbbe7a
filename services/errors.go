package services

import "errors"

var (
	ErrNotFound           = errors.New("not found")
	ErrInvalidInput       = errors.New("invalid input")
	ErrEmailTaken         = errors.New("user with this email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAlreadyOnboarded   = errors.New("user already onboarded")
	ErrNotOnboarded       = errors.New("user has not finished onboarding")
	ErrCatNotUnlocked     = errors.New("cat is not in the user's collection")
)

// invalid wraps a validation message so callers can match ErrInvalidInput.
func invalid(msg string) error {
	return &inputError{msg: msg}
}

type inputError struct{ msg string }

func (e *inputError) Error() string { return e.msg }

func (e *inputError) Unwrap() error { return ErrInvalidInput }
