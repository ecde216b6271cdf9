// Package common provides shared utilities and types used across the application.
package common

import (
	"errors"
	"fmt"
)

// Common application errors.
var (
	// Rule set errors.
	ErrInvalidConfig          = errors.New("invalid configuration")
	ErrDuplicateCategory      = errors.New("duplicate category")
	ErrMissingCatchAll        = errors.New("no catch-all category")
	ErrMultipleCatchAll       = errors.New("more than one catch-all category")
	ErrUnknownSavingsCategory = errors.New("savings category is not declared")

	// Input errors.
	ErrUnknownProfile = errors.New("unknown profile")
	ErrInvalidAmount  = errors.New("invalid amount")
	ErrUnknownFormat  = errors.New("unknown format")
)

// UserError represents an error that should be shown to the user.
type UserError struct {
	Err         error
	UserMessage string
}

func (e *UserError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.UserMessage, e.Err)
	}
	return e.UserMessage
}

func (e *UserError) Unwrap() error {
	return e.Err
}

// NewUserError creates a new user-friendly error.
func NewUserError(userMessage string, err error) error {
	return &UserError{
		UserMessage: userMessage,
		Err:         err,
	}
}
