package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Validation errors
	ErrValidation          = errors.New("validation failed")
	ErrInvalidProfileSize  = fmt.Errorf("%w: profile size must be positive", ErrValidation)
	ErrInvalidWindow       = fmt.Errorf("%w: window exceeds profile bounds", ErrValidation)
	ErrInvalidSign         = fmt.Errorf("%w: signature entries must be +1 or -1", ErrValidation)
	ErrSignatureTooShort   = fmt.Errorf("%w: signature does not cover window", ErrValidation)
	ErrEmptyPopulation     = fmt.Errorf("%w: random population is empty", ErrValidation)
	ErrInvalidPopulation   = fmt.Errorf("%w: population parameters must be positive", ErrValidation)
	ErrInvalidWindowLength = fmt.Errorf("%w: window length outside profile range", ErrValidation)

	// Determinism errors
	ErrNonDeterministic = errors.New("non-deterministic result")
	ErrSeedMismatch     = errors.New("seed mismatch")
	ErrHashMismatch     = errors.New("hash mismatch")
)

// Error constructors with context
func NewValidationError(field string, reason string) error {
	return fmt.Errorf("%w for %s: %s", ErrValidation, field, reason)
}

func NewWindowError(length, offset, profileSize int) error {
	return fmt.Errorf("%w: length=%d offset=%d size=%d", ErrInvalidWindow, length, offset, profileSize)
}

// Error checking helpers
func IsValidationError(err error) bool {
	return errors.Is(err, ErrValidation)
}

func IsDeterminismError(err error) bool {
	return errors.Is(err, ErrNonDeterministic) ||
		errors.Is(err, ErrSeedMismatch) ||
		errors.Is(err, ErrHashMismatch)
}
