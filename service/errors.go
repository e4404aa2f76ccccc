package service

import (
	"errors"
	"fmt"
)

// ErrValidation is the root of every input validation failure.
var ErrValidation = errors.New("validation failed")

// ErrNoAffordableTenure means no tenure in range keeps the installment under the cap.
var ErrNoAffordableTenure = fmt.Errorf("%w: no tenure in range fits the maximum installment", ErrValidation)

type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Field + " " + e.Reason
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

func invalid(field, reason string, args ...any) error {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(reason, args...)}
}
