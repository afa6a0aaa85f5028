package apperr

import (
	"errors"
	"fmt"
	"time"
)

type ValidationError struct {
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func NewValidation(msg string) *ValidationError {
	return &ValidationError{Message: msg}
}

func NewValidationWrap(msg string, err error) *ValidationError {
	return &ValidationError{Message: msg, Err: err}
}

// BudgetError signals that a provider call was refused before any network
// I/O because a rate or cost ceiling would be exceeded. Callers should skip
// rather than retry.
type BudgetError struct {
	Provider string
	Window   time.Duration
	Limit    float64
	Current  float64
}

func (e *BudgetError) Error() string {
	return fmt.Sprintf("budget exceeded for %s: %.0f/%.0f in %s", e.Provider, e.Current, e.Limit, e.Window)
}

func NewBudget(provider string, window time.Duration, limit, current float64) *BudgetError {
	return &BudgetError{Provider: provider, Window: window, Limit: limit, Current: current}
}

// IsBudget reports whether err is (or wraps) a BudgetError.
func IsBudget(err error) bool {
	var be *BudgetError
	return errors.As(err, &be)
}

// ProviderError wraps a failure from an external content provider. Such
// failures are recovered per-query: the failing query is skipped and the
// fan-out continues.
type ProviderError struct {
	Provider string
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider %s: %v", e.Provider, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

func NewProvider(provider string, err error) *ProviderError {
	return &ProviderError{Provider: provider, Err: err}
}

// CollaboratorError wraps a failure from the generative-model collaborator.
// It is always recovered locally by falling back to deterministic
// generation and is never surfaced to the caller.
type CollaboratorError struct {
	Err error
}

func (e *CollaboratorError) Error() string {
	return "collaborator: " + e.Err.Error()
}

func (e *CollaboratorError) Unwrap() error {
	return e.Err
}

func NewCollaborator(err error) *CollaboratorError {
	return &CollaboratorError{Err: err}
}
