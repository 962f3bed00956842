// Package errors provides custom error types for domain-specific errors.
package errors

import (
	"errors"
	"fmt"
)

// Standard sentinel errors
var (
	ErrNoRows           = errors.New("no rows to import")
	ErrNoTrades         = errors.New("no trades recorded")
	ErrTooFewTrades     = errors.New("not enough trades for analysis")
	ErrTradeNotFound    = errors.New("trade not found")
	ErrStoreUnavailable = errors.New("store unavailable")
	ErrInferenceFailed  = errors.New("inference failed")
	ErrConfigInvalid    = errors.New("invalid configuration")
)

// ImportError represents an error while importing raw rows.
type ImportError struct {
	File    string
	Message string
	Err     error
}

func (e *ImportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("import error [%s]: %s: %v", e.File, e.Message, e.Err)
	}
	return fmt.Sprintf("import error [%s]: %s", e.File, e.Message)
}

func (e *ImportError) Unwrap() error {
	return e.Err
}

// NewImportError creates a new ImportError.
func NewImportError(file, message string, err error) *ImportError {
	return &ImportError{
		File:    file,
		Message: message,
		Err:     err,
	}
}

// AnalysisError represents an error during metrics or series computation.
type AnalysisError struct {
	Stage   string
	Message string
	Err     error
}

func (e *AnalysisError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("analysis error [%s]: %s: %v", e.Stage, e.Message, e.Err)
	}
	return fmt.Sprintf("analysis error [%s]: %s", e.Stage, e.Message)
}

func (e *AnalysisError) Unwrap() error {
	return e.Err
}

// NewAnalysisError creates a new AnalysisError.
func NewAnalysisError(stage, message string, err error) *AnalysisError {
	return &AnalysisError{
		Stage:   stage,
		Message: message,
		Err:     err,
	}
}

// StoreError represents a persistence failure.
type StoreError struct {
	Operation string
	Key       string
	Err       error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store error [%s] %s: %v", e.Operation, e.Key, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// NewStoreError creates a new StoreError.
func NewStoreError(operation, key string, err error) *StoreError {
	return &StoreError{
		Operation: operation,
		Key:       key,
		Err:       err,
	}
}

// InferenceError represents a failure of the external model boundary.
type InferenceError struct {
	Task    string
	Message string
	Err     error
}

func (e *InferenceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("inference error [%s]: %s: %v", e.Task, e.Message, e.Err)
	}
	return fmt.Sprintf("inference error [%s]: %s", e.Task, e.Message)
}

func (e *InferenceError) Unwrap() error {
	return e.Err
}

// NewInferenceError creates a new InferenceError.
func NewInferenceError(task, message string, err error) *InferenceError {
	return &InferenceError{
		Task:    task,
		Message: message,
		Err:     err,
	}
}

// ValidationError represents a validation error on user input.
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s (%v): %s", e.Field, e.Value, e.Message)
}

// NewValidationError creates a new ValidationError.
func NewValidationError(field string, value interface{}, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Value:   value,
		Message: message,
	}
}

// Wrap wraps an error with additional context.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf wraps an error with formatted context.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
