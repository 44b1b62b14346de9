// Package errors provides structured error handling with typed error codes.
//
// Error codes are organized into categories:
//   - General errors (1-99): Unknown and general errors
//   - History errors (100-199): Missing, short, or unordered price history
//   - Indicator errors (200-299): Technical indicator calculation errors
//   - Catalog/strategy errors (300-399): Unknown strategies, catalog load failures
//   - Signal validation errors (400-499): Malformed or inconsistent signal codes
//   - Parameter errors (500-599): Out-of-range or unknown tunable parameters
//   - Run errors (600-699): Signal run lifecycle errors
//   - Store errors (700-799): Persistence failures
//   - Provider errors (800-899): Price-history provider failures
//
// Usage:
//
//	// Create a new error
//	err := errors.New(errors.ErrCodeUnknownStrategy, "strategy not in catalog")
//
//	// Create a formatted error
//	err := errors.Newf(errors.ErrCodeNoData, "no price history for symbol %s", symbol)
//
//	// Wrap an existing error
//	err := errors.Wrap(errors.ErrCodeQueryFailed, "failed to execute query", originalErr)
//
//	// Check error code
//	if errors.HasCode(err, errors.ErrCodeNoData) { ... }
package errors

import (
	"errors"
	"fmt"
)

// Error represents a structured error with an error code and message.
type Error struct {
	Code    ErrorCode
	Message string
	Cause   error
}

// New creates a new Error with the given code and message.
func New(code ErrorCode, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Cause:   nil,
	}
}

// Newf creates a new Error with the given code and formatted message.
func Newf(code ErrorCode, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   nil,
	}
}

// Wrap wraps an existing error with a new Error containing the given code and message.
func Wrap(code ErrorCode, message string, cause error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// Wrapf wraps an existing error with a new Error containing the given code and formatted message.
func Wrapf(code ErrorCode, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%d] %s: %v", e.Code, e.Message, e.Cause)
	}

	return fmt.Sprintf("[%d] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error cause.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether any error in err's chain matches target.
// This is a convenience wrapper around the standard errors.Is function.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
// This is a convenience wrapper around the standard errors.As function.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// GetCode extracts the ErrorCode from an error if it's an *Error type.
// Returns ErrCodeUnknown if the error is not an *Error type.
func GetCode(err error) ErrorCode {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}

	return ErrCodeUnknown
}

// HasCode checks if an error has a specific ErrorCode.
func HasCode(err error, code ErrorCode) bool {
	return GetCode(err) == code
}

// InsufficientHistoryError represents an error when a symbol's price history
// is shorter than the minimum required for a trustworthy indicator snapshot.
type InsufficientHistoryError struct {
	Required int    // Minimum bars required
	Actual   int    // Actual bars available
	Symbol   string // Symbol context
	Message  string // Human-readable message
}

// NewInsufficientHistoryError creates a new InsufficientHistoryError.
func NewInsufficientHistoryError(required, actual int, symbol, message string) *InsufficientHistoryError {
	return &InsufficientHistoryError{
		Required: required,
		Actual:   actual,
		Symbol:   symbol,
		Message:  message,
	}
}

// NewInsufficientHistoryErrorf creates a new InsufficientHistoryError with a formatted message.
func NewInsufficientHistoryErrorf(required, actual int, symbol, format string, args ...any) *InsufficientHistoryError {
	return &InsufficientHistoryError{
		Required: required,
		Actual:   actual,
		Symbol:   symbol,
		Message:  fmt.Sprintf(format, args...),
	}
}

// Error implements the error interface.
func (e *InsufficientHistoryError) Error() string {
	return e.Message
}

// IsInsufficientHistoryError checks if an error is an InsufficientHistoryError.
// It uses errors.As to check the error chain.
func IsInsufficientHistoryError(err error) bool {
	var historyErr *InsufficientHistoryError

	return errors.As(err, &historyErr)
}
