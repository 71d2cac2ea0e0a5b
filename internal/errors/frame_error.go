// Package errors provides standardized error types for Frame and Series
// operations. It defines FrameError for consistent error handling across
// all public APIs, with operation context and error wrapping support.
package errors

import (
	"fmt"
)

// FrameError represents standardized errors across all Frame operations
type FrameError struct {
	Op      string // Operation name (e.g., "Sort", "Include", "LeftJoin")
	Column  string // Column name if applicable
	Message string // Human-readable error description
	Cause   error  // Underlying error cause
}

// Error implements the error interface
func (e *FrameError) Error() string {
	if e.Column != "" {
		return fmt.Sprintf("%s operation failed on column '%s': %s", e.Op, e.Column, e.Message)
	}
	return fmt.Sprintf("%s operation failed: %s", e.Op, e.Message)
}

// Unwrap returns the underlying cause for error wrapping support
func (e *FrameError) Unwrap() error {
	return e.Cause
}

// Is implements error equality checking for errors.Is()
func (e *FrameError) Is(target error) bool {
	if fe, ok := target.(*FrameError); ok {
		return e.Op == fe.Op && e.Column == fe.Column && e.Message == fe.Message
	}
	return false
}

// Common error constructors for consistent error creation

// NewColumnNotFoundError creates an error for operations on non-existent columns
func NewColumnNotFoundError(op, column string) *FrameError {
	return &FrameError{
		Op:      op,
		Column:  column,
		Message: "column does not exist",
	}
}

// NewDuplicateColumnError creates an error for operations that would
// produce two columns with the same name
func NewDuplicateColumnError(op, column string) *FrameError {
	return &FrameError{
		Op:      op,
		Column:  column,
		Message: "column name already in use",
	}
}

// NewLengthMismatchError creates an error for operations requiring
// equal-length operands
func NewLengthMismatchError(op string, want, got int) *FrameError {
	return &FrameError{
		Op:      op,
		Message: fmt.Sprintf("length mismatch: expected %d, got %d", want, got),
	}
}

// NewEmptyAccessError creates an error for element access on an empty
// series or frame
func NewEmptyAccessError(op string) *FrameError {
	return &FrameError{
		Op:      op,
		Message: "access on empty data",
	}
}

// NewKindError creates an error for operations applied to a column of the
// wrong value kind
func NewKindError(op, column, kind string) *FrameError {
	return &FrameError{
		Op:      op,
		Column:  column,
		Message: fmt.Sprintf("operation requires a numeric column, got %s", kind),
	}
}

// NewInvalidInputError creates an error for invalid operation inputs
func NewInvalidInputError(op, message string) *FrameError {
	return &FrameError{
		Op:      op,
		Message: message,
	}
}

// NewInvalidIndexError creates an error for a row index referencing
// positions outside column storage
func NewInvalidIndexError(op string, position, storageLen int) *FrameError {
	return &FrameError{
		Op:      op,
		Message: fmt.Sprintf("index position %d out of range [0, %d)", position, storageLen),
	}
}

// NewInternalError creates an error for internal operation failures
func NewInternalError(op string, cause error) *FrameError {
	return &FrameError{
		Op:      op,
		Message: "internal error occurred",
		Cause:   cause,
	}
}

// Predefined error variables for common cases
var (
	// ErrEmptyFrame indicates operations on empty Frames
	ErrEmptyFrame = &FrameError{
		Op:      "validation",
		Message: "operation not supported on empty Frame",
	}

	// ErrMismatchedLength indicates length mismatches in operations
	ErrMismatchedLength = &FrameError{
		Op:      "validation",
		Message: "series must have the same length",
	}

	// ErrInvalidIndex indicates out-of-bounds index access
	ErrInvalidIndex = &FrameError{
		Op:      "indexing",
		Message: "index out of bounds",
	}
)
