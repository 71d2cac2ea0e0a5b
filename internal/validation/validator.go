// Package validation provides reusable input validators for frame
// operations: column existence and operand length consistency, producing
// the shared typed errors.
package validation

import (
	"github.com/okapi-data/okapi/internal/errors"
)

// Validator interface for input validation
type Validator interface {
	Validate() error
}

// ColumnProvider interface for types that provide column information
type ColumnProvider interface {
	HasColumn(name string) bool
	Names() []string
	Len() int
	Width() int
}

// ColumnValidator validates column existence
type ColumnValidator struct {
	frame   ColumnProvider
	columns []string
	op      string
}

// NewColumnValidator creates a validator for column operations
func NewColumnValidator(frame ColumnProvider, op string, columns ...string) *ColumnValidator {
	return &ColumnValidator{
		frame:   frame,
		columns: columns,
		op:      op,
	}
}

// Validate checks if all columns exist in the frame
func (v *ColumnValidator) Validate() error {
	for _, column := range v.columns {
		if !v.frame.HasColumn(column) {
			return errors.NewColumnNotFoundError(v.op, column)
		}
	}
	return nil
}

// LengthValidator validates operand length consistency
type LengthValidator struct {
	expected int
	actual   int
	op       string
}

// NewLengthValidator creates a validator for equal-length operands
func NewLengthValidator(op string, expected, actual int) *LengthValidator {
	return &LengthValidator{
		expected: expected,
		actual:   actual,
		op:       op,
	}
}

// Validate checks that the lengths agree
func (v *LengthValidator) Validate() error {
	if v.expected != v.actual {
		return errors.NewLengthMismatchError(v.op, v.expected, v.actual)
	}
	return nil
}

// ValidateAll runs validators in order and returns the first failure
func ValidateAll(validators ...Validator) error {
	for _, v := range validators {
		if err := v.Validate(); err != nil {
			return err
		}
	}
	return nil
}
