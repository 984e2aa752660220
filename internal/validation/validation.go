// Package validation runs explicit per-request field checks and collects the
// failures into a structured list.
package validation

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// FieldError describes one failed check.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Errors is the list of field failures for a single request.
type Errors []FieldError

func (e Errors) Error() string {
	parts := make([]string, 0, len(e))
	for _, fe := range e {
		parts = append(parts, fe.Field+": "+fe.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Has reports whether field has at least one failure.
func (e Errors) Has(field string) bool {
	for _, fe := range e {
		if fe.Field == field {
			return true
		}
	}
	return false
}

// As extracts validation errors from err.
func As(err error) (Errors, bool) {
	var ve Errors
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

// Checker accumulates failures. The zero value is ready to use.
type Checker struct {
	errs Errors
}

// Check runs a validator tag such as "required,min=3,max=100" against value
// and records message under field when it fails.
func (c *Checker) Check(field string, value any, tag, message string) {
	if err := validate.Var(value, tag); err != nil {
		c.Add(field, message)
	}
}

// Add records a failure directly.
func (c *Checker) Add(field, message string) {
	c.errs = append(c.errs, FieldError{Field: field, Message: message})
}

// Valid reports whether no failures were recorded.
func (c *Checker) Valid() bool {
	return len(c.errs) == 0
}

// Err returns the collected failures, or nil.
func (c *Checker) Err() error {
	if len(c.errs) == 0 {
		return nil
	}
	out := make(Errors, len(c.errs))
	copy(out, c.errs)
	return out
}
