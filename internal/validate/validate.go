// Package validate collects input problems before a calculation runs.
package validate

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// FieldError describes a single invalid input field.
type FieldError struct {
	Field   string
	Message string
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Errors is a list of field problems. A nil or empty list means valid input.
type Errors []FieldError

func (errs Errors) Error() string {
	msgs := make([]string, len(errs))
	for i, e := range errs {
		msgs[i] = e.Error()
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// Err returns errs as an error, or nil when there are none.
func (errs Errors) Err() error {
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// ToMap returns the problems keyed by field, for API error details.
func (errs Errors) ToMap() map[string]string {
	m := make(map[string]string, len(errs))
	for _, e := range errs {
		if _, ok := m[e.Field]; !ok {
			m[e.Field] = e.Message
		}
	}
	return m
}

// Add appends a problem for field.
func (errs *Errors) Add(field, format string, args ...any) {
	*errs = append(*errs, FieldError{Field: field, Message: fmt.Sprintf(format, args...)})
}

// Positive records a problem unless d > 0.
func (errs *Errors) Positive(field string, d decimal.Decimal) {
	if !d.IsPositive() {
		errs.Add(field, "must be greater than 0, got %s", d)
	}
}

// NonNegative records a problem when d < 0.
func (errs *Errors) NonNegative(field string, d decimal.Decimal) {
	if d.IsNegative() {
		errs.Add(field, "must not be negative, got %s", d)
	}
}

// Required records a problem when s is blank.
func (errs *Errors) Required(field, s string) {
	if strings.TrimSpace(s) == "" {
		errs.Add(field, "is required")
	}
}
