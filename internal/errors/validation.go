package errors

import (
	"fmt"
	"sort"
	"strings"
)

// ValidationError represents a validation error with multiple fields.
// It collects validation errors for multiple fields and can convert
// itself to a standard Error carrying its code (InvalidArgument unless
// built for configuration).
type ValidationError struct {
	// Fields maps field names to their validation error messages
	Fields map[string][]string `json:"fields"`

	code Code
}

// Error implements the error interface
func (v *ValidationError) Error() string {
	if len(v.Fields) == 0 {
		return "validation failed"
	}

	fields := make([]string, 0, len(v.Fields))
	for field := range v.Fields {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, len(fields))
	for i, field := range fields {
		parts[i] = fmt.Sprintf("%s: %s", field, strings.Join(v.Fields[field], ", "))
	}
	return fmt.Sprintf("validation failed: %s", strings.Join(parts, "; "))
}

// NewValidationError creates a new validation error
func NewValidationError() *ValidationError {
	return &ValidationError{
		Fields: make(map[string][]string),
		code:   CodeInvalidArgument,
	}
}

// AddFieldError adds an error for a specific field
func (v *ValidationError) AddFieldError(field, message string) {
	v.Fields[field] = append(v.Fields[field], message)
}

// AddFieldErrorf adds a formatted error for a specific field
func (v *ValidationError) AddFieldErrorf(field, format string, args ...interface{}) {
	v.AddFieldError(field, fmt.Sprintf(format, args...))
}

// HasErrors returns true if there are any validation errors
func (v *ValidationError) HasErrors() bool {
	return len(v.Fields) > 0
}

// ToError converts the validation error to our standard error type
func (v *ValidationError) ToError() *Error {
	if !v.HasErrors() {
		return nil
	}

	err := New(v.code, v.Error())
	return err.WithMeta("validation_errors", v.Fields)
}

// ValidationBuilder provides a fluent interface for building validation errors.
// It accumulates field-level validation errors and returns nil if no errors
// are present, or an InvalidArgument error with detailed field information.
type ValidationBuilder struct {
	err *ValidationError
}

// NewValidationBuilder creates a new validation builder
func NewValidationBuilder() *ValidationBuilder {
	return &ValidationBuilder{
		err: NewValidationError(),
	}
}

// NewConfigValidationBuilder creates a validation builder whose errors
// carry CodeInvalidConfiguration.
func NewConfigValidationBuilder() *ValidationBuilder {
	vb := NewValidationBuilder()
	vb.err.code = CodeInvalidConfiguration
	return vb
}

// Field adds a validation error for a field
func (vb *ValidationBuilder) Field(field, message string) *ValidationBuilder {
	vb.err.AddFieldError(field, message)
	return vb
}

// Fieldf adds a formatted validation error for a field
func (vb *ValidationBuilder) Fieldf(field, format string, args ...interface{}) *ValidationBuilder {
	vb.err.AddFieldErrorf(field, format, args...)
	return vb
}

// RequiredField adds a required field error
func (vb *ValidationBuilder) RequiredField(field string) *ValidationBuilder {
	return vb.Field(field, "is required")
}

// InvalidField adds an invalid field error
func (vb *ValidationBuilder) InvalidField(field, reason string) *ValidationBuilder {
	return vb.Fieldf(field, "is invalid: %s", reason)
}

// Build returns the error if there are validation errors, nil otherwise
func (vb *ValidationBuilder) Build() error {
	if vb.err.HasErrors() {
		return vb.err.ToError()
	}
	return nil
}

// Validation helper functions

// ValidateRequired checks if a string field is required
func ValidateRequired(field, value string, vb *ValidationBuilder) {
	if strings.TrimSpace(value) == "" {
		vb.RequiredField(field)
	}
}

// ValidateMin checks if a value is at least minValue
func ValidateMin(field string, value, minValue int, vb *ValidationBuilder) {
	if value < minValue {
		vb.Fieldf(field, "must be at least %d", minValue)
	}
}

// ValidateRange checks if a value is within a range
func ValidateRange(field string, value, minValue, maxValue int, vb *ValidationBuilder) {
	if value < minValue || value > maxValue {
		vb.Fieldf(field, "must be between %d and %d", minValue, maxValue)
	}
}

// ValidateEnum checks if a value is in a list of allowed values
func ValidateEnum(field, value string, allowed []string, vb *ValidationBuilder) {
	for _, a := range allowed {
		if value == a {
			return
		}
	}
	vb.Fieldf(field, "must be one of: %s", strings.Join(allowed, ", "))
}
