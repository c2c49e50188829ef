package submission

import (
	"fmt"
	"strings"
)

const (
	CodeRequired     = "required"
	CodeInvalidType  = "invalid_type"
	CodeInvalidValue = "invalid_value"
)

type FieldError struct {
	Field   string
	Message string
	Code    string
}

// ValidationResult carries either a typed form or the list of field errors.
// A failed validation is an ordinary result, not an error.
type ValidationResult struct {
	Form   Form
	Errors []FieldError
}

func (r ValidationResult) IsValid() bool {
	return len(r.Errors) == 0 && r.Form != nil
}

// Validator sanitizes a decoded JSON object and checks it against the
// schema selected by its stakeholderType.
type Validator interface {
	Validate(raw map[string]any) ValidationResult
}

type ValidationError struct {
	Errors []FieldError
}

func NewValidationError(errs []FieldError) *ValidationError {
	return &ValidationError{Errors: errs}
}

func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Errors))
	for _, fe := range e.Errors {
		fields = append(fields, fe.Field)
	}
	return fmt.Sprintf("submission is not valid: %s", strings.Join(fields, ", "))
}
