package submissionvalidator

import (
	"fmt"
	"kedilabs/internal/core/domain/submission"
	"math"

	validation "github.com/go-ozzo/ozzo-validation"
)

// fields reads typed values out of a sanitized JSON object and collects
// one error per failing field.
type fields struct {
	data   map[string]any
	errors []submission.FieldError
}

func newFields(data map[string]any) *fields {
	return &fields{data: data}
}

func (f *fields) fail(field, message, code string) {
	f.errors = append(f.errors, submission.FieldError{Field: field, Message: message, Code: code})
}

func (f *fields) lookup(field string) (any, bool) {
	v, ok := f.data[field]
	if !ok || v == nil {
		return nil, false
	}
	if s, isString := v.(string); isString && s == "" {
		return nil, false
	}
	return v, true
}

// text reads a string field. An absent optional field yields "".
func (f *fields) text(field string, required string, rules ...validation.Rule) string {
	raw, ok := f.lookup(field)
	if !ok {
		if required != "" {
			f.fail(field, required, submission.CodeRequired)
		}
		return ""
	}
	s, ok := raw.(string)
	if !ok {
		f.fail(field, fmt.Sprintf("%s must be a string", field), submission.CodeInvalidType)
		return ""
	}
	if err := validation.Validate(s, rules...); err != nil {
		f.fail(field, err.Error(), submission.CodeInvalidValue)
		return ""
	}
	return s
}

// choice reads a required string field restricted to options.
func (f *fields) choice(field string, required string, options []string) string {
	return f.text(field, required, validation.In(anySlice(options)...).Error(fmt.Sprintf("Invalid %s value", field)))
}

// choices reads a non-empty list whose items are all in options.
func (f *fields) choices(field string, required string, options []string) []string {
	raw, ok := f.lookup(field)
	if !ok {
		f.fail(field, required, submission.CodeRequired)
		return nil
	}
	items, ok := raw.([]any)
	if !ok {
		f.fail(field, fmt.Sprintf("%s must be a list", field), submission.CodeInvalidType)
		return nil
	}
	if len(items) == 0 {
		f.fail(field, required, submission.CodeRequired)
		return nil
	}
	in := validation.In(anySlice(options)...)
	values := make([]string, 0, len(items))
	for _, item := range items {
		s, ok := item.(string)
		if !ok {
			f.fail(field, fmt.Sprintf("%s must contain strings", field), submission.CodeInvalidType)
			return nil
		}
		if err := validation.Validate(s, validation.Required, in); err != nil {
			f.fail(field, fmt.Sprintf("Invalid %s value: %s", field, s), submission.CodeInvalidValue)
			return nil
		}
		values = append(values, s)
	}
	return values
}

// integer reads a required whole JSON number.
func (f *fields) integer(field string, required string, rules ...validation.Rule) int {
	raw, ok := f.lookup(field)
	if !ok {
		f.fail(field, required, submission.CodeRequired)
		return 0
	}
	n, ok := raw.(float64)
	if !ok || n != math.Trunc(n) {
		f.fail(field, fmt.Sprintf("%s must be a whole number", field), submission.CodeInvalidType)
		return 0
	}
	value := int(n)
	if err := validation.Validate(value, rules...); err != nil {
		f.fail(field, err.Error(), submission.CodeInvalidValue)
		return 0
	}
	return value
}

func anySlice(values []string) []interface{} {
	out := make([]interface{}, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}
