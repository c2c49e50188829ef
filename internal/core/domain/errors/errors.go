package errors

import (
	"errors"
	"fmt"
)

var ErrNotConfigured = errors.New("not configured")

type InvalidStateError struct {
	msg string
}

func NewInvalidStateError(msg string) *InvalidStateError {
	return &InvalidStateError{msg: msg}
}

func (e *InvalidStateError) Error() string {
	return e.msg
}

type NilArgumentError struct {
	argument string
}

func NewNilArgumentError(argument string) *NilArgumentError {
	return &NilArgumentError{argument: argument}
}

func (e *NilArgumentError) Error() string {
	return fmt.Sprintf("argument '%s' must not be nil", e.argument)
}

// ConfigurationError reports a required environment variable that is absent
// at the moment an operation needs it.
type ConfigurationError struct {
	Variable string
}

func NewConfigurationError(variable string) *ConfigurationError {
	return &ConfigurationError{Variable: variable}
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("%s must be set", e.Variable)
}

func (e *ConfigurationError) Is(target error) bool {
	return target == ErrNotConfigured
}
