package model

import "fmt"

// ConfigurationError marks a malformed or internally inconsistent
// facility configuration (e.g. a requirement referencing an undefined
// time slot). It is fatal: the whole diagnosis or evaluation call
// fails, no partial result is returned.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return "configuration error: " + e.Reason
}

// NewConfigurationError builds a ConfigurationError from a format string.
func NewConfigurationError(format string, args ...any) error {
	return &ConfigurationError{Reason: fmt.Sprintf(format, args...)}
}

// InputError marks malformed evaluator input, such as a schedule
// referencing an unknown staff member or time slot. It is distinct
// from a constraint violation: violations are results, InputError is
// bad data.
type InputError struct {
	Reason string
}

func (e *InputError) Error() string {
	return "input error: " + e.Reason
}

// NewInputError builds an InputError from a format string.
func NewInputError(format string, args ...any) error {
	return &InputError{Reason: fmt.Sprintf(format, args...)}
}
