// Package errors provides structured error types and exit codes for goldrun.
package errors

import (
	"fmt"
)

// Exit codes used by the CLI. The run command is an exception: it exits
// with the aggregated invocation status, which follows the exit-code
// conventions of the commands under test rather than this table.
const (
	ExitSuccess          = 0 // Success
	ExitRuntimeError     = 1 // Runtime error (invocation failed, output mismatch)
	ExitConfigError      = 2 // Configuration error (invalid suite file, bad flags)
	ExitEnvironmentError = 3 // Environment error (missing fixture, command not runnable)
)

// ErrorKind represents the type of error.
type ErrorKind int

const (
	KindRuntime ErrorKind = iota
	KindConfig
	KindNotFound
	KindValidation
	KindEnvironment
)

// GoldrunError is the base error type for goldrun.
type GoldrunError struct {
	Kind    ErrorKind
	Message string
	Test    string // Test name if applicable
	Label   string // Output label if applicable
	Cause   error  // Underlying error
}

func (e *GoldrunError) Error() string {
	if e.Test != "" && e.Label != "" && e.Label != e.Test {
		return fmt.Sprintf("[%s] %s: %s", e.Test, e.Label, e.Message)
	}
	if e.Test != "" {
		return fmt.Sprintf("[%s] %s", e.Test, e.Message)
	}
	return e.Message
}

func (e *GoldrunError) Unwrap() error {
	return e.Cause
}

// ExitCode returns the appropriate exit code for this error.
func (e *GoldrunError) ExitCode() int {
	switch e.Kind {
	case KindConfig, KindValidation:
		return ExitConfigError
	case KindEnvironment:
		return ExitEnvironmentError
	default:
		return ExitRuntimeError
	}
}

// New creates a new runtime error.
func New(message string) *GoldrunError {
	return &GoldrunError{
		Kind:    KindRuntime,
		Message: message,
	}
}

// Newf creates a new runtime error with formatting.
func Newf(format string, args ...interface{}) *GoldrunError {
	return New(fmt.Sprintf(format, args...))
}

// Config creates a new configuration error.
func Config(message string) *GoldrunError {
	return &GoldrunError{
		Kind:    KindConfig,
		Message: message,
	}
}

// Configf creates a new configuration error with formatting.
func Configf(format string, args ...interface{}) *GoldrunError {
	return Config(fmt.Sprintf(format, args...))
}

// Environment creates a new environment error.
func Environment(message string) *GoldrunError {
	return &GoldrunError{
		Kind:    KindEnvironment,
		Message: message,
	}
}

// Environmentf creates a new environment error with formatting.
func Environmentf(format string, args ...interface{}) *GoldrunError {
	return Environment(fmt.Sprintf(format, args...))
}

// Wrap wraps an error with additional context.
func Wrap(err error, message string) *GoldrunError {
	return &GoldrunError{
		Kind:    KindRuntime,
		Message: message,
		Cause:   err,
	}
}

// InvocationError creates an error for a specific test invocation.
func InvocationError(test, label, message string) *GoldrunError {
	return &GoldrunError{
		Kind:    KindRuntime,
		Test:    test,
		Label:   label,
		Message: message,
	}
}

// NotFound creates a not found error.
func NotFound(what, name string) *GoldrunError {
	return &GoldrunError{
		Kind:    KindNotFound,
		Message: fmt.Sprintf("%s not found: %s", what, name),
	}
}

// GetExitCode returns the exit code for an error.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	if ge, ok := err.(*GoldrunError); ok {
		return ge.ExitCode()
	}
	return ExitRuntimeError
}
