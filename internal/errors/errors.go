// Package errors provides structured error handling for the rubychanges CLI.
// It includes categorized errors with actionable remediation guidance.
package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorCategory represents the type of error that occurred.
type ErrorCategory int

const (
	// Argument errors are caused by invalid or missing command arguments.
	Argument ErrorCategory = iota
	// Configuration errors are caused by invalid or missing configuration.
	Configuration
	// Data errors occur when the source documents or the database are
	// missing or invalid.
	Data
	// Runtime errors occur during command execution.
	Runtime
)

// String returns a human-readable name for the error category.
func (c ErrorCategory) String() string {
	switch c {
	case Argument:
		return "Argument Error"
	case Configuration:
		return "Configuration Error"
	case Data:
		return "Data Error"
	case Runtime:
		return "Runtime Error"
	default:
		return "Error"
	}
}

// CLIError is a structured error with category and remediation guidance.
type CLIError struct {
	// Category is the type of error (Argument, Configuration, etc.)
	Category ErrorCategory
	// Message is a human-readable description of what went wrong.
	Message string
	// Remediation is a list of actionable steps to resolve the error.
	Remediation []string
	// Usage shows the correct command syntax (optional, for argument errors).
	Usage string
	// Cause is the underlying error, if any. errors.Is and errors.As see
	// through to it.
	Cause error
}

func (e *CLIError) Error() string {
	return e.Message
}

func (e *CLIError) Unwrap() error {
	return e.Cause
}

func newError(category ErrorCategory, message, usage string, remediation []string) *CLIError {
	return &CLIError{Category: category, Message: message, Usage: usage, Remediation: remediation}
}

// NewArgumentError returns an Argument error.
func NewArgumentError(message string, remediation ...string) *CLIError {
	return newError(Argument, message, "", remediation)
}

// NewArgumentErrorWithUsage returns an Argument error that shows the correct
// command syntax.
func NewArgumentErrorWithUsage(message, usage string, remediation ...string) *CLIError {
	return newError(Argument, message, usage, remediation)
}

func NewConfigError(message string, remediation ...string) *CLIError {
	return newError(Configuration, message, "", remediation)
}

func NewDataError(message string, remediation ...string) *CLIError {
	return newError(Data, message, "", remediation)
}

func NewRuntimeError(message string, remediation ...string) *CLIError {
	return newError(Runtime, message, "", remediation)
}

// WrapWithMessage returns a CLIError reading "message: err" that keeps err
// as its cause. A nil err yields nil.
func WrapWithMessage(err error, category ErrorCategory, message string, remediation ...string) *CLIError {
	if err == nil {
		return nil
	}
	e := newError(category, fmt.Sprintf("%s: %v", message, err), "", remediation)
	e.Cause = err
	return e
}

// IsCLIError checks if an error is, or wraps, a CLIError.
func IsCLIError(err error) bool {
	return AsCLIError(err) != nil
}

// AsCLIError returns the first CLIError in err's chain, or nil.
func AsCLIError(err error) *CLIError {
	var cliErr *CLIError
	if stderrors.As(err, &cliErr) {
		return cliErr
	}
	return nil
}
