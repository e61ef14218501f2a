package cli

import (
	"errors"
	"fmt"

	clierrors "github.com/ariel-frischer/rubychanges/internal/errors"
)

// Exit codes for the rubychanges CLI
// These codes support programmatic composition and CI/CD integration
const (
	// ExitSuccess indicates successful command execution
	ExitSuccess = 0

	// ExitFailure indicates a runtime failure (I/O, rendering)
	ExitFailure = 1

	// ExitInvalidArguments indicates invalid command arguments, including
	// unknown --from/--to releases
	ExitInvalidArguments = 3

	// ExitMissingData indicates missing or invalid source documents or database
	ExitMissingData = 4

	// ExitInvalidConfig indicates an invalid configuration file or value
	ExitInvalidConfig = 5
)

// ExitError carries a process exit code through cobra's error return.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit code %d", e.Code)
}

// NewExitError returns an error that makes Execute exit with code.
func NewExitError(code int) error {
	return &ExitError{Code: code}
}

// ExitCode maps err to a process exit code. CLIErrors map by category,
// anything else unknown is ExitFailure.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	if cliErr := clierrors.AsCLIError(err); cliErr != nil {
		switch cliErr.Category {
		case clierrors.Argument:
			return ExitInvalidArguments
		case clierrors.Data:
			return ExitMissingData
		case clierrors.Configuration:
			return ExitInvalidConfig
		}
	}
	return ExitFailure
}
