package cli

import (
	"errors"
	"fmt"

	clierrors "github.com/ariel-frischer/debcatalog/internal/errors"
)

// Exit codes for the debcatalog CLI
// These codes support programmatic composition and CI/CD integration
const (
	// ExitSuccess indicates successful command execution
	ExitSuccess = 0

	// ExitValidationFailed indicates validation or the command itself failed
	ExitValidationFailed = 1

	// ExitInvalidArguments indicates invalid command arguments or configuration
	ExitInvalidArguments = 3

	// ExitMissingFiles indicates required repository files are missing
	ExitMissingFiles = 4
)

// ExitError carries an exit code for output that has already been printed.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit code %d", e.Code)
}

// NewExitError returns an ExitError for code.
func NewExitError(code int) error {
	return &ExitError{Code: code}
}

// ExitCode maps an error returned by a command onto a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	if cliErr := clierrors.AsCLIError(err); cliErr != nil {
		return exitCodeForCategory(cliErr.Category)
	}
	return ExitValidationFailed
}

func exitCodeForCategory(c clierrors.ErrorCategory) int {
	switch c {
	case clierrors.Argument, clierrors.Configuration:
		return ExitInvalidArguments
	case clierrors.Prerequisite:
		return ExitMissingFiles
	default:
		return ExitValidationFailed
	}
}
