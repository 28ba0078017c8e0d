package errors

import (
	"errors"
	"fmt"
)

// Exit codes for gate-ctl
const (
	ExitSuccess        = 0
	ExitGeneralError   = 1
	ExitInvalidTarget  = 2
	ExitConfigWrite    = 3
	ExitUnknownBackend = 4
	ExitStartupStep    = 5
	ExitConfigError    = 6
)

// GateError is the base error type for gate-ctl
type GateError struct {
	Code    int
	Message string
	Cause   error
}

func (e *GateError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *GateError) Unwrap() error {
	return e.Cause
}

// ExitCode returns the exit code for this error
func (e *GateError) ExitCode() int {
	return e.Code
}

// New creates a new GateError
func New(code int, message string) *GateError {
	return &GateError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an existing error with a GateError
func Wrap(code int, message string, cause error) *GateError {
	return &GateError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// Common error constructors

// InvalidTarget returns an error for an unrecognized promotion target.
func InvalidTarget(target string) *GateError {
	return New(ExitInvalidTarget, fmt.Sprintf("invalid target %q: must be primary or secondary", target))
}

// ConfigWriteFailure returns an error for a failed router config mutation.
func ConfigWriteFailure(cause error) *GateError {
	return Wrap(ExitConfigWrite, "failed to update router config", cause)
}

// ConfigReadFailure returns an error for an unreadable router config.
func ConfigReadFailure(cause error) *GateError {
	return Wrap(ExitConfigWrite, "failed to read router config", cause)
}

// UnknownActiveBackend returns an error when the active port maps to no known backend.
func UnknownActiveBackend(port int) *GateError {
	return New(ExitUnknownBackend, fmt.Sprintf("active port %d does not match any known backend", port))
}

// StartupStepFailed returns an error for a failed start-all step.
func StartupStepFailed(step string, cause error) *GateError {
	return Wrap(ExitStartupStep, fmt.Sprintf("startup step %s failed", step), cause)
}

// ConfigError returns an error for gate-ctl configuration issues.
func ConfigError(message string, cause error) *GateError {
	return Wrap(ExitConfigError, message, cause)
}

// ValidationError returns an error for input validation failures.
func ValidationError(message string) *GateError {
	return New(ExitGeneralError, message)
}

// GetExitCode extracts the exit code from an error
func GetExitCode(err error) int {
	var gateErr *GateError
	if errors.As(err, &gateErr) {
		return gateErr.ExitCode()
	}
	return ExitGeneralError
}

// Is checks if an error is of a specific type
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target any) bool {
	return errors.As(err, target)
}
