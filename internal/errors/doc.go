// Package errors provides typed errors with exit codes for gate-ctl.
//
// # Error Types
//
// GateError is the base error type that wraps an error with an exit code:
//
//	type GateError struct {
//	    Code    int    // Exit code
//	    Message string // User-facing message
//	    Cause   error  // Wrapped error
//	}
//
// # Exit Codes
//
// Defined exit codes for different error categories:
//
//	ExitSuccess        = 0  // Success
//	ExitGeneralError   = 1  // General/unknown errors
//	ExitInvalidTarget  = 2  // Promotion target is not a known backend
//	ExitConfigWrite    = 3  // Router config could not be read or rewritten
//	ExitUnknownBackend = 4  // Active port maps to no known backend
//	ExitStartupStep    = 5  // A start-all step failed
//	ExitConfigError    = 6  // gate-ctl configuration error
//
// The exit code distinguishes "config written but not reloaded" (exit 0,
// degraded warning) from "config write failed" (ExitConfigWrite): only
// the latter means traffic may not match the requested state.
//
// # Extracting Exit Codes
//
// Use GetExitCode to extract the exit code from an error chain:
//
//	if err != nil {
//	    os.Exit(errors.GetExitCode(err))
//	}
package errors
