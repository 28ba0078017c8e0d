// Package logging provides logging utilities for gate-ctl.
//
// This package provides two categories of output:
//   - Debug logging: Structured logs for debugging (via slog)
//   - User output: Formatted messages for end users
//
// # Debug Logging
//
// Debug logs are written using slog and controlled by verbosity settings:
//
//	logging.Debug("promoting backend", "label", label, "port", port)
//	logging.Warn("probe timeout", "port", port, "timeout", timeout)
//
// # User Output
//
// User-facing messages are formatted with status indicators:
//
//	logging.UserInfo("Reloading router...")
//	logging.UserSuccess("Promoted %s (port %d)", label, port)
//	logging.UserWarning("Router not running; config updated but not applied")
//	logging.UserError("Failed to update router config: %v", err)
//
// Output destinations:
//   - UserInfo, UserSuccess: stdout
//   - UserWarning, UserError: stderr
//
// # Status Indicators
//
// User functions prepend status indicators:
//   - ℹ (info)
//   - ✓ (success)
//   - ⚠ (warning)
//   - ✗ (error)
package logging
