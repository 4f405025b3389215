package config

import (
	"fmt"
	"strings"
)

// Error codes for categorization.
const (
	ErrCodeConfigNotFound  = "CONFIG_NOT_FOUND"
	ErrCodeConfigParse     = "CONFIG_PARSE"
	ErrCodeConfigInvalid   = "CONFIG_INVALID"
	ErrCodeDeviceMissing   = "DEVICE_MISSING"
	ErrCodeCommandFailed   = "COMMAND_FAILED"
	ErrCodeCommandTimeout  = "COMMAND_TIMEOUT"
	ErrCodeCheckpointWrite = "CHECKPOINT_WRITE"
)

// UserError represents a user-facing error with actionable detail.
type UserError struct {
	Code       string // Error code for categorization (e.g., "CONFIG_INVALID")
	Message    string // User-facing error message
	Context    string // File path, device list, or other location context
	Suggestion string // Actionable suggestion to fix the error
	Underlying error  // Wrapped error for error chain
}

// Error returns the formatted error message.
func (e *UserError) Error() string {
	var b strings.Builder

	b.WriteString(e.Message)

	if e.Context != "" {
		fmt.Fprintf(&b, " (at %s)", e.Context)
	}

	return b.String()
}

// Unwrap returns the underlying error for error chain support.
func (e *UserError) Unwrap() error {
	return e.Underlying
}

// Is supports errors.Is() for comparing error codes.
func (e *UserError) Is(target error) bool {
	if t, ok := target.(*UserError); ok {
		return e.Code == t.Code
	}
	return false
}

// Format returns a fully formatted error with all details.
func (e *UserError) Format() string {
	var b strings.Builder

	fmt.Fprintf(&b, "[%s] %s", e.Code, e.Message)

	if e.Context != "" {
		fmt.Fprintf(&b, "\n  Location: %s", e.Context)
	}

	if e.Suggestion != "" {
		fmt.Fprintf(&b, "\n  Suggestion: %s", e.Suggestion)
	}

	return b.String()
}

// NewConfigNotFoundError creates an error for a missing config file.
func NewConfigNotFoundError(path string) *UserError {
	return &UserError{
		Code:       ErrCodeConfigNotFound,
		Message:    "configuration file not found",
		Context:    path,
		Suggestion: "create the file or point --config at an existing one",
	}
}

// NewParseError creates an error for an unparseable config file.
func NewParseError(path string, err error) *UserError {
	return &UserError{
		Code:       ErrCodeConfigParse,
		Message:    "configuration file could not be parsed",
		Context:    path,
		Suggestion: "check the file for syntax errors",
		Underlying: err,
	}
}

// NewConfigInvalidError creates an error for a config that parsed but
// violates a consistency rule.
func NewConfigInvalidError(message, suggestion string) *UserError {
	return &UserError{
		Code:       ErrCodeConfigInvalid,
		Message:    message,
		Suggestion: suggestion,
	}
}

// NewDeviceMissingError creates an error for block devices that are not
// visible on the host. The diagnostic carries the currently visible devices.
func NewDeviceMissingError(missing []string, diagnostic string) *UserError {
	return &UserError{
		Code:       ErrCodeDeviceMissing,
		Message:    fmt.Sprintf("block devices not found: %s", strings.Join(missing, ", ")),
		Context:    strings.Join(missing, ", "),
		Suggestion: "verify cabling and device names; currently visible block devices:\n" + diagnostic,
	}
}

// NewCommandFailedError creates an error for a required command that exited
// non-zero.
func NewCommandFailedError(command string, exitCode int, stderr string) *UserError {
	return &UserError{
		Code:       ErrCodeCommandFailed,
		Message:    fmt.Sprintf("command %q failed with exit code %d", command, exitCode),
		Context:    command,
		Suggestion: strings.TrimSpace(stderr),
	}
}

// NewCommandTimeoutError creates an error for a required command that
// exceeded its time bound.
func NewCommandTimeoutError(command string, seconds float64) *UserError {
	return &UserError{
		Code:    ErrCodeCommandTimeout,
		Message: fmt.Sprintf("command %q timed out after %.0fs", command, seconds),
		Context: command,
	}
}

// NewCheckpointWriteError creates an error for a checkpoint that could not
// be persisted.
func NewCheckpointWriteError(path string, err error) *UserError {
	return &UserError{
		Code:       ErrCodeCheckpointWrite,
		Message:    "failed to persist stage checkpoint",
		Context:    path,
		Suggestion: "the completed stage's changes are applied; fix the checkpoint path before re-running",
		Underlying: err,
	}
}
