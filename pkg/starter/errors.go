package starter

import (
	"fmt"
	"strings"
)

// StarterError represents a terminal starter condition with context for
// troubleshooting. Every detected failure ends the process; the code also
// selects the process exit status so scripts can tell the classes apart.
type StarterError struct {
	// Code identifies the error type
	Code ErrorCode

	// Message is the primary error message
	Message string

	// Context provides additional details
	Context map[string]interface{}

	// Cause is the underlying error (if any)
	Cause error

	// Suggestion provides actionable guidance for resolving the error
	Suggestion string
}

// ErrorCode identifies categories of terminal errors
type ErrorCode string

const (
	// ErrorCodeAlreadyRunning - another starter holds the instance lock
	ErrorCodeAlreadyRunning ErrorCode = "ALREADY_RUNNING"
	// ErrorCodeSetupFailed - working directory or journal setup failed
	ErrorCodeSetupFailed ErrorCode = "SETUP_FAILED"
	// ErrorCodeResolutionFailed - no valid target could be located
	ErrorCodeResolutionFailed ErrorCode = "RESOLUTION_FAILED"
	// ErrorCodeTargetMissing - the resolved target path vanished after startup
	ErrorCodeTargetMissing ErrorCode = "TARGET_MISSING"
	// ErrorCodeUnhandledFault - a panic reached the top-level fault boundary
	ErrorCodeUnhandledFault ErrorCode = "UNHANDLED_FAULT"
)

// ExitCode maps a terminal error to a distinct process exit status. nil
// maps to 0, which in practice only the signal-initiated shutdown reaches.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	switch GetErrorCode(err) {
	case ErrorCodeAlreadyRunning:
		return 2
	case ErrorCodeSetupFailed:
		return 3
	case ErrorCodeResolutionFailed:
		return 4
	case ErrorCodeTargetMissing:
		return 5
	case ErrorCodeUnhandledFault:
		return 6
	default:
		return 1
	}
}

// Error implements the error interface
func (e *StarterError) Error() string {
	var parts []string

	parts = append(parts, fmt.Sprintf("[%s] %s", e.Code, e.Message))

	if len(e.Context) > 0 {
		var contextParts []string
		for k, v := range e.Context {
			contextParts = append(contextParts, fmt.Sprintf("%s=%v", k, v))
		}
		parts = append(parts, fmt.Sprintf("Context: %s", strings.Join(contextParts, ", ")))
	}

	if e.Cause != nil {
		parts = append(parts, fmt.Sprintf("Cause: %v", e.Cause))
	}

	if e.Suggestion != "" {
		parts = append(parts, fmt.Sprintf("Suggestion: %s", e.Suggestion))
	}

	return strings.Join(parts, "; ")
}

// Unwrap returns the underlying error for errors.Is/As compatibility
func (e *StarterError) Unwrap() error {
	return e.Cause
}

// NewError creates a new StarterError with the given code and message
func NewError(code ErrorCode, message string) *StarterError {
	return &StarterError{
		Code:    code,
		Message: message,
		Context: make(map[string]interface{}),
	}
}

// WithContext adds context information to the error
func (e *StarterError) WithContext(key string, value interface{}) *StarterError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// WithCause adds the underlying cause to the error
func (e *StarterError) WithCause(cause error) *StarterError {
	e.Cause = cause
	return e
}

// WithSuggestion adds an actionable suggestion to the error
func (e *StarterError) WithSuggestion(suggestion string) *StarterError {
	e.Suggestion = suggestion
	return e
}

// Common error constructors with helpful suggestions

// ErrAlreadyRunning creates an error for instance lock contention
func ErrAlreadyRunning(identityKey string) *StarterError {
	return NewError(ErrorCodeAlreadyRunning,
		fmt.Sprintf("Another instance of '%s' is already running", identityKey)).
		WithContext("identity", identityKey).
		WithSuggestion(
			"Only one starter may run per machine for a given identity.\n" +
				"If no other instance is visible, a previous one may not have exited yet.")
}

// ErrSetupFailed creates an error for working directory or log setup failures
func ErrSetupFailed(detail string, cause error) *StarterError {
	return NewError(ErrorCodeSetupFailed,
		fmt.Sprintf("Failed to set up the starter environment: %s", detail)).
		WithCause(cause).
		WithSuggestion(
			"Check that the starter's directory is writable and has free space.")
}

// ErrResolutionFailed creates an error for a target that could not be located
func ErrResolutionFailed(target string, cause error) *StarterError {
	return NewError(ErrorCodeResolutionFailed,
		fmt.Sprintf("Could not locate %s", target)).
		WithContext("target", target).
		WithCause(cause).
		WithSuggestion(fmt.Sprintf(
			"Either install %s so its application reference is registered,\n"+
				"place %s.exe next to the starter, or pass an explicit path argument.",
			target, target))
}

// ErrTargetMissing creates an error for a resolved target that vanished
func ErrTargetMissing(target, path string) *StarterError {
	return NewError(ErrorCodeTargetMissing,
		fmt.Sprintf("%s no longer exists at %s", target, path)).
		WithContext("target", target).
		WithContext("path", path).
		WithSuggestion(fmt.Sprintf(
			"%s appears to have been uninstalled or moved. Reinstall it and\n"+
				"restart the starter; the starter does not re-resolve on its own.",
			target))
}

// ErrUnhandledFault creates an error for a panic caught at the fault boundary
func ErrUnhandledFault(recovered interface{}, logPath string) *StarterError {
	return NewError(ErrorCodeUnhandledFault,
		fmt.Sprintf("Unhandled fault: %v", recovered)).
		WithContext("log", logPath).
		WithSuggestion(fmt.Sprintf("See %s for details.", logPath))
}

// IsErrorCode checks if an error has the specified error code
func IsErrorCode(err error, code ErrorCode) bool {
	if starterErr, ok := err.(*StarterError); ok {
		return starterErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or empty string if not a StarterError
func GetErrorCode(err error) ErrorCode {
	if starterErr, ok := err.(*StarterError); ok {
		return starterErr.Code
	}
	return ""
}
