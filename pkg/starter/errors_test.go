package starter

import (
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStarterErrorFormatting(t *testing.T) {
	err := NewError(ErrorCodeResolutionFailed, "Could not locate AutoQC").
		WithContext("target", "AutoQC").
		WithCause(os.ErrNotExist).
		WithSuggestion("Install AutoQC first.")

	msg := err.Error()
	assert.Contains(t, msg, "[RESOLUTION_FAILED]")
	assert.Contains(t, msg, "Could not locate AutoQC")
	assert.Contains(t, msg, "target=AutoQC")
	assert.Contains(t, msg, "Cause: file does not exist")
	assert.Contains(t, msg, "Suggestion: Install AutoQC first.")
}

func TestStarterErrorUnwrap(t *testing.T) {
	cause := os.ErrPermission
	err := ErrSetupFailed("log directory", cause)

	assert.True(t, errors.Is(err, os.ErrPermission))

	var starterErr *StarterError
	require.True(t, errors.As(err, &starterErr))
	assert.Equal(t, ErrorCodeSetupFailed, starterErr.Code)
}

func TestErrorCodeHelpers(t *testing.T) {
	err := ErrAlreadyRunning("MacCoss Lab, UW AutoQCStarter")

	assert.True(t, IsErrorCode(err, ErrorCodeAlreadyRunning))
	assert.False(t, IsErrorCode(err, ErrorCodeTargetMissing))
	assert.Equal(t, ErrorCodeAlreadyRunning, GetErrorCode(err))

	assert.False(t, IsErrorCode(errors.New("plain"), ErrorCodeAlreadyRunning))
	assert.Equal(t, ErrorCode(""), GetErrorCode(errors.New("plain")))
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil is success", nil, 0},
		{"already running", ErrAlreadyRunning("key"), 2},
		{"setup failed", ErrSetupFailed("journal", os.ErrPermission), 3},
		{"resolution failed", ErrResolutionFailed("AutoQC", nil), 4},
		{"target missing", ErrTargetMissing("AutoQC", "/tmp/AutoQC.exe"), 5},
		{"unhandled fault", ErrUnhandledFault("boom", "/tmp/AutoQCStarter.log"), 6},
		{"plain error", errors.New("plain"), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExitCode(tt.err))
		})
	}
}

func TestConstructorSuggestions(t *testing.T) {
	assert.Contains(t, ErrResolutionFailed("AutoQC", nil).Suggestion, "explicit path")
	assert.Contains(t, ErrTargetMissing("AutoQC", "/x").Suggestion, "uninstalled")
	assert.Contains(t, ErrUnhandledFault("boom", "/var/log/s.log").Suggestion, "/var/log/s.log")
}
