package proctab

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNameRunning_OwnProcess(t *testing.T) {
	// The test binary itself is always in the process table.
	name := filepath.Base(os.Args[0])

	running, err := NameRunning(name)
	require.NoError(t, err)
	assert.True(t, running)
}

func TestNameRunning_Absent(t *testing.T) {
	running, err := NameRunning("definitely-not-a-real-process-name-4f2a")
	require.NoError(t, err)
	assert.False(t, running)
}

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"AutoQC", "autoqc"},
		{"AutoQC.exe", "autoqc"},
		{"autoqc.EXE", "autoqc"},
		{"AutoQC-daily", "autoqc-daily"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, normalizeName(tt.in), tt.in)
	}
}
