package journal

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJournal_Log(t *testing.T) {
	dir := t.TempDir()
	j := New(dir, "ExampleStarter")

	j.Log("ExampleStarter started")
	j.Logf("starting %s", "Example")

	data, err := os.ReadFile(filepath.Join(dir, "ExampleStarter.log"))
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	require.Len(t, lines, 2)

	// <date> <time>: <message>
	lineRe := regexp.MustCompile(`^\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}: .+$`)
	assert.Regexp(t, lineRe, lines[0])
	assert.True(t, strings.HasSuffix(lines[0], ": ExampleStarter started"))
	assert.True(t, strings.HasSuffix(lines[1], ": starting Example"))
}

func TestJournal_AppendsAcrossWrites(t *testing.T) {
	dir := t.TempDir()
	j := New(dir, "app")

	for i := 0; i < 5; i++ {
		j.Log("tick")
	}

	data, err := os.ReadFile(j.Path())
	require.NoError(t, err)
	assert.Equal(t, 5, strings.Count(string(data), "\n"))
}

func TestJournal_UnwritableIsSwallowed(t *testing.T) {
	// A directory that does not exist: the open fails, Log must not panic
	// and must not propagate the error.
	j := New(filepath.Join(t.TempDir(), "missing", "deeper"), "app")
	assert.NotPanics(t, func() { j.Log("dropped") })
}
