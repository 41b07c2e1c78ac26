package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nilshoffmann/pwiz/pkg/config"
	"github.com/nilshoffmann/pwiz/pkg/singleinst"
	"github.com/nilshoffmann/pwiz/pkg/starter"
)

func TestRunContentionWritesJournal(t *testing.T) {
	dir := t.TempDir()
	viper.Set("log_dir", dir)
	viper.Set("notifier", "none")
	t.Cleanup(viper.Reset)

	// Another instance already holds the lock for the default identity.
	cfg := config.Default()
	guard, err := singleinst.Acquire(cfg.Identity.Key())
	require.NoError(t, err)
	defer guard.Release()

	err = run(rootCmd, nil)
	require.Error(t, err)
	assert.True(t, starter.IsErrorCode(err, starter.ErrorCodeAlreadyRunning))

	data, readErr := os.ReadFile(filepath.Join(dir, cfg.Identity.App+".log"))
	require.NoError(t, readErr)
	assert.Contains(t, string(data), "already running")
}
