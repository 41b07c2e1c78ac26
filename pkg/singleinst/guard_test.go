package singleinst

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAcquire_SecondAttemptFails(t *testing.T) {
	key := "Test Publisher TestStarter " + t.Name()

	h, err := Acquire(key)
	require.NoError(t, err)
	defer h.Release()

	// The second acquisition must fail immediately, without blocking.
	_, err = Acquire(key)
	assert.ErrorIs(t, err, ErrAlreadyRunning)
}

func TestAcquire_AfterReleaseSucceeds(t *testing.T) {
	key := "Test Publisher TestStarter " + t.Name()

	h, err := Acquire(key)
	require.NoError(t, err)
	require.NoError(t, h.Release())

	h2, err := Acquire(key)
	require.NoError(t, err)
	require.NoError(t, h2.Release())
}

func TestHandle_ReleaseIsIdempotent(t *testing.T) {
	h, err := Acquire("Test Publisher TestStarter " + t.Name())
	require.NoError(t, err)

	require.NoError(t, h.Release())
	assert.NoError(t, h.Release())
}

func TestAcquire_DistinctKeysDoNotContend(t *testing.T) {
	a, err := Acquire("Publisher A AppA " + t.Name())
	require.NoError(t, err)
	defer a.Release()

	b, err := Acquire("Publisher B AppB " + t.Name())
	require.NoError(t, err)
	defer b.Release()
}
