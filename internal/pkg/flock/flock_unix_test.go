//go:build unix

package flock

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLock(t *testing.T) {
	t.Parallel()

	first, err := os.CreateTemp(".", "testdb")
	require.NoError(t, err)
	defer os.Remove(first.Name())
	defer first.Close()

	second, err := os.OpenFile(first.Name(), os.O_RDWR, 0600)
	require.NoError(t, err)
	defer second.Close()

	require.NoError(t, Lock(first))
	require.ErrorIs(t, Lock(second), ErrLocked)

	require.NoError(t, Unlock(first))
	require.NoError(t, Lock(second))
	require.ErrorIs(t, Lock(first), ErrLocked)
	require.NoError(t, Unlock(second))
}
