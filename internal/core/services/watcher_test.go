package services

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMechanismWatcher_FiresOncePerBurst(t *testing.T) {
	dir := t.TempDir()
	watched := filepath.Join(dir, "gckpp.eqn")
	other := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(watched, []byte("v0"), 0o600))

	changes := make(chan string, 10)
	w, err := NewMechanismWatcher([]string{watched}, 50*time.Millisecond, func(_ context.Context, path string) error {
		changes <- path
		return nil
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	for i := range 3 {
		require.NoError(t, os.WriteFile(watched, []byte{byte('a' + i)}, 0o600))
	}
	require.NoError(t, os.WriteFile(other, []byte("ignored"), 0o600))

	abs, err := filepath.Abs(watched)
	require.NoError(t, err)
	select {
	case got := <-changes:
		assert.Equal(t, abs, got)
	case <-time.After(5 * time.Second):
		t.Fatal("no change reported")
	}

	select {
	case got := <-changes:
		t.Fatalf("unexpected second change: %s", got)
	case <-time.After(300 * time.Millisecond):
	}

	cancel()
	require.NoError(t, <-done)
}

func TestMechanismWatcher_MissingDirectory(t *testing.T) {
	_, err := NewMechanismWatcher([]string{filepath.Join(t.TempDir(), "gone", "gckpp.eqn")}, 0, nil)
	assert.Error(t, err)
}

func TestMechanismWatcher_Due(t *testing.T) {
	w := &MechanismWatcher{pending: map[string]time.Time{}, debounce: time.Second}
	now := time.Now()
	w.pending["/a"] = now.Add(-2 * time.Second)
	w.pending["/b"] = now

	assert.Equal(t, []string{"/a"}, w.due(now))
	assert.Len(t, w.pending, 1)
}
