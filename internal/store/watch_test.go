package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"

	"rumo/internal/interview"
)

func TestWatcherReportsSaves(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	dir := t.TempDir()
	path := filepath.Join(dir, "profile.json")
	s := NewFileStore(path, zap.NewNop())

	w, err := NewWatcher(path, zap.NewNop())
	require.NoError(t, err)
	w.SetDebounce(30 * time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, w.Start(ctx))
	defer w.Stop()

	_, err = s.Save(ctx, interview.Profile{"role": interview.Text("a")}, false)
	require.NoError(t, err)

	select {
	case <-w.Changes():
	case <-time.After(5 * time.Second):
		t.Fatal("no change reported after save")
	}

	// Unrelated files in the same directory are ignored.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.txt"), []byte("x"), 0644))
	select {
	case <-w.Changes():
		t.Fatal("change reported for an unrelated file")
	case <-time.After(200 * time.Millisecond):
	}
}

func TestWatcherStopWithoutStart(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	w, err := NewWatcher(filepath.Join(t.TempDir(), "profile.json"), nil)
	require.NoError(t, err)
	w.Stop()
	w.Stop()
}

func TestWatcherStopsOnContextCancel(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	w, err := NewWatcher(filepath.Join(t.TempDir(), "profile.json"), zap.NewNop())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, w.Start(ctx))
	cancel()
	w.Stop()
}

func TestWatcherStopAfterFailedStart(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	blocker := filepath.Join(t.TempDir(), "not-a-dir")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

	w, err := NewWatcher(filepath.Join(blocker, "profile.json"), zap.NewNop())
	require.NoError(t, err)
	require.Error(t, w.Start(context.Background()))

	stopped := make(chan struct{})
	go func() {
		w.Stop()
		close(stopped)
	}()
	select {
	case <-stopped:
	case <-time.After(2 * time.Second):
		t.Fatal("Stop blocked after a failed Start")
	}
}
