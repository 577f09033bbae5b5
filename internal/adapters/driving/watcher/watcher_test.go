package watcher

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingReloader struct {
	calls atomic.Int32
}

func (r *countingReloader) Reload(context.Context) error {
	r.calls.Add(1)
	return nil
}

func startWatcher(t *testing.T, path string, r *countingReloader) {
	t.Helper()
	w, err := Watch(path, r)
	require.NoError(t, err)
	w.SetDebounce(20 * time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = w.Run(ctx)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})
}

func TestIndexWatcher_ReloadsOnReplace(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "index.kcc")
	r := &countingReloader{}
	startWatcher(t, path, r)

	tmp := path + ".tmp"
	require.NoError(t, os.WriteFile(tmp, []byte("v1"), 0600))
	require.NoError(t, os.Rename(tmp, path))

	assert.Eventually(t, func() bool { return r.calls.Load() >= 1 }, 2*time.Second, 10*time.Millisecond)
}

func TestIndexWatcher_DebouncesBurst(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "index.kcc")
	r := &countingReloader{}
	startWatcher(t, path, r)

	for i := 0; i < 5; i++ {
		require.NoError(t, os.WriteFile(path, []byte{byte(i)}, 0600))
	}

	assert.Eventually(t, func() bool { return r.calls.Load() >= 1 }, 2*time.Second, 10*time.Millisecond)
	time.Sleep(100 * time.Millisecond)
	assert.LessOrEqual(t, r.calls.Load(), int32(2))
}

func TestIndexWatcher_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	r := &countingReloader{}
	startWatcher(t, filepath.Join(dir, "index.kcc"), r)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "kcc.db"), []byte("x"), 0600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.kcc.tmp"), []byte("x"), 0600))

	time.Sleep(150 * time.Millisecond)
	assert.Zero(t, r.calls.Load())
}

func TestWatch_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")

	w, err := Watch(filepath.Join(dir, "index.kcc"), &countingReloader{})
	require.NoError(t, err)
	defer w.fs.Close()

	assert.DirExists(t, dir)
}
