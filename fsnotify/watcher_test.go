package fsnotify_test

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fwojciec/huaci/fs"
	"github.com/fwojciec/huaci/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testDebounce = 100 * time.Millisecond

func newWatcher(t *testing.T) (*fsnotify.Watcher, string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("deck-name = \"a\"\n"), 0644))

	w := fsnotify.NewWatcher(path)
	w.Debounce = testDebounce
	t.Cleanup(func() { w.Close() })
	return w, path
}

func waitChange(t *testing.T, w *fsnotify.Watcher) {
	t.Helper()
	select {
	case <-w.Changes():
	case err := <-w.Errors():
		t.Fatalf("unexpected watch error: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for change")
	}
}

func assertNoChange(t *testing.T, w *fsnotify.Watcher, wait time.Duration) {
	t.Helper()
	select {
	case <-w.Changes():
		t.Fatal("unexpected change notification")
	case <-time.After(wait):
	}
}

func TestWatcher_Start(t *testing.T) {
	t.Parallel()

	t.Run("second start reports already watching", func(t *testing.T) {
		t.Parallel()

		w, _ := newWatcher(t)

		started, err := w.Start(context.Background())
		require.NoError(t, err)
		assert.True(t, started)

		started, err = w.Start(context.Background())
		require.NoError(t, err)
		assert.False(t, started)
	})

	t.Run("concurrent starts start exactly once", func(t *testing.T) {
		t.Parallel()

		w, _ := newWatcher(t)

		var wg sync.WaitGroup
		var count atomic.Int32
		for range 10 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				started, err := w.Start(context.Background())
				assert.NoError(t, err)
				if started {
					count.Add(1)
				}
			}()
		}
		wg.Wait()

		assert.Equal(t, int32(1), count.Load())
	})

	t.Run("cannot start after close", func(t *testing.T) {
		t.Parallel()

		w, _ := newWatcher(t)
		require.NoError(t, w.Close())

		started, err := w.Start(context.Background())
		require.NoError(t, err)
		assert.False(t, started)
	})

	t.Run("returns error when the directory does not exist", func(t *testing.T) {
		t.Parallel()

		w := fsnotify.NewWatcher(filepath.Join(t.TempDir(), "missing", "config.toml"))

		started, err := w.Start(context.Background())
		assert.Error(t, err)
		assert.False(t, started)
	})

	t.Run("close waits for a canceled watch", func(t *testing.T) {
		t.Parallel()

		w, _ := newWatcher(t)
		ctx, cancel := context.WithCancel(context.Background())

		_, err := w.Start(ctx)
		require.NoError(t, err)
		cancel()

		assert.NoError(t, w.Close())
	})
}

func TestWatcher_Changes(t *testing.T) {
	t.Parallel()

	t.Run("reports a write", func(t *testing.T) {
		t.Parallel()

		w, path := newWatcher(t)
		_, err := w.Start(context.Background())
		require.NoError(t, err)

		require.NoError(t, os.WriteFile(path, []byte("deck-name = \"b\"\n"), 0644))

		waitChange(t, w)
	})

	t.Run("reports a rename into place", func(t *testing.T) {
		t.Parallel()

		w, path := newWatcher(t)
		_, err := w.Start(context.Background())
		require.NoError(t, err)

		require.NoError(t, fs.WriteFile(path, []byte("deck-name = \"b\"\n"), 0644))

		waitChange(t, w)
	})

	t.Run("coalesces a burst into one notification", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "config.toml")
		require.NoError(t, os.WriteFile(path, nil, 0644))
		w := fsnotify.NewWatcher(path)
		w.Debounce = 500 * time.Millisecond
		t.Cleanup(func() { w.Close() })

		_, err := w.Start(context.Background())
		require.NoError(t, err)

		for i := range 5 {
			require.NoError(t, os.WriteFile(path, []byte{byte('a' + i)}, 0644))
		}

		waitChange(t, w)
		assertNoChange(t, w, time.Second)
	})

	t.Run("suppresses deletion", func(t *testing.T) {
		t.Parallel()

		w, path := newWatcher(t)
		_, err := w.Start(context.Background())
		require.NoError(t, err)

		require.NoError(t, os.Remove(path))

		assertNoChange(t, w, 5*testDebounce)
	})

	t.Run("ignores other files in the directory", func(t *testing.T) {
		t.Parallel()

		w, path := newWatcher(t)
		_, err := w.Start(context.Background())
		require.NoError(t, err)

		other := filepath.Join(filepath.Dir(path), "other.toml")
		require.NoError(t, os.WriteFile(other, []byte("x"), 0644))

		assertNoChange(t, w, 5*testDebounce)
	})

	t.Run("stops reporting after close", func(t *testing.T) {
		t.Parallel()

		w, path := newWatcher(t)
		_, err := w.Start(context.Background())
		require.NoError(t, err)
		require.NoError(t, w.Close())

		require.NoError(t, os.WriteFile(path, []byte("x"), 0644))

		assertNoChange(t, w, 5*testDebounce)
	})
}
