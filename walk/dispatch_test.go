package walk

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWalkFiltered(t *testing.T) {
	dir := t.TempDir()
	buildTree(t, dir, "test1.txt", "test2.txt", "test3.dat", "subdir/test4.txt")

	var mu sync.Mutex
	var processed []string

	err := WalkFiltered(context.Background(), dir, "txt", func(_ context.Context, path string) error {
		mu.Lock()
		defer mu.Unlock()
		processed = append(processed, path)
		return nil
	})

	require.NoError(t, err)
	assert.Len(t, processed, 3)
	for _, p := range processed {
		assert.Equal(t, ".txt", filepath.Ext(p))
	}
}

func TestWalkFilteredAwaitsAllHandlersOnFailure(t *testing.T) {
	dir := t.TempDir()
	buildTree(t, dir, "1.txt", "2.txt", "3.txt", "4.txt", "5.txt")

	failing := filepath.Join(dir, "3.txt")
	errBoom := errors.New("boom")
	var count atomic.Int32

	err := WalkFiltered(context.Background(), dir, "txt", func(_ context.Context, path string) error {
		defer count.Add(1)
		if path == failing {
			return errBoom
		}
		// give the failing handler a head start
		time.Sleep(20 * time.Millisecond)
		return nil
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, errBoom)
	assert.Contains(t, err.Error(), failing)
	assert.Equal(t, int32(5), count.Load())
}

func TestWalkFilteredRecoversPanics(t *testing.T) {
	dir := t.TempDir()
	buildTree(t, dir, "a.txt", "b.txt")

	var count atomic.Int32
	err := WalkFiltered(context.Background(), dir, "txt", func(_ context.Context, path string) error {
		count.Add(1)
		if filepath.Base(path) == "a.txt" {
			panic("handler aborted")
		}
		return nil
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrHandlerPanic)
	assert.Equal(t, int32(2), count.Load())
}

func TestWalkFilteredWithLimit(t *testing.T) {
	dir := t.TempDir()
	buildTree(t, dir, "a.txt", "b.txt", "c.txt", "d.txt", "e.txt", "f.txt")

	var running, peak atomic.Int32
	err := WalkFiltered(context.Background(), dir, "txt", func(context.Context, string) error {
		n := running.Add(1)
		defer running.Add(-1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		time.Sleep(10 * time.Millisecond)
		return nil
	}, WithLimit(2))

	require.NoError(t, err)
	assert.LessOrEqual(t, peak.Load(), int32(2))
}

func TestWalkFilteredCanceledContext(t *testing.T) {
	dir := t.TempDir()
	buildTree(t, dir, "a.txt", "b.txt")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var count atomic.Int32
	err := WalkFiltered(ctx, dir, "txt", func(context.Context, string) error {
		count.Add(1)
		return nil
	})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, count.Load())
}

func TestWalkFilteredNoMatches(t *testing.T) {
	dir := t.TempDir()
	buildTree(t, dir, "a.dat", ".git/b.txt")

	var paths []string
	err := WalkFiltered(context.Background(), dir, "txt", func(_ context.Context, path string) error {
		paths = append(paths, path)
		return nil
	})

	require.NoError(t, err)
	assert.Empty(t, paths)
}
