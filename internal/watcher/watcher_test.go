package watcher_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weftml/weft/internal/watcher"
)

func TestWatchDeliversTemplateBatch(t *testing.T) {
	dir := t.TempDir()

	w, err := watcher.New(50*time.Millisecond, nil, nil)
	require.NoError(t, err)
	defer w.Close()
	require.NoError(t, w.AddRecursive(dir))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	batches := make(chan []string, 1)
	go func() {
		_ = w.Run(ctx, func(paths []string) {
			select {
			case batches <- paths:
			default:
			}
		})
	}()

	// Give the watch loop a moment to start, then touch files. The two
	// writes land inside one debounce window.
	time.Sleep(100 * time.Millisecond)
	tpl := filepath.Join(dir, "page.weft")
	require.NoError(t, os.WriteFile(tpl, []byte("package v\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ignored.txt"), []byte("x"), 0o644))

	select {
	case batch := <-batches:
		assert.Contains(t, batch, tpl)
		for _, p := range batch {
			assert.True(t, filepath.Ext(p) == ".weft", "non-template path %s in batch", p)
		}
	case <-ctx.Done():
		t.Fatal("no batch delivered before timeout")
	}
}

func TestAddRecursiveSkipsExcluded(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "node_modules", "pkg"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "views"), 0o755))

	w, err := watcher.New(50*time.Millisecond, []string{"node_modules"}, nil)
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, w.AddRecursive(dir))

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	batches := make(chan []string, 1)
	go func() {
		_ = w.Run(ctx, func(paths []string) {
			select {
			case batches <- paths:
			default:
			}
		})
	}()

	time.Sleep(100 * time.Millisecond)
	// A template inside an excluded tree never produces a batch.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "node_modules", "pkg", "x.weft"), []byte("x"), 0o644))

	select {
	case batch := <-batches:
		t.Fatalf("unexpected batch from excluded directory: %v", batch)
	case <-time.After(400 * time.Millisecond):
	}
}
