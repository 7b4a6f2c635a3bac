package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRelevant(t *testing.T) {
	target := filepath.Join(t.TempDir(), "model.smd")

	tests := []struct {
		name string
		ev   fsnotify.Event
		want bool
	}{
		{"write", fsnotify.Event{Name: target, Op: fsnotify.Write}, true},
		{"create", fsnotify.Event{Name: target, Op: fsnotify.Create}, true},
		{"write and chmod", fsnotify.Event{Name: target, Op: fsnotify.Write | fsnotify.Chmod}, true},
		{"chmod only", fsnotify.Event{Name: target, Op: fsnotify.Chmod}, false},
		{"remove", fsnotify.Event{Name: target, Op: fsnotify.Remove}, false},
		{"sibling", fsnotify.Event{Name: filepath.Join(filepath.Dir(target), "other.smd"), Op: fsnotify.Write}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, relevant(target, tt.ev))
		})
	}
}

func TestWatch_ReportsWrites(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "model.smd")
	require.NoError(t, os.WriteFile(target, []byte("version 1\n"), 0644))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes := make(chan string, 4)
	done := make(chan error, 1)
	w := &Watcher{Debounce: 10 * time.Millisecond}
	go func() {
		done <- w.Watch(ctx, target, func(p string) { changes <- p })
	}()

	go func() {
		time.Sleep(50 * time.Millisecond)
		os.WriteFile(filepath.Join(dir, "unrelated.txt"), []byte("x"), 0644)
		os.WriteFile(target, []byte("version 1\nnodes\nend\n"), 0644)
	}()

	select {
	case p := <-changes:
		assert.Equal(t, target, p)
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for change")
	}

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("watch did not stop on cancel")
	}
}

func TestWatch_MissingDirectory(t *testing.T) {
	err := New().Watch(context.Background(), filepath.Join(t.TempDir(), "nope", "m.smd"), func(string) {})
	assert.ErrorContains(t, err, "watch: add")
}
