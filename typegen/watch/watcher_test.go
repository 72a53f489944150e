package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/teranos/movets/errors"
)

type recorder struct {
	mu    sync.Mutex
	calls [][]string
}

func (r *recorder) onChange(_ context.Context, changed []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, changed)
	return nil
}

func (r *recorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.calls)
}

func startWatcher(t *testing.T, w *Watcher) (cancel func()) {
	t.Helper()
	ctx, cancelCtx := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	return func() {
		cancelCtx()
		select {
		case err := <-done:
			assert.NoError(t, err)
		case <-time.After(2 * time.Second):
			t.Fatal("watcher did not stop")
		}
	}
}

func TestWatcherDebouncesChanges(t *testing.T) {
	dir := t.TempDir()
	idlPath := filepath.Join(dir, "idl.json")
	require.NoError(t, os.WriteFile(idlPath, []byte("{}"), 0644))

	rec := &recorder{}
	w, err := New([]string{idlPath}, 100*time.Millisecond, rec.onChange, nil)
	require.NoError(t, err)
	stop := startWatcher(t, w)
	defer stop()

	for i := 0; i < 3; i++ {
		require.NoError(t, os.WriteFile(idlPath, []byte(`{"name":"x"}`), 0644))
	}

	assert.Eventually(t, func() bool { return rec.count() == 1 }, 2*time.Second, 20*time.Millisecond)
	time.Sleep(300 * time.Millisecond)
	assert.Equal(t, 1, rec.count(), "a burst of writes triggers one call")

	rec.mu.Lock()
	assert.Equal(t, []string{idlPath}, rec.calls[0])
	rec.mu.Unlock()
}

func TestWatcherIgnoresUnrelatedFiles(t *testing.T) {
	dir := t.TempDir()
	idlPath := filepath.Join(dir, "idl.json")

	rec := &recorder{}
	w, err := New([]string{idlPath}, 50*time.Millisecond, rec.onChange, nil)
	require.NoError(t, err)
	stop := startWatcher(t, w)
	defer stop()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.json"), []byte("{}"), 0644))
	time.Sleep(300 * time.Millisecond)
	assert.Equal(t, 0, rec.count())

	require.NoError(t, os.WriteFile(idlPath, []byte("{}"), 0644))
	assert.Eventually(t, func() bool { return rec.count() == 1 }, 2*time.Second, 20*time.Millisecond,
		"creating a watched file counts as a change")
}

func TestWatcherLogsCallbackErrors(t *testing.T) {
	dir := t.TempDir()
	idlPath := filepath.Join(dir, "idl.json")
	core, logs := observer.New(zap.InfoLevel)

	failing := func(context.Context, []string) error { return errors.New("boom") }
	w, err := New([]string{idlPath}, 20*time.Millisecond, failing, zap.New(core).Sugar())
	require.NoError(t, err)
	stop := startWatcher(t, w)
	defer stop()

	require.NoError(t, os.WriteFile(idlPath, []byte("{}"), 0644))
	assert.Eventually(t, func() bool {
		return logs.FilterMessage("Regeneration failed").Len() > 0
	}, 2*time.Second, 20*time.Millisecond)
}

func TestRunWaitsForRunningCallback(t *testing.T) {
	dir := t.TempDir()
	idlPath := filepath.Join(dir, "idl.json")

	entered := make(chan struct{})
	release := make(chan struct{})
	var once sync.Once
	var finished atomic.Bool
	slow := func(context.Context, []string) error {
		once.Do(func() { close(entered) })
		<-release
		finished.Store(true)
		return nil
	}

	w, err := New([]string{idlPath}, 20*time.Millisecond, slow, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	require.NoError(t, os.WriteFile(idlPath, []byte("{}"), 0644))
	select {
	case <-entered:
	case <-time.After(2 * time.Second):
		t.Fatal("callback was not called")
	}

	cancel()
	select {
	case <-done:
		t.Fatal("Run returned while the callback was still running")
	case <-time.After(100 * time.Millisecond):
	}

	close(release)
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not stop")
	}
	assert.True(t, finished.Load())
}

func TestNewMissingDirectory(t *testing.T) {
	_, err := New([]string{filepath.Join(t.TempDir(), "absent", "idl.json")}, 0, nil, nil)
	require.Error(t, err)
	assert.True(t, errors.IsIOFailure(err))
}
