// Package watch reruns generation when its inputs change on disk.
package watch

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/teranos/movets/errors"
	"github.com/teranos/movets/logger"
)

// DefaultDebounce is used when New gets a non-positive debounce period.
const DefaultDebounce = 300 * time.Millisecond

// ChangeFunc is called once per burst of changes with the paths that changed.
// Its error is logged and does not stop the watcher.
type ChangeFunc func(ctx context.Context, changed []string) error

// Watcher watches a set of files and calls a ChangeFunc after changes
// settle. Parent directories are watched rather than the files so that
// editors replacing a file by rename are still seen.
type Watcher struct {
	files    map[string]bool
	watcher  *fsnotify.Watcher
	debounce time.Duration
	onChange ChangeFunc
	logger   *zap.SugaredLogger

	mu      sync.Mutex
	timer   *time.Timer
	pending map[string]bool
	closed  bool

	runMu    sync.Mutex // serializes onChange calls
	inflight sync.WaitGroup
}

// New creates a watcher over files. Files need not exist yet, but their
// directories must.
func New(files []string, debounce time.Duration, onChange ChangeFunc, log *zap.SugaredLogger) (*Watcher, error) {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	if log == nil {
		log = zap.NewNop().Sugar()
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "failed to create fsnotify watcher")
	}

	w := &Watcher{
		files:    make(map[string]bool, len(files)),
		watcher:  fw,
		debounce: debounce,
		onChange: onChange,
		logger:   log,
		pending:  make(map[string]bool),
	}

	dirs := make(map[string]bool)
	for _, f := range files {
		abs, err := filepath.Abs(f)
		if err != nil {
			fw.Close()
			return nil, errors.WrapIO(err, f)
		}
		w.files[abs] = true
		dirs[filepath.Dir(abs)] = true
	}
	for dir := range dirs {
		if err := fw.Add(dir); err != nil {
			fw.Close()
			return nil, errors.WithHint(errors.WrapIO(err, dir), "the directory of every watched file must exist")
		}
	}
	return w, nil
}

// Run processes events until ctx is done, then closes the watcher. It
// returns only after a running onChange call has finished.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			path := filepath.Clean(event.Name)
			if !w.files[path] {
				continue
			}
			w.logger.Debugw("Watcher detected change",
				logger.FieldPath, path,
				"op", event.Op.String())
			w.schedule(ctx, path)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warnw("Watcher error", logger.FieldError, err)
		}
	}
}

// schedule debounces rapid changes into one onChange call.
func (w *Watcher) schedule(ctx context.Context, path string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.pending[path] = true
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, func() { w.fire(ctx) })
}

func (w *Watcher) fire(ctx context.Context) {
	w.mu.Lock()
	if w.closed || ctx.Err() != nil {
		w.mu.Unlock()
		return
	}
	w.inflight.Add(1)
	w.mu.Unlock()
	defer w.inflight.Done()

	w.runMu.Lock()
	defer w.runMu.Unlock()

	w.mu.Lock()
	changed := make([]string, 0, len(w.pending))
	for p := range w.pending {
		changed = append(changed, p)
	}
	w.pending = make(map[string]bool)
	w.mu.Unlock()
	if len(changed) == 0 {
		return
	}

	start := time.Now()
	if err := w.onChange(ctx, changed); err != nil {
		w.logger.Errorw("Regeneration failed",
			logger.FieldError, err,
			logger.FieldCount, len(changed))
		return
	}
	w.logger.Infow("Regenerated",
		logger.FieldCount, len(changed),
		logger.FieldDurationMS, time.Since(start).Milliseconds())
}

// stop cancels a pending call and waits for a running one.
func (w *Watcher) stop() {
	w.mu.Lock()
	w.closed = true
	if w.timer != nil {
		w.timer.Stop()
	}
	w.mu.Unlock()
	w.watcher.Close()
	w.inflight.Wait()
}
