package inventory

import (
	"context"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/teranos/otml/errors"
	"github.com/teranos/otml/grammar"
	"github.com/teranos/otml/logger"
)

// ReloadCallback is called with the freshly built table after a reload
type ReloadCallback func(*grammar.FeatureTable)

// ErrorCallback is called when a reload fails; the previous table stays current
type ErrorCallback func(error)

// Watcher keeps a feature table in sync with its inventory file.
type Watcher struct {
	path       string
	format     Format
	schemaPath string

	current atomic.Pointer[grammar.FeatureTable]
	limiter *rate.Limiter
	log     *zap.SugaredLogger

	mu             sync.Mutex
	onReload       []ReloadCallback
	onError        []ErrorCallback
	debounceTimer  *time.Timer
	debouncePeriod time.Duration
	pending        *rate.Reservation // held while a throttled reload waits for its slot

	watcher *fsnotify.Watcher
	done    chan struct{}
	stopped sync.Once
}

// WatcherOption configures a Watcher
type WatcherOption func(*Watcher)

// WithDebounce sets how long the watcher waits for writes to settle (default 200ms)
func WithDebounce(d time.Duration) WatcherOption {
	return func(w *Watcher) { w.debouncePeriod = d }
}

// WithReloadLimit caps reloads to every interval with the given burst
func WithReloadLimit(every time.Duration, burst int) WatcherOption {
	return func(w *Watcher) { w.limiter = rate.NewLimiter(rate.Every(every), burst) }
}

// WithSchema sets the schema used for tabular inventories
func WithSchema(schemaPath string) WatcherOption {
	return func(w *Watcher) { w.schemaPath = schemaPath }
}

// NewWatcher loads the inventory at path once and returns a watcher for it.
// The initial load must succeed.
func NewWatcher(path string, format Format, opts ...WatcherOption) (*Watcher, error) {
	w := &Watcher{
		path:           path,
		format:         format,
		limiter:        rate.NewLimiter(rate.Every(time.Second), 3),
		debouncePeriod: 200 * time.Millisecond,
		done:           make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	w.log = logger.ChildLogger(logger.ComponentLogger("inventory.watcher"), logger.FieldFile, path)

	table, err := Load(path, format, w.schemaPath)
	if err != nil {
		return nil, err
	}
	w.current.Store(table)
	return w, nil
}

// Current returns the most recently built table
func (w *Watcher) Current() *grammar.FeatureTable {
	return w.current.Load()
}

// Path returns the watched inventory file
func (w *Watcher) Path() string {
	return w.path
}

// OnReload registers a callback for successful reloads
func (w *Watcher) OnReload(cb ReloadCallback) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onReload = append(w.onReload, cb)
}

// OnError registers a callback for failed reloads
func (w *Watcher) OnError(cb ErrorCallback) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onError = append(w.onError, cb)
}

// Start begins watching. It returns once the file system watch is in place;
// events are handled in the background until ctx is done or Stop is called.
func (w *Watcher) Start(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "failed to create fsnotify watcher")
	}
	// Editors replace files on save, so watch the directory and filter by name
	dir := filepath.Dir(w.path)
	if err := fw.Add(dir); err != nil {
		fw.Close()
		return errors.Wrapf(err, "failed to watch %s", dir)
	}
	w.watcher = fw

	w.log.Infow("Watching feature table")
	go w.watchLoop(ctx)
	return nil
}

// Stop stops watching. Safe to call more than once.
func (w *Watcher) Stop() error {
	var err error
	w.stopped.Do(func() {
		close(w.done)
		w.mu.Lock()
		w.stopTimerLocked()
		w.mu.Unlock()
		if w.watcher != nil {
			err = w.watcher.Close()
		}
	})
	return err
}

func (w *Watcher) watchLoop(ctx context.Context) {
	target := filepath.Clean(w.path)
	for {
		select {
		case <-ctx.Done():
			w.Stop()
			return
		case <-w.done:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			w.log.Debugw("Feature table change detected", "op", event.Op.String())
			w.scheduleReload()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.log.Warnw("Watcher error", logger.FieldError, err)
		}
	}
}

// scheduleReload debounces rapid file changes
func (w *Watcher) scheduleReload() {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.stopTimerLocked()
	w.debounceTimer = time.AfterFunc(w.debouncePeriod, w.throttledReload)
}

// stopTimerLocked cancels any queued reload and returns its reserved slot
func (w *Watcher) stopTimerLocked() {
	if w.debounceTimer != nil {
		w.debounceTimer.Stop()
	}
	if w.pending != nil {
		w.pending.Cancel()
		w.pending = nil
	}
}

// throttledReload reloads now if the limiter allows it, otherwise it
// reserves the next slot and reloads then, so the last change always lands.
func (w *Watcher) throttledReload() {
	if w.isStopped() {
		return
	}

	r := w.limiter.Reserve()
	if !r.OK() {
		w.log.Warnw("Reload limiter admits no reloads")
		return
	}
	delay := r.Delay()
	if delay == 0 {
		w.Reload()
		return
	}

	w.log.Debugw("Reload throttled", "retry_in", delay.String())
	w.mu.Lock()
	defer w.mu.Unlock()
	w.pending = r
	w.debounceTimer = time.AfterFunc(delay, func() {
		w.mu.Lock()
		if w.pending != r {
			// superseded by a newer change
			w.mu.Unlock()
			return
		}
		w.pending = nil
		w.mu.Unlock()
		if !w.isStopped() {
			w.Reload()
		}
	})
}

func (w *Watcher) isStopped() bool {
	select {
	case <-w.done:
		return true
	default:
		return false
	}
}

// Reload rebuilds the table from disk now. On failure the current table is
// kept and the error is returned and passed to the OnError callbacks.
func (w *Watcher) Reload() error {
	table, err := Load(w.path, w.format, w.schemaPath)

	w.mu.Lock()
	onReload := append([]ReloadCallback(nil), w.onReload...)
	onError := append([]ErrorCallback(nil), w.onError...)
	w.mu.Unlock()

	if err != nil {
		w.log.Errorw("Feature table reload failed", logger.FieldError, err)
		for _, cb := range onError {
			cb(err)
		}
		return err
	}

	w.current.Store(table)
	w.log.Infow("Feature table reloaded",
		logger.FieldSegments, len(table.Alphabet()))
	for _, cb := range onReload {
		cb(table)
	}
	return nil
}
