package config

import (
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/bnlang/bnls/errors"
	"github.com/bnlang/bnls/logger"
)

// DefaultDebounce collapses the burst of events an editor save produces
const DefaultDebounce = 500 * time.Millisecond

// LoadFunc produces a fresh configuration
type LoadFunc func() (*Loaded, error)

// ReloadCallback is called with each successfully reloaded configuration
type ReloadCallback func(*Loaded) error

// Watcher watches config and vocabulary extension files and reloads on change.
// Parent directories are watched so that editors replacing a file by rename
// are still seen.
type Watcher struct {
	load      LoadFunc
	watcher   *fsnotify.Watcher
	callbacks []ReloadCallback
	debounce  time.Duration

	mu            sync.Mutex
	files         map[string]bool // cleaned paths that trigger a reload
	dirs          map[string]bool // directories added to fsnotify
	debounceTimer *time.Timer
	done          chan struct{}
}

// NewWatcher watches the files of an initial load. Each change calls load
// again and, on success, every callback.
func NewWatcher(initial *Loaded, load LoadFunc) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "failed to create fsnotify watcher")
	}

	w := &Watcher{
		load:     load,
		watcher:  fw,
		debounce: DefaultDebounce,
		files:    make(map[string]bool),
		dirs:     make(map[string]bool),
		done:     make(chan struct{}),
	}
	w.track(initial)
	return w, nil
}

// WatchedFiles returns the config and extension paths being watched
func WatchedFiles(l *Loaded) []string {
	var out []string
	for _, f := range l.Paths.files() {
		out = append(out, f.path)
	}
	return append(out, l.Config.Vocabulary.Extensions...)
}

// track replaces the watched set with the files of l
func (w *Watcher) track(l *Loaded) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.files = make(map[string]bool)
	for _, path := range WatchedFiles(l) {
		abs, err := filepath.Abs(path)
		if err != nil {
			continue
		}
		w.files[abs] = true

		dir := filepath.Dir(abs)
		if w.dirs[dir] {
			continue
		}
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			continue
		}
		if err := w.watcher.Add(dir); err != nil {
			logger.Warnw("Config watcher cannot watch directory", logger.FieldFile, dir, logger.FieldError, err)
			continue
		}
		w.dirs[dir] = true
	}
}

// SetDebounce changes the debounce period; call before Start.
func (w *Watcher) SetDebounce(d time.Duration) {
	w.debounce = d
}

// OnReload registers a callback to be called when config is reloaded
func (w *Watcher) OnReload(callback ReloadCallback) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.callbacks = append(w.callbacks, callback)
}

// Start begins watching for file changes
func (w *Watcher) Start() {
	go w.watchLoop()
}

func (w *Watcher) watchLoop() {
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			if !w.isWatched(event.Name) {
				continue
			}
			logger.Infow("Config watcher detected change",
				logger.FieldFile, event.Name,
				"op", event.Op.String())
			w.scheduleReload()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			logger.Warnw("Config watcher error", logger.FieldError, err)

		case <-w.done:
			return
		}
	}
}

func (w *Watcher) isWatched(name string) bool {
	abs, err := filepath.Abs(name)
	if err != nil {
		return false
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.files[abs]
}

// scheduleReload debounces rapid file changes and triggers reload
func (w *Watcher) scheduleReload() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.debounceTimer != nil {
		w.debounceTimer.Stop()
	}
	w.debounceTimer = time.AfterFunc(w.debounce, func() {
		if err := w.Reload(); err != nil {
			logger.Errorw("Config reload failed", logger.FieldError, err)
		}
	})
}

// Reload loads the configuration now and calls all callbacks. Callback
// errors are logged; the remaining callbacks still run.
func (w *Watcher) Reload() error {
	loaded, err := w.load()
	if err != nil {
		return errors.Wrap(err, "failed to load config")
	}
	if err := loaded.Config.Validate(); err != nil {
		return errors.Wrap(err, "reloaded config is invalid")
	}
	w.track(loaded)

	logger.Infow("Config reloaded successfully", "files", loaded.Files)

	w.mu.Lock()
	callbacks := make([]ReloadCallback, len(w.callbacks))
	copy(callbacks, w.callbacks)
	w.mu.Unlock()

	for _, callback := range callbacks {
		if err := callback(loaded); err != nil {
			logger.Warnw("Config reload callback error", logger.FieldError, err)
		}
	}
	return nil
}

// Stop stops watching for changes
func (w *Watcher) Stop() error {
	w.mu.Lock()
	if w.debounceTimer != nil {
		w.debounceTimer.Stop()
	}
	select {
	case <-w.done:
	default:
		close(w.done)
	}
	w.mu.Unlock()
	return w.watcher.Close()
}
