package watcher

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/hashicorp/go-hclog"
)

// DefaultDebounce batches rapid editor saves into one validation pass.
const DefaultDebounce = 500 * time.Millisecond

// Watcher re-runs a callback whenever documents under the root change.
// Events are debounced so a burst of saves triggers a single pass.
type Watcher struct {
	root       string
	extensions map[string]struct{}
	debounce   time.Duration
	onChange   func(context.Context)
	logger     hclog.Logger
	fs         *fsnotify.Watcher
}

// New builds a Watcher over the given root. onChange runs on the watch
// goroutine after changes settle.
func New(root string, extensions []string, debounce time.Duration, onChange func(context.Context), logger hclog.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	extSet := make(map[string]struct{}, len(extensions))
	for _, ext := range extensions {
		extSet[strings.ToLower(ext)] = struct{}{}
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	return &Watcher{
		root:       root,
		extensions: extSet,
		debounce:   debounce,
		onChange:   onChange,
		logger:     logger,
		fs:         fsw,
	}, nil
}

// Run blocks until the context is cancelled, invoking the callback after
// each settled batch of relevant events.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.fs.Close()

	if err := w.addRecursive(w.root); err != nil {
		return err
	}
	w.logger.Info("watching for changes", "root", w.root, "debounce", w.debounce)

	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	pending := false

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			w.logger.Debug("filesystem event", "op", event.Op.String(), "path", event.Name)
			if pending {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
			}
			timer.Reset(w.debounce)
			pending = true

		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("watch error", "error", err)

		case <-timer.C:
			pending = false
			w.onChange(ctx)
		}
	}
}

// relevant reports whether an event should trigger a pass. Newly created
// directories are added to the watch set as a side effect.
func (w *Watcher) relevant(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
		return false
	}

	if event.Op&fsnotify.Create != 0 {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := w.addRecursive(event.Name); err != nil {
				w.logger.Warn("failed to watch new directory", "path", event.Name, "error", err)
			}
			return true
		}
	}

	_, ok := w.extensions[strings.ToLower(filepath.Ext(event.Name))]
	return ok
}

// addRecursive registers the directory and all its subdirectories.
func (w *Watcher) addRecursive(dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == dir {
				return err
			}
			w.logger.Warn("skipping unreadable directory", "path", path, "error", err)
			return fs.SkipDir
		}
		if !d.IsDir() {
			return nil
		}
		return w.fs.Add(path)
	})
}
