package config

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/jmylchreest/elevateui/internal/debounce"
)

// Watcher reloads the config file when it changes on disk. Editors tend to
// emit several events per save, so reloads are debounced.
type Watcher struct {
	path     string
	logger   *slog.Logger
	onChange func(*Config)
	reload   *debounce.Debouncer[struct{}]
}

// NewWatcher creates a watcher for path. onChange receives each successfully
// reloaded config; invalid files are logged and skipped. A non-positive wait
// uses the debouncer default.
func NewWatcher(path string, wait time.Duration, onChange func(*Config), logger *slog.Logger) *Watcher {
	if logger == nil {
		logger = slog.Default()
	}
	if path == "" {
		path = ConfigPath()
	}

	w := &Watcher{
		path:     path,
		logger:   logger,
		onChange: onChange,
	}
	w.reload = debounce.New(func(struct{}) { w.load() }, wait)
	return w
}

// Path returns the watched file.
func (w *Watcher) Path() string {
	return w.path
}

// Run watches until ctx is cancelled. The parent directory is watched rather
// than the file so that atomic renames by editors are seen.
func (w *Watcher) Run(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer fsw.Close()
	defer w.reload.Cancel()

	dir := filepath.Dir(w.path)
	if err := fsw.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	w.logger.Debug("config watcher started", "path", w.path, "wait", w.reload.Wait())

	filename := filepath.Base(w.path)
	for {
		select {
		case <-ctx.Done():
			w.logger.Debug("config watcher stopped")
			return nil

		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if filepath.Base(event.Name) != filename {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				w.reload.Call(struct{}{})
			}

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("config watcher error", "error", err)
		}
	}
}

func (w *Watcher) load() {
	cfg, err := LoadConfig(w.path)
	if err != nil {
		w.logger.Warn("failed to reload config", "path", w.path, "error", err)
		return
	}
	w.logger.Info("config reloaded", "path", w.path)
	if w.onChange != nil {
		w.onChange(cfg)
	}
}
