package config

import (
	"context"
	"fmt"
	"log"
	"path/filepath"

	"logmon/internal/types"

	"github.com/fsnotify/fsnotify"
)

// Watcher reloads the configuration file whenever it is written or replaced
type Watcher struct {
	path     string
	onReload func(*types.Config)
	watcher  *fsnotify.Watcher
}

// NewWatcher watches the directory holding path, so editors that replace the
// file through a rename are still noticed.
func NewWatcher(path string, onReload func(*types.Config)) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create config watcher: %w", err)
	}
	if err := w.Add(filepath.Dir(path)); err != nil {
		w.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", path, err)
	}
	return &Watcher{
		path:     filepath.Clean(path),
		onReload: onReload,
		watcher:  w,
	}, nil
}

// Run blocks until ctx is done
func (w *Watcher) Run(ctx context.Context) {
	defer w.watcher.Close()

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			w.reload()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("[CONFIG] Watcher error: %v", err)
		}
	}
}

func (w *Watcher) reload() {
	cfg, err := LoadConfig(w.path)
	if err != nil {
		log.Printf("[CONFIG] Reload of %s failed, keeping previous configuration: %v", w.path, err)
		return
	}
	w.onReload(cfg)
}
