package server

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// reloadDebounce coalesces the burst of events an editor save produces.
const reloadDebounce = 250 * time.Millisecond

// CatalogWatcher reloads a Store when any watched catalog file changes.
type CatalogWatcher struct {
	store   *Store
	files   map[string]struct{}
	watcher *fsnotify.Watcher
}

// NewCatalogWatcher watches the directories holding paths. Empty paths are
// ignored; with no paths left the watcher is nil and no error is returned.
func NewCatalogWatcher(store *Store, paths ...string) (*CatalogWatcher, error) {
	files := make(map[string]struct{})
	dirs := make(map[string]struct{})
	for _, p := range paths {
		if p == "" {
			continue
		}
		abs, err := filepath.Abs(p)
		if err != nil {
			return nil, fmt.Errorf("resolving catalog path %s: %w", p, err)
		}
		files[abs] = struct{}{}
		dirs[filepath.Dir(abs)] = struct{}{}
	}
	if len(files) == 0 {
		return nil, nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating file watcher: %w", err)
	}
	// Watch directories, not files: editors replace files by rename.
	for dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			watcher.Close()
			return nil, fmt.Errorf("watching %s: %w", dir, err)
		}
	}

	return &CatalogWatcher{store: store, files: files, watcher: watcher}, nil
}

// Run handles fsnotify events until ctx is done, then closes the watcher.
func (w *CatalogWatcher) Run(ctx context.Context) {
	defer w.watcher.Close()

	var pending <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if w.relevant(event) {
				pending = time.After(reloadDebounce)
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			slog.Warn("Catalog watcher error", "error", err)
		case <-pending:
			pending = nil
			if err := w.store.Reload(); err != nil {
				slog.Warn("Catalog reload failed, keeping previous snapshot", "error", err)
			}
		}
	}
}

func (w *CatalogWatcher) relevant(event fsnotify.Event) bool {
	if _, ok := w.files[filepath.Clean(event.Name)]; !ok {
		return false
	}
	return event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0
}
