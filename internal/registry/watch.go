package registry

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long Watch waits for a burst of writes to settle.
const DefaultDebounce = 200 * time.Millisecond

// Watch re-applies the manifest at path whenever it changes, until ctx is
// done. The containing directory is watched so editors that replace the
// file by rename are picked up. The initial load is the caller's job.
func (r *Registrar) Watch(ctx context.Context, path string, debounce time.Duration) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}

	dir := filepath.Dir(path)
	if err := w.Add(dir); err != nil {
		_ = w.Close()
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	go r.watchLoop(ctx, w, filepath.Clean(path), debounce)
	return nil
}

func (r *Registrar) watchLoop(ctx context.Context, w *fsnotify.Watcher, path string, debounce time.Duration) {
	defer func() { _ = w.Close() }()

	timer := time.NewTimer(debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	source := ManifestSource(path)
	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-w.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			timer.Reset(debounce)

		case <-timer.C:
			sets, err := LoadManifest(path)
			if err != nil {
				r.logger.Error("registrar: reload %s: %v", path, err)
				continue
			}
			report := r.Apply(source, sets)
			r.logger.Info("registrar: reloaded %s (+%d -%d)", path, len(report.Registered), len(report.Removed))

		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			r.logger.Warn("registrar: watch %s: %v", path, err)
		}
	}
}

// ManifestSource is the source name Watch applies a manifest under. Use it
// for the initial Apply so reloads diff against it.
func ManifestSource(path string) string {
	return "manifest:" + filepath.Clean(path)
}
