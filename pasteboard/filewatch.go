package pasteboard

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// fileDebounce coalesces the burst of write events editors produce when
// saving into a single re-classification.
const fileDebounce = 250 * time.Millisecond

// fileWatcher re-classifies file references when the file they name is
// written. It watches parent directories rather than the files themselves so
// atomic-rename saves are still seen.
//
// Re-classification happens on the run() goroutine only; the debounce timer
// callback just sends a signal.
type fileWatcher struct {
	history *History
	watcher *fsnotify.Watcher
	signals chan struct{} // capacity 1

	mu       sync.Mutex
	paths    map[string]bool // tracked file paths
	dirs     map[string]bool // watched directories
	dirty    map[string]bool // paths written since the last rebuild
	debounce *time.Timer
}

func newFileWatcher(h *History) (*fileWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &fileWatcher{
		history: h,
		watcher: w,
		signals: make(chan struct{}, 1),
		paths:   make(map[string]bool),
		dirs:    make(map[string]bool),
		dirty:   make(map[string]bool),
	}, nil
}

// sync makes the watched set match paths: new parent directories are added,
// directories no history item refers to any more are dropped.
func (fw *fileWatcher) sync(paths []string) {
	fw.mu.Lock()
	defer fw.mu.Unlock()

	wantPaths := make(map[string]bool, len(paths))
	wantDirs := make(map[string]bool, len(paths))
	for _, p := range paths {
		wantPaths[p] = true
		wantDirs[filepath.Dir(p)] = true
	}

	for dir := range wantDirs {
		if fw.dirs[dir] {
			continue
		}
		// Missing directories are skipped; the item keeps its captured content.
		if err := fw.watcher.Add(dir); err == nil {
			fw.dirs[dir] = true
		}
	}
	for dir := range fw.dirs {
		if !wantDirs[dir] {
			_ = fw.watcher.Remove(dir)
			delete(fw.dirs, dir)
		}
	}
	fw.paths = wantPaths
}

// sendSignal does a non-blocking send on the signals channel.
func (fw *fileWatcher) sendSignal() {
	select {
	case fw.signals <- struct{}{}:
	default:
	}
}

func (fw *fileWatcher) run(ctx context.Context) {
	defer fw.watcher.Close()
	defer func() {
		fw.mu.Lock()
		if fw.debounce != nil {
			fw.debounce.Stop()
		}
		fw.mu.Unlock()
	}()

	for {
		select {
		case <-ctx.Done():
			return

		case <-fw.signals:
			fw.rebuild()

		case event, ok := <-fw.watcher.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			path := filepath.Clean(event.Name)
			fw.mu.Lock()
			if fw.paths[path] {
				fw.dirty[path] = true
				if fw.debounce != nil {
					fw.debounce.Stop()
				}
				fw.debounce = time.AfterFunc(fileDebounce, fw.sendSignal)
			}
			fw.mu.Unlock()

		case _, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}
			// Transient; the next write event retries.
		}
	}
}

// rebuild re-classifies every dirty path and hands the result to the history.
func (fw *fileWatcher) rebuild() {
	fw.mu.Lock()
	dirty := fw.dirty
	fw.dirty = make(map[string]bool)
	fw.mu.Unlock()

	for path := range dirty {
		fw.history.refreshFile(path, fw.history.classifier.classifyFile(path))
	}
}
