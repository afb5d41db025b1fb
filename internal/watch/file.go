package watch

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/strandtui/strand/internal/log"
)

// FileWatcher watches a single file and invokes a callback after writes,
// debounced so editors that write in bursts trigger one reload. The watch is
// registered on the parent directory because many editors replace the file
// on save, which drops a watch registered on the file itself.
type FileWatcher struct {
	path     string
	watcher  *fsnotify.Watcher
	debounce *Debouncer
	done     chan struct{}
}

// NewFileWatcher starts watching path. onChange runs on a watcher goroutine
// after each debounced change; callers marshal back to their own loop.
func NewFileWatcher(path string, debounceDur time.Duration, onChange func()) (*FileWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving watch path: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating file watcher: %w", err)
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("watching %s: %w", filepath.Dir(abs), err)
	}

	fw := &FileWatcher{
		path:     abs,
		watcher:  watcher,
		debounce: NewDebouncer(debounceDur),
		done:     make(chan struct{}),
	}
	go fw.loop(onChange)

	log.Debug(log.CatLoader, "watching file", "path", abs)
	return fw, nil
}

func (fw *FileWatcher) loop(onChange func()) {
	for {
		select {
		case event, ok := <-fw.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != fw.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			log.Debug(log.CatLoader, "file changed", "op", event.Op.String())
			fw.debounce.Trigger(onChange)
		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}
			log.ErrorErr(log.CatLoader, "watch error", err)
		case <-fw.done:
			return
		}
	}
}

// Close stops the watcher and cancels any pending reload.
func (fw *FileWatcher) Close() error {
	close(fw.done)
	fw.debounce.Cancel()
	return fw.watcher.Close()
}
