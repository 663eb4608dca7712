package events

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/notare-dev/notare/internal/logging"
)

const debounceWindow = 100 * time.Millisecond

// Watcher reports changes anywhere under the note folder. fsnotify
// only watches single directories, so every subdirectory is added
// explicitly, including ones created while the session runs.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	rootDir   string
	events    chan struct{}
	stop      chan struct{}
	debounce  *time.Timer
	mu        sync.Mutex
	closed    bool
}

// NewWatcher starts watching rootDir and its visible subdirectories.
func NewWatcher(rootDir string) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		fsWatcher: fsw,
		rootDir:   rootDir,
		events:    make(chan struct{}, 1),
		stop:      make(chan struct{}),
	}

	if err := w.addRecursive(rootDir); err != nil {
		fsw.Close()
		return nil, err
	}

	go w.run()
	return w, nil
}

// addRecursive registers dir and its subdirectories, skipping hidden
// ones such as .git so editor and sync churn stays invisible.
func (w *Watcher) addRecursive(dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == dir {
				return err
			}
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if path != dir && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		return w.fsWatcher.Add(path)
	})
}

func (w *Watcher) run() {
	defer func() {
		w.mu.Lock()
		w.closed = true
		if w.debounce != nil {
			w.debounce.Stop()
		}
		w.mu.Unlock()
		close(w.events)
	}()

	for {
		select {
		case <-w.stop:
			return
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if hiddenPath(w.rootDir, event.Name) {
				continue
			}

			w.mu.Lock()
			// Editors save in bursts; collapse them into one signal.
			if w.debounce != nil {
				w.debounce.Stop()
			}
			w.debounce = time.AfterFunc(debounceWindow, func() {
				w.mu.Lock()
				defer w.mu.Unlock()

				if w.closed {
					return
				}

				select {
				case w.events <- struct{}{}:
				default:
				}
			})
			w.mu.Unlock()

			if event.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					_ = w.addRecursive(event.Name)
				}
			}
		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			logging.S().Debugw("watcher error", "err", err)
		}
	}
}

// hiddenPath reports whether path sits under a hidden directory or is
// itself hidden, relative to root.
func hiddenPath(root, path string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	for _, part := range strings.Split(filepath.ToSlash(rel), "/") {
		if part != "." && part != ".." && strings.HasPrefix(part, ".") {
			return true
		}
	}
	return false
}

// Events signals after a burst of file changes settles.
func (w *Watcher) Events() <-chan struct{} {
	return w.events
}

// Stop shuts the watcher down. Events is closed once the internal
// goroutine drains.
func (w *Watcher) Stop() {
	close(w.stop)
	w.fsWatcher.Close()
}
