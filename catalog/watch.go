package catalog

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const debounce = 100 * time.Millisecond

const reloadOps = fsnotify.Write | fsnotify.Create | fsnotify.Rename | fsnotify.Remove

// Watcher reports changed catalog, preset and capability files under the
// watched directories. Names are delivered on Events; the consumer decides
// what to reload. Errors keeps only the first undelivered error.
type Watcher struct {
	fs     *fsnotify.Watcher
	Events chan string
	Errors chan error

	done chan struct{}
	stop sync.Once
	// seen holds the last delivery per file for debouncing. Only run
	// touches it.
	seen map[string]time.Time
}

// NewWatcher starts watching dirs. Subdirectories are not followed.
func NewWatcher(dirs ...string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("catalog: watch: %w", err)
	}
	for _, dir := range dirs {
		if err := fw.Add(dir); err != nil {
			_ = fw.Close()
			return nil, fmt.Errorf("catalog: watch %s: %w", dir, err)
		}
	}

	w := &Watcher{
		fs:     fw,
		Events: make(chan string, 16),
		Errors: make(chan error, 1),
		done:   make(chan struct{}),
		seen:   make(map[string]time.Time),
	}
	go w.run()
	return w, nil
}

// Close stops the watcher. Events and Errors are closed once the loop exits.
func (w *Watcher) Close() error {
	var err error
	w.stop.Do(func() {
		close(w.done)
		err = w.fs.Close()
	})
	return err
}

func (w *Watcher) run() {
	defer close(w.Events)
	defer close(w.Errors)

	for {
		select {
		case <-w.done:
			return
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			select {
			case w.Errors <- err:
			default:
			}
		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if !w.wants(ev, time.Now()) {
				continue
			}
			select {
			case w.Events <- ev.Name:
			case <-w.done:
				return
			}
		}
	}
}

// wants filters ev down to reloadable files and drops repeats of the same
// file within the debounce window.
func (w *Watcher) wants(ev fsnotify.Event, now time.Time) bool {
	if ev.Op&reloadOps == 0 || !IsWatched(ev.Name) {
		return false
	}
	if last, ok := w.seen[ev.Name]; ok && now.Sub(last) < debounce {
		return false
	}
	w.seen[ev.Name] = now
	return true
}

// IsWatched reports whether path is a file the editor reloads on change.
func IsWatched(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".tengo":
		return true
	}
	return false
}

// Drain returns the names received so far without blocking. Names are
// de-duplicated; a closed watcher yields nil.
func (w *Watcher) Drain() []string {
	var out []string
	seen := map[string]bool{}
	for {
		select {
		case name, ok := <-w.Events:
			if !ok {
				return out
			}
			if !seen[name] {
				seen[name] = true
				out = append(out, name)
			}
		default:
			return out
		}
	}
}
