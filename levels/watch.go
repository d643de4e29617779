package levels

import (
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// debounce drops repeated events for the same file. Editors often write a
// file several times per save.
const debounce = 100 * time.Millisecond

// Watcher reports changes to world files. It watches the containing
// directory so editors that replace the file on save are still seen.
type Watcher struct {
	watcher *fsnotify.Watcher
	// Events receives the path of each changed world file.
	Events  chan string
	Errors  chan error
	closeCh chan struct{}
	once    sync.Once
	file    string
}

// NewWatcher watches path, a world file on disk.
func NewWatcher(path string) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		_ = w.Close()
		return nil, err
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		_ = w.Close()
		return nil, err
	}

	watcher := &Watcher{
		watcher: w,
		Events:  make(chan string, 16),
		Errors:  make(chan error, 1),
		closeCh: make(chan struct{}),
		file:    abs,
	}
	go watcher.run()
	return watcher, nil
}

func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
	})
	return err
}

// Drain returns whether any change arrived since the last call, without
// blocking. Errors are returned as they come.
func (w *Watcher) Drain() (bool, error) {
	changed := false
	for {
		select {
		case _, ok := <-w.Events:
			if !ok {
				return changed, nil
			}
			changed = true
		case err := <-w.Errors:
			return changed, err
		default:
			return changed, nil
		}
	}
}

func (w *Watcher) run() {
	last := make(map[string]time.Time)
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if !w.matches(event.Name) {
				continue
			}
			now := time.Now()
			if t, ok := last[event.Name]; ok && now.Sub(t) < debounce {
				continue
			}
			last[event.Name] = now
			select {
			case w.Events <- event.Name:
			case <-w.closeCh:
				return
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			select {
			case w.Errors <- err:
			default:
			}
		case <-w.closeCh:
			return
		}
	}
}

func (w *Watcher) matches(name string) bool {
	if !isWorldFile(name) {
		return false
	}
	abs, err := filepath.Abs(name)
	return err == nil && abs == w.file
}

func isWorldFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}
