package tracer

import (
	"io/fs"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/exp/slices"

	"github.com/keshon/litterbox/internal/fsio"
)

// Tracer records create events under a root directory while a test body
// runs. It is strictly advisory: events that the final snapshot diff also
// sees add nothing, but a file created and removed within one test is only
// visible here. Best effort by design; a lost event never causes a false
// failure.
type Tracer struct {
	root    string
	watcher *fsnotify.Watcher

	mu      sync.Mutex
	created map[string]struct{}

	done chan struct{}
}

// Start begins watching root and all current subdirectories.
func Start(root string) (*Tracer, error) {
	root = filepath.Clean(root)

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	t := &Tracer{
		root:    root,
		watcher: w,
		created: make(map[string]struct{}),
		done:    make(chan struct{}),
	}

	err = fsio.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return w.Add(path)
		}
		return nil
	})
	if err != nil {
		w.Close()
		return nil, err
	}

	go t.loop()
	return t, nil
}

func (t *Tracer) loop() {
	defer close(t.done)
	for {
		select {
		case ev, ok := <-t.watcher.Events:
			if !ok {
				return
			}
			if ev.Op&fsnotify.Create == 0 {
				continue
			}
			t.record(ev.Name)
			// new directories must be watched too
			if fsio.IsDir(ev.Name) {
				_ = t.watcher.Add(ev.Name)
			}
		case _, ok := <-t.watcher.Errors:
			if !ok {
				return
			}
		}
	}
}

func (t *Tracer) record(path string) {
	rel, err := filepath.Rel(t.root, path)
	if err != nil {
		return
	}
	t.mu.Lock()
	t.created[filepath.ToSlash(rel)] = struct{}{}
	t.mu.Unlock()
}

// Created returns the sorted paths seen so far without stopping the tracer.
func (t *Tracer) Created() []string {
	t.mu.Lock()
	paths := make([]string, 0, len(t.created))
	for p := range t.created {
		paths = append(paths, p)
	}
	t.mu.Unlock()
	slices.Sort(paths)
	return paths
}

// Stop shuts the watcher down and returns every created path recorded
// during the trace, sorted.
func (t *Tracer) Stop() []string {
	t.watcher.Close()
	<-t.done
	return t.Created()
}
