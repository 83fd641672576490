package cli

import (
	"context"
	"log"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// treeWatcher reports writes to a fixed set of tree files.
type treeWatcher struct {
	watcher *fsnotify.Watcher
	files   map[string]string // cleaned path -> path as given
}

func newTreeWatcher(paths []string) (*treeWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	w := &treeWatcher{watcher: watcher, files: map[string]string{}}
	for _, p := range paths {
		if err := watcher.Add(p); err != nil {
			watcher.Close()
			return nil, err
		}
		w.files[filepath.Clean(p)] = p
	}
	return w, nil
}

// Run calls changed with the path of every written file until ctx is done
// or the watcher fails.
func (w *treeWatcher) Run(ctx context.Context, changed func(path string)) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&fsnotify.Write == fsnotify.Write {
				path, ok := w.files[filepath.Clean(event.Name)]
				if !ok {
					path = event.Name
				}
				changed(path)
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			log.Printf("watch: %v", err)
		}
	}
}

func (w *treeWatcher) Close() error {
	return w.watcher.Close()
}
