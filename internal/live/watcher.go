package live

import (
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// Watcher reloads a simulation file when it changes on disk and
// publishes the outcome to a broadcaster.
type Watcher struct {
	path        string
	reload      func(path string) error
	broadcaster *Broadcaster
	watcher     *fsnotify.Watcher
	done        chan struct{}
	log         zerolog.Logger
}

// NewWatcher watches path; reload is invoked on every write to it.
func NewWatcher(path string, reload func(path string) error, b *Broadcaster, log zerolog.Logger) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	// Watch the directory rather than the file: editors that replace the
	// file on save would otherwise drop the watch.
	if err := fw.Add(filepath.Dir(path)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", filepath.Dir(path), err)
	}

	w := &Watcher{
		path:        path,
		reload:      reload,
		broadcaster: b,
		watcher:     fw,
		done:        make(chan struct{}),
		log:         log,
	}
	go w.run()
	return w, nil
}

func (w *Watcher) run() {
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != filepath.Clean(w.path) {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			w.handleChange()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.log.Error().Err(err).Msg("File watcher error")

		case <-w.done:
			return
		}
	}
}

func (w *Watcher) handleChange() {
	if err := w.reload(w.path); err != nil {
		w.log.Error().Err(err).Str("path", w.path).Msg("Failed to reload simulation")
		w.broadcaster.Publish(Event{Type: "error", Path: w.path, Detail: err.Error()})
		return
	}
	w.log.Info().Str("path", w.path).Msg("Reloaded simulation")
	w.broadcaster.Publish(Event{Type: "reloaded", Path: w.path})
}

// Close stops watching.
func (w *Watcher) Close() error {
	close(w.done)
	return w.watcher.Close()
}
