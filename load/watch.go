package load

import (
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/syssam/sqldml"
)

// ApplyFunc receives the re-parsed annotations after the watched file
// changes.
type ApplyFunc func(map[string]sqldml.Annotation)

// Watcher reloads a YAML override file when it changes on disk and
// hands the parsed annotations to an apply callback. It is meant for
// development setups where override files are edited live.
type Watcher struct {
	path     string
	apply    ApplyFunc
	debounce time.Duration
	fw       *fsnotify.Watcher
	done     chan struct{}
}

// WatchOption configures a Watcher.
type WatchOption func(*Watcher)

// WithDebounce sets the interval changes are coalesced over before a
// reload. Default is 250ms.
func WithDebounce(d time.Duration) WatchOption {
	return func(w *Watcher) {
		w.debounce = d
	}
}

// Watch parses the file at the given path, hands the result to apply,
// and keeps re-applying it on every change until Close is called.
// Parse failures of later revisions are logged and skipped, keeping the
// last good annotations applied.
func Watch(path string, apply ApplyFunc, opts ...WatchOption) (*Watcher, error) {
	ants, err := ParseFile(path)
	if err != nil {
		return nil, err
	}
	apply(ants)
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	// Watch the directory: editors often replace the file on save,
	// which drops a watch registered on the file itself.
	if err := fw.Add(filepath.Dir(path)); err != nil {
		fw.Close()
		return nil, err
	}
	w := &Watcher{
		path:     path,
		apply:    apply,
		debounce: 250 * time.Millisecond,
		fw:       fw,
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	go w.loop()
	return w, nil
}

// Close stops watching the file.
func (w *Watcher) Close() error {
	close(w.done)
	return w.fw.Close()
}

func (w *Watcher) loop() {
	var timer *time.Timer
	var pending <-chan time.Time
	for {
		select {
		case <-w.done:
			return
		case ev, ok := <-w.fw.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != filepath.Clean(w.path) {
				continue
			}
			if !ev.Op.Has(fsnotify.Write) && !ev.Op.Has(fsnotify.Create) && !ev.Op.Has(fsnotify.Rename) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			pending = timer.C
		case err, ok := <-w.fw.Errors:
			if !ok {
				return
			}
			slog.Warn("load: watch error", "path", w.path, "err", err)
		case <-pending:
			pending = nil
			ants, err := ParseFile(w.path)
			if err != nil {
				slog.Warn("load: reload failed, keeping previous overrides", "path", w.path, "err", err)
				continue
			}
			w.apply(ants)
		}
	}
}
