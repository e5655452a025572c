package watch

import (
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"

	"github.com/quiltcss/quilt/internal/bundle"
)

// Source streams stylesheet events from the filesystem, serialized
// over a single channel in arrival order. It emits KindReady once
// after the initial directory registration, then one specific event
// per notification followed by the KindAny catch-all for that same
// notification.
type Source struct {
	watcher *fsnotify.Watcher
	events  chan Event
	logger  *slog.Logger
}

// NewSource watches root recursively. Directories created later are
// registered as they appear; hidden directories are skipped.
func NewSource(root string, logger *slog.Logger) (*Source, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	if err := addDirs(watcher, root); err != nil {
		_ = watcher.Close()
		return nil, err
	}

	s := &Source{
		watcher: watcher,
		events:  make(chan Event),
		logger:  logger,
	}
	go s.loop()
	return s, nil
}

// Events returns the serialized event stream. The channel closes when
// the source is closed.
func (s *Source) Events() <-chan Event {
	return s.events
}

// Close stops watching; the event channel drains and closes.
func (s *Source) Close() error {
	return s.watcher.Close()
}

func (s *Source) loop() {
	defer close(s.events)

	s.events <- Event{Kind: KindReady}

	for {
		select {
		case ev, ok := <-s.watcher.Events:
			if !ok {
				return
			}
			s.translate(ev)
		case err, ok := <-s.watcher.Errors:
			if !ok {
				return
			}
			s.logger.Warn("watcher error", "err", err)
		}
	}
}

// translate maps one raw notification onto the bundler's event
// vocabulary. Only stylesheet files are reported; new directories are
// registered instead.
func (s *Source) translate(ev fsnotify.Event) {
	switch {
	case ev.Op&fsnotify.Create != 0:
		if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
			if err := addDirs(s.watcher, ev.Name); err != nil {
				s.logger.Warn("failed to watch new directory", "dir", ev.Name, "err", err)
			}
			return
		}
		if isStylesheet(ev.Name) {
			s.emit(KindAdded, ev.Name)
		}
	case ev.Op&fsnotify.Write != 0:
		if isStylesheet(ev.Name) {
			s.emit(KindChanged, ev.Name)
		}
	case ev.Op&(fsnotify.Remove|fsnotify.Rename) != 0:
		if isStylesheet(ev.Name) {
			s.emit(KindRemoved, ev.Name)
		}
	}
}

// emit delivers the specific event, then the generic one for the same
// underlying notification.
func (s *Source) emit(kind Kind, path string) {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	s.events <- Event{Kind: kind, Path: abs}
	s.events <- Event{Kind: KindAny, Path: abs}
}

func addDirs(watcher *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		return watcher.Add(path)
	})
}

func isStylesheet(path string) bool {
	return filepath.Ext(path) == bundle.Ext
}
