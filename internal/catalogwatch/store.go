// Package catalogwatch keeps the active catalog set in memory and, for
// catalogs loaded from disk, reloads it when the files change.
package catalogwatch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"

	"github.com/goliatone/go-lessonplan/pkg/catalog"
)

// DefaultDebounce is the quiet window before a burst of edits triggers a
// reload.
const DefaultDebounce = 250 * time.Millisecond

// Option configures a Store.
type Option func(*Store)

// WithLogger routes reload and watch messages to log.
func WithLogger(log *slog.Logger) Option {
	return func(s *Store) {
		if log != nil {
			s.log = log
		}
	}
}

// WithPattern overrides the doublestar pattern that selects catalog files.
func WithPattern(pattern string) Option {
	return func(s *Store) {
		if pattern != "" {
			s.pattern = pattern
		}
	}
}

// WithDebounce overrides DefaultDebounce.
func WithDebounce(window time.Duration) Option {
	return func(s *Store) {
		if window > 0 {
			s.window = window
		}
	}
}

// WithReloadHook runs fn after every successful reload.
func WithReloadHook(fn func(*catalog.Store)) Option {
	return func(s *Store) {
		s.onReload = fn
	}
}

// Store serves the current catalog set. Readers never block on reloads: the
// set is swapped atomically.
type Store struct {
	current  atomic.Pointer[catalog.Store]
	dir      string
	pattern  string
	window   time.Duration
	log      *slog.Logger
	onReload func(*catalog.Store)
}

// Static wraps an already loaded set (usually the embedded catalogs). It
// cannot be reloaded or watched.
func Static(set *catalog.Store) *Store {
	s := &Store{
		pattern: catalog.DefaultPattern,
		window:  DefaultDebounce,
		log:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	s.current.Store(set)
	return s
}

// Open loads every catalog file under dir.
func Open(dir string, options ...Option) (*Store, error) {
	if dir == "" {
		return nil, errors.New("catalogwatch: directory is required")
	}
	s := &Store{
		dir:     dir,
		pattern: catalog.DefaultPattern,
		window:  DefaultDebounce,
		log:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range options {
		if opt != nil {
			opt(s)
		}
	}
	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// OpenOrEmbedded opens dir, or wraps the embedded catalogs when dir is empty.
func OpenOrEmbedded(dir string, options ...Option) (*Store, error) {
	if dir != "" {
		return Open(dir, options...)
	}
	set, err := catalog.Embedded()
	if err != nil {
		return nil, fmt.Errorf("catalogwatch: embedded catalogs: %w", err)
	}
	return Static(set), nil
}

// Dynamic reports whether the store reads from a directory and can be
// reloaded or watched.
func (s *Store) Dynamic() bool {
	return s.dir != ""
}

// Get returns a copy of the named catalog from the current set.
func (s *Store) Get(name string) (catalog.Catalog, bool) {
	set := s.current.Load()
	if set == nil {
		return catalog.Catalog{}, false
	}
	return set.Get(name)
}

// Names lists the catalogs in the current set.
func (s *Store) Names() []string {
	set := s.current.Load()
	if set == nil {
		return nil
	}
	return set.Names()
}

// Reload re-reads the directory. On failure the previous set stays active.
func (s *Store) Reload() error {
	if s.dir == "" {
		return errors.New("catalogwatch: static store cannot be reloaded")
	}
	set, err := catalog.LoadFS(os.DirFS(s.dir), catalog.WithPattern(s.pattern))
	if err != nil {
		return fmt.Errorf("catalogwatch: reload %s: %w", s.dir, err)
	}
	if set.Empty() {
		return fmt.Errorf("catalogwatch: no catalogs in %s", s.dir)
	}
	s.current.Store(set)
	if s.onReload != nil {
		s.onReload(set)
	}
	return nil
}

// Watch reloads the set whenever matching files under the directory change.
// It blocks until ctx is done.
func (s *Store) Watch(ctx context.Context) error {
	if s.dir == "" {
		return errors.New("catalogwatch: static store cannot be watched")
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("catalogwatch: create watcher: %w", err)
	}
	defer watcher.Close()

	if err := s.addTree(watcher, s.dir); err != nil {
		return err
	}

	deb := newDebouncer(s.window, func(paths []string) {
		if err := s.Reload(); err != nil {
			s.log.Warn("catalog reload failed", "error", err, "paths", paths)
			return
		}
		s.log.Info("catalogs reloaded", "names", s.Names(), "changed", len(paths))
	})
	defer deb.Stop()

	s.log.Info("watching catalogs", "dir", s.dir, "pattern", s.pattern)
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := s.addTree(watcher, event.Name); err != nil {
						s.log.Debug("failed to watch directory", "path", event.Name, "error", err)
					}
					continue
				}
			}
			if s.relevant(event.Name) {
				s.log.Debug("catalog file event", "path", event.Name, "op", event.Op.String())
				deb.Add(event.Name)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			s.log.Warn("catalog watcher error", "error", err)
		}
	}
}

func (s *Store) addTree(watcher *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, entry os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !entry.IsDir() {
			return nil
		}
		if err := watcher.Add(path); err != nil {
			return fmt.Errorf("catalogwatch: watch %s: %w", path, err)
		}
		return nil
	})
}

func (s *Store) relevant(path string) bool {
	rel, err := filepath.Rel(s.dir, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return false
	}
	match, err := doublestar.Match(s.pattern, filepath.ToSlash(rel))
	return err == nil && match
}
