package filesystem

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/gazettes-cli/internal/core/domain"
	"github.com/custodia-labs/gazettes-cli/internal/core/ports/driven"
	"github.com/custodia-labs/gazettes-cli/internal/logger"
)

// Ensure Watcher implements the interface.
var _ driven.GazetteWatcher = (*Watcher)(nil)

// Watcher reports gazette files created, modified or removed below a root.
// Directories created while watching are watched too.
type Watcher struct {
	finder *Finder

	mu       sync.Mutex
	closed   bool
	watchers []*fsnotify.Watcher
}

// NewWatcher creates a watcher that applies the finder's skip rules.
// A nil finder uses the defaults.
func NewWatcher(finder *Finder) *Watcher {
	if finder == nil {
		finder = NewFinder()
	}
	return &Watcher{finder: finder}
}

// watch holds the state of one Watch call.
type watch struct {
	finder *Finder
	fsw    *fsnotify.Watcher
	root   string
	since  string
	cutoff time.Time
}

// Watch starts watching root. The returned channel is closed when ctx is
// cancelled or the watcher is closed.
func (w *Watcher) Watch(ctx context.Context, root, since string) (<-chan domain.GazetteChange, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return nil, errors.New("watcher is closed")
	}

	info, err := os.Stat(root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			err = domain.ErrMissingFile
		}
		return nil, fmt.Errorf("root path error: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("root path error: %s is not a directory: %w", root, domain.ErrInvalidInput)
	}

	wt := &watch{finder: w.finder, root: root, since: since}
	if since != "" {
		if wt.cutoff, err = domain.ParseGazetteDate(since); err != nil {
			return nil, err
		}
	}

	wt.fsw, err = fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	if err := wt.addTree(root); err != nil {
		_ = wt.fsw.Close()
		return nil, err
	}
	w.watchers = append(w.watchers, wt.fsw)

	changes := make(chan domain.GazetteChange, 64)
	go wt.run(ctx, changes)
	return changes, nil
}

// Close stops every active watch. It is safe to call more than once.
func (w *Watcher) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return nil
	}
	w.closed = true

	var errs []error
	for _, fsw := range w.watchers {
		if err := fsw.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	w.watchers = nil
	return errors.Join(errs...)
}

func (wt *watch) run(ctx context.Context, changes chan<- domain.GazetteChange) {
	defer close(changes)
	defer func() { _ = wt.fsw.Close() }()

	send := func(c domain.GazetteChange) bool {
		select {
		case changes <- c:
			return true
		case <-ctx.Done():
			return false
		}
	}

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-wt.fsw.Events:
			if !ok {
				return
			}
			if event.Has(fsnotify.Create) && isDir(event.Name) && !isHidden(filepath.Base(event.Name)) {
				for _, c := range wt.adopt(event.Name) {
					if !send(c) {
						return
					}
				}
				continue
			}
			if change := wt.handleFsEvent(event); change != nil {
				if !send(*change) {
					return
				}
			}
		case err, ok := <-wt.fsw.Errors:
			if !ok {
				return
			}
			logger.Warn("watch error: %v", err)
		}
	}
}

// handleFsEvent converts an fsnotify event into a gazette change.
// Directories, hidden files, generated outputs and files outside the date
// window produce nil.
func (wt *watch) handleFsEvent(event fsnotify.Event) *domain.GazetteChange {
	name := filepath.Base(event.Name)
	if isHidden(name) || wt.finder.isDerived(name) {
		return nil
	}

	var changeType domain.ChangeType
	switch {
	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		changeType = domain.ChangeDeleted
	case event.Has(fsnotify.Create):
		changeType = domain.ChangeCreated
	case event.Has(fsnotify.Write):
		changeType = domain.ChangeUpdated
	default:
		return nil
	}

	if changeType != domain.ChangeDeleted && isDir(event.Name) {
		return nil
	}

	// Deleted paths may be whole directories, which carry no file date.
	file := ParseGazetteFile(wt.root, event.Name)
	if changeType != domain.ChangeDeleted && !wt.inWindow(file) {
		return nil
	}
	return &domain.GazetteChange{Type: changeType, File: file}
}

func (wt *watch) inWindow(file domain.GazetteFile) bool {
	if wt.since == "" {
		return true
	}
	return file.OnOrAfter(wt.cutoff)
}

// adopt starts watching a new directory and reports the gazettes already
// inside it, which were written before the watch was in place.
func (wt *watch) adopt(dir string) []domain.GazetteChange {
	if err := wt.addTree(dir); err != nil {
		logger.Warn("watching %s: %v", dir, err)
		return nil
	}
	var changes []domain.GazetteChange
	for file, err := range wt.finder.Find(context.Background(), dir, "") {
		if err != nil {
			logger.Warn("scanning %s: %v", dir, err)
			continue
		}
		file = ParseGazetteFile(wt.root, file.Path)
		if wt.inWindow(file) {
			changes = append(changes, domain.GazetteChange{Type: domain.ChangeCreated, File: file})
		}
	}
	return changes
}

// addTree adds dir and every non-hidden directory below it.
func (wt *watch) addTree(dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != dir && isHidden(d.Name()) {
			return filepath.SkipDir
		}
		if err := wt.fsw.Add(path); err != nil {
			return fmt.Errorf("watching %s: %w", path, err)
		}
		return nil
	})
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
