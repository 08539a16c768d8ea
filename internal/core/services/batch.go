package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/gazettes-cli/internal/core/domain"
	"github.com/custodia-labs/gazettes-cli/internal/core/ports/driven"
	"github.com/custodia-labs/gazettes-cli/internal/core/ports/driving"
	"github.com/custodia-labs/gazettes-cli/internal/logger"
)

// Ensure BatchService implements the interface.
var _ driving.BatchService = (*BatchService)(nil)

// LockFileName is created in the output tree while a run holds it.
const LockFileName = ".gazettes.lock"

// BatchService processes whole gazette trees, recording each file in the ledger.
type BatchService struct {
	finder     driven.GazetteFinder
	watcher    driven.GazetteWatcher
	store      driven.TextStore
	ledger     driven.LedgerStore
	preprocess driving.PreprocessService
	outputDir  string
	workers    int
	newRunID   func() string
}

// NewBatchService creates a batch service. watcher may be nil when watch
// mode is not needed.
func NewBatchService(
	finder driven.GazetteFinder,
	watcher driven.GazetteWatcher,
	store driven.TextStore,
	ledger driven.LedgerStore,
	preprocess driving.PreprocessService,
	settings domain.AppSettings,
) *BatchService {
	workers := settings.Batch.Workers
	if workers < 1 {
		workers = 1
	}
	return &BatchService{
		finder:     finder,
		watcher:    watcher,
		store:      store,
		ledger:     ledger,
		preprocess: preprocess,
		outputDir:  settings.Output.Dir,
		workers:    workers,
		newRunID:   uuid.NewString,
	}
}

// outcome is the result of one file in a run.
type outcome int

const (
	outcomeProcessed outcome = iota
	outcomeSkipped
	outcomeEmpty
	outcomeFailed
)

// Run discovers and processes every gazette below opts.Root.
func (b *BatchService) Run(ctx context.Context, opts driving.BatchOptions) (*driving.BatchReport, error) {
	start := time.Now()
	report := &driving.BatchReport{RunID: b.newRunID()}

	logger.Section("Batch run " + report.RunID)

	var files []domain.GazetteFile
	for file, err := range b.finder.Find(ctx, opts.Root, opts.Since) {
		if err != nil {
			return nil, fmt.Errorf("discover gazettes: %w", err)
		}
		files = append(files, file)
	}
	report.Discovered = len(files)

	unlock, err := b.lock(opts.Root)
	if err != nil {
		return nil, err
	}
	defer unlock()

	workers := b.workers
	if opts.Workers > 0 {
		workers = opts.Workers
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	var mu sync.Mutex
	for _, file := range files {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			result, err := b.processOne(gctx, report.RunID, file, opts.Force)

			mu.Lock()
			defer mu.Unlock()
			switch result {
			case outcomeProcessed:
				report.Processed++
			case outcomeSkipped:
				report.Skipped++
			case outcomeEmpty:
				report.Empty++
				logger.Warn("no content in %s", file.Path)
			case outcomeFailed:
				if isInfrastructure(err) {
					return err
				}
				report.Failures = append(report.Failures, driving.BatchFailure{Path: file.Path, Err: err})
				logger.Error("processing %s: %v", file.Path, err)
			}
			return nil
		})
	}

	err = g.Wait()
	report.Duration = time.Since(start)
	if err != nil {
		return report, err
	}
	if err := ctx.Err(); err != nil {
		return report, err
	}

	logger.Info("run %s", logger.KV(map[string]any{
		"discovered": report.Discovered,
		"processed":  report.Processed,
		"skipped":    report.Skipped,
		"empty":      report.Empty,
		"failed":     len(report.Failures),
	}))
	return report, nil
}

// Watch processes gazettes as they appear until ctx is cancelled.
func (b *BatchService) Watch(
	ctx context.Context,
	root, since string,
	onEntry func(*domain.LedgerEntry, error),
) error {
	if b.watcher == nil {
		return errors.New("watch mode is not configured")
	}

	if _, err := os.Stat(root); err != nil {
		return fmt.Errorf("watch %s: %w", root, domain.ErrMissingFile)
	}

	unlock, err := b.lock(root)
	if err != nil {
		return err
	}
	defer unlock()

	changes, err := b.watcher.Watch(ctx, root, since)
	if err != nil {
		return fmt.Errorf("watch %s: %w", root, err)
	}

	runID := b.newRunID()
	logger.Info("watching %s (run %s)", root, runID)

	for change := range changes {
		if change.Type == domain.ChangeDeleted {
			// A removed directory arrives as one event for the directory itself.
			n, err := b.ledger.DeleteTree(ctx, change.File.Path)
			if err != nil {
				return fmt.Errorf("forget %s: %w", change.File.Path, err)
			}
			logger.Debug("forgot %d ledger entries below %s", n, change.File.Path)
			continue
		}

		result, err := b.processOne(ctx, runID, change.File, false)
		if result == outcomeFailed && isInfrastructure(err) {
			return err
		}
		if result == outcomeSkipped {
			continue
		}

		var entry *domain.LedgerEntry
		if result == outcomeProcessed {
			entry, err = b.ledger.Get(ctx, change.File.Path)
			if err != nil {
				return fmt.Errorf("read ledger: %w", err)
			}
		}
		if onEntry != nil {
			onEntry(entry, err)
		}
	}

	return nil
}

// History returns the ledger entries of previous runs.
func (b *BatchService) History(ctx context.Context) ([]domain.LedgerEntry, error) {
	entries, err := b.ledger.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list ledger: %w", err)
	}
	return entries, nil
}

// infrastructureError marks failures that stop a run instead of being
// collected per file.
type infrastructureError struct{ err error }

func (e *infrastructureError) Error() string { return e.err.Error() }
func (e *infrastructureError) Unwrap() error { return e.err }

func isInfrastructure(err error) bool {
	var infra *infrastructureError
	return errors.As(err, &infra)
}

// processOne handles a single gazette. Unchanged content already in the
// ledger is skipped unless force is set.
func (b *BatchService) processOne(ctx context.Context, runID string, file domain.GazetteFile, force bool) (outcome, error) {
	if err := ctx.Err(); err != nil {
		return outcomeFailed, err
	}

	if !force {
		raw, err := b.store.ReadText(file.Path)
		if err != nil {
			return outcomeFailed, fmt.Errorf("read source: %w", err)
		}
		prev, err := b.ledger.Get(ctx, file.Path)
		switch {
		case err == nil:
			if prev.ContentHash == ContentHash(raw) && b.store.Exists(prev.CleanPath) && b.store.Exists(prev.SentencePath) {
				logger.Debug("unchanged: %s", file.Path)
				return outcomeSkipped, nil
			}
		case !errors.Is(err, domain.ErrNotFound):
			return outcomeFailed, &infrastructureError{fmt.Errorf("read ledger: %w", err)}
		}
	}

	entry, err := b.preprocess.Process(ctx, file)
	if err != nil {
		if errors.Is(err, domain.ErrEmptyContent) {
			return outcomeEmpty, err
		}
		return outcomeFailed, err
	}

	entry.RunID = runID
	if err := b.ledger.Save(ctx, *entry); err != nil {
		return outcomeFailed, &infrastructureError{fmt.Errorf("save ledger entry: %w", err)}
	}
	return outcomeProcessed, nil
}

// lock takes the output tree lock, failing fast when another run holds it.
func (b *BatchService) lock(root string) (func(), error) {
	dir := root
	if b.outputDir != "" {
		dir = b.outputDir
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create output directory: %w", err)
		}
	}

	fl := flock.New(filepath.Join(dir, LockFileName))
	ok, err := fl.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%s: %w", dir, domain.ErrAlreadyLocked)
	}

	return func() {
		if err := fl.Unlock(); err != nil {
			logger.Warn("failed to release lock: %v", err)
		}
	}, nil
}
