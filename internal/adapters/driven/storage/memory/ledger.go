// Package memory provides in-memory store implementations for tests and
// one-off runs that should leave no ledger behind.
package memory

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/custodia-labs/gazettes-cli/internal/core/domain"
	"github.com/custodia-labs/gazettes-cli/internal/core/ports/driven"
)

// Ensure LedgerStore implements the interface.
var _ driven.LedgerStore = (*LedgerStore)(nil)

// LedgerStore is an in-memory implementation of driven.LedgerStore.
type LedgerStore struct {
	mu      sync.RWMutex
	entries map[string]domain.LedgerEntry
}

// NewLedgerStore creates a new in-memory ledger.
func NewLedgerStore() *LedgerStore {
	return &LedgerStore{
		entries: make(map[string]domain.LedgerEntry),
	}
}

// Save stores or replaces the entry for entry.SourcePath.
func (s *LedgerStore) Save(_ context.Context, entry domain.LedgerEntry) error {
	if entry.SourcePath == "" {
		return fmt.Errorf("ledger entry without source path: %w", domain.ErrInvalidInput)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[entry.SourcePath] = entry
	return nil
}

// Get retrieves the entry for a source path.
func (s *LedgerStore) Get(_ context.Context, sourcePath string) (*domain.LedgerEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.entries[sourcePath]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &entry, nil
}

// List returns all entries ordered by date then source path.
func (s *LedgerStore) List(_ context.Context) ([]domain.LedgerEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := make([]domain.LedgerEntry, 0, len(s.entries))
	for _, e := range s.entries {
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Date != entries[j].Date {
			return entries[i].Date < entries[j].Date
		}
		return entries[i].SourcePath < entries[j].SourcePath
	})
	return entries, nil
}

// Delete removes the entry for a source path.
func (s *LedgerStore) Delete(_ context.Context, sourcePath string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, sourcePath)
	return nil
}

// DeleteTree removes the entry for path and every entry below it.
func (s *LedgerStore) DeleteTree(_ context.Context, path string) (int, error) {
	path = filepath.Clean(path)
	prefix := path + string(filepath.Separator)

	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for key := range s.entries {
		if key == path || strings.HasPrefix(key, prefix) {
			delete(s.entries, key)
			n++
		}
	}
	return n, nil
}
