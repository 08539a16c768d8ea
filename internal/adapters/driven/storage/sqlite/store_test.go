package sqlite

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/gazettes-cli/internal/core/domain"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	require.NotNil(t, store)
	t.Cleanup(func() {
		assert.NoError(t, store.Close())
	})
	return store
}

func sampleEntry(path, date string) domain.LedgerEntry {
	return domain.LedgerEntry{
		SourcePath:    path,
		EntityID:      "1302603",
		Date:          date,
		CleanPath:     filepath.Join(filepath.Dir(path), "clean_"+filepath.Base(path)),
		SentencePath:  filepath.Join(filepath.Dir(path), "sentence_"+filepath.Base(path)),
		SentenceCount: 12,
		ContentHash:   "abc123",
		RunID:         "run-1",
		ProcessedAt:   time.Date(2022, 6, 21, 10, 30, 0, 0, time.UTC),
	}
}

func TestNewStore(t *testing.T) {
	dir := t.TempDir()

	store, err := NewStore(dir)
	require.NoError(t, err)
	defer store.Close()

	assert.Equal(t, filepath.Join(dir, "ledger.db"), store.Path())
}

func TestNewStore_ReopenKeepsData(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	store, err := NewStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.Save(ctx, sampleEntry("/g/1/2022-06-21/a.txt", "2022-06-21")))
	require.NoError(t, store.Close())

	reopened, err := NewStore(dir)
	require.NoError(t, err)
	defer reopened.Close()

	entries, err := reopened.List(ctx)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestStore_SaveAndGet(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	entry := sampleEntry("/g/1302603/2022-06-21/a.txt", "2022-06-21")

	require.NoError(t, store.Save(ctx, entry))

	got, err := store.Get(ctx, entry.SourcePath)
	require.NoError(t, err)
	assert.Equal(t, entry.SourcePath, got.SourcePath)
	assert.Equal(t, entry.EntityID, got.EntityID)
	assert.Equal(t, entry.Date, got.Date)
	assert.Equal(t, entry.CleanPath, got.CleanPath)
	assert.Equal(t, entry.SentencePath, got.SentencePath)
	assert.Equal(t, entry.SentenceCount, got.SentenceCount)
	assert.Equal(t, entry.ContentHash, got.ContentHash)
	assert.Equal(t, entry.RunID, got.RunID)
	assert.True(t, entry.ProcessedAt.Equal(got.ProcessedAt))
}

func TestStore_Save_Upsert(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	entry := sampleEntry("/g/a.txt", "2022-06-21")
	require.NoError(t, store.Save(ctx, entry))

	entry.ContentHash = "def456"
	entry.RunID = "run-2"
	require.NoError(t, store.Save(ctx, entry))

	got, err := store.Get(ctx, entry.SourcePath)
	require.NoError(t, err)
	assert.Equal(t, "def456", got.ContentHash)
	assert.Equal(t, "run-2", got.RunID)

	entries, err := store.List(ctx)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestStore_Save_InvalidInput(t *testing.T) {
	store := setupTestStore(t)

	err := store.Save(context.Background(), domain.LedgerEntry{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestStore_Get_NotFound(t *testing.T) {
	store := setupTestStore(t)

	_, err := store.Get(context.Background(), "/missing.txt")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStore_List_Ordered(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, sampleEntry("/g/b.txt", "2022-06-21")))
	require.NoError(t, store.Save(ctx, sampleEntry("/g/c.txt", "2022-06-19")))
	require.NoError(t, store.Save(ctx, sampleEntry("/g/a.txt", "2022-06-21")))

	entries, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "/g/c.txt", entries[0].SourcePath)
	assert.Equal(t, "/g/a.txt", entries[1].SourcePath)
	assert.Equal(t, "/g/b.txt", entries[2].SourcePath)
}

func TestStore_List_Empty(t *testing.T) {
	store := setupTestStore(t)

	entries, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestStore_Delete(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, sampleEntry("/g/a.txt", "2022-06-21")))

	require.NoError(t, store.Delete(ctx, "/g/a.txt"))
	require.NoError(t, store.Delete(ctx, "/g/a.txt"))

	_, err := store.Get(ctx, "/g/a.txt")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStore_DeleteTree(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	dated := filepath.Join("/g", "1302603", "2022-06-21")
	sibling := filepath.Join("/g", "1302603", "2022-06-211", "c.txt")
	require.NoError(t, store.Save(ctx, sampleEntry(filepath.Join(dated, "a.txt"), "2022-06-21")))
	require.NoError(t, store.Save(ctx, sampleEntry(filepath.Join(dated, "b.txt"), "2022-06-21")))
	require.NoError(t, store.Save(ctx, sampleEntry(sibling, "2022-06-21")))

	t.Run("directory removes everything below it", func(t *testing.T) {
		n, err := store.DeleteTree(ctx, dated)
		require.NoError(t, err)
		assert.Equal(t, 2, n)

		entries, err := store.List(ctx)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, sibling, entries[0].SourcePath)
	})

	t.Run("file path removes its own entry", func(t *testing.T) {
		n, err := store.DeleteTree(ctx, sibling)
		require.NoError(t, err)
		assert.Equal(t, 1, n)
	})

	t.Run("nothing to remove", func(t *testing.T) {
		n, err := store.DeleteTree(ctx, "/nope")
		require.NoError(t, err)
		assert.Zero(t, n)
	})
}

func TestStore_ConcurrentSaves(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			path := filepath.Join("/g", string(rune('a'+i))+".txt")
			assert.NoError(t, store.Save(ctx, sampleEntry(path, "2022-06-21")))
		}(i)
	}
	wg.Wait()

	entries, err := store.List(ctx)
	require.NoError(t, err)
	assert.Len(t, entries, 8)
}
