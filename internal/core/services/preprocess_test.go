package services

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/gazettes-cli/internal/adapters/driven/storage/file"
	"github.com/custodia-labs/gazettes-cli/internal/core/domain"
	"github.com/custodia-labs/gazettes-cli/internal/postprocessors"
	"github.com/custodia-labs/gazettes-cli/internal/postprocessors/segmenter"
)

const rawGazette = "Art. 1.º   O  CCRRIIAADDOO  “cargo” de Assessor.\n\n\n\n" +
	"§ 2.º Fica.......... revogado o inc. XI do art. 3.º da Lei.\n" +
	"Publique-se. Cumpra-se!\n"

// mockPipeline implements driven.TextPipeline for testing.
type mockPipeline struct {
	out string
	err error
}

func (m *mockPipeline) Process(_ context.Context, _ string) (string, error) { return m.out, m.err }
func (m *mockPipeline) Names() []string                                      { return []string{"mock"} }

func newTestPreprocessService(t *testing.T, out domain.OutputSettings) *PreprocessService {
	t.Helper()

	pipeline, err := postprocessors.NewDefaultPipeline(domain.DefaultAppSettings().Pipeline)
	require.NoError(t, err)

	svc := NewPreprocessService(file.NewTextStore(), pipeline, segmenter.New(), out)
	svc.now = func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) }
	return svc
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestPreprocessGazetteTxtFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "gazette.txt")
	dst := filepath.Join(dir, "clean_gazette.txt")
	writeFile(t, src, rawGazette)

	svc := newTestPreprocessService(t, domain.DefaultAppSettings().Output)

	require.NoError(t, svc.PreprocessGazetteTxtFile(context.Background(), src, dst))

	assert.Equal(t,
		"O CRIADO \"cargo\" de Assessor.\nFica revogado o inc. XI do art. 3.º da Lei.\nPublique-se. Cumpra-se!\n",
		readFile(t, dst))
	// Source is never modified
	assert.Equal(t, rawGazette, readFile(t, src))
}

func TestPreprocessGazetteTxtFile_FixedPoint(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "gazette.txt")
	first := filepath.Join(dir, "first.txt")
	second := filepath.Join(dir, "second.txt")
	writeFile(t, src, rawGazette)

	svc := newTestPreprocessService(t, domain.DefaultAppSettings().Output)
	ctx := context.Background()

	require.NoError(t, svc.PreprocessGazetteTxtFile(ctx, src, first))
	require.NoError(t, svc.PreprocessGazetteTxtFile(ctx, first, second))

	assert.Equal(t, readFile(t, first), readFile(t, second))
}

func TestPreprocessGazetteTxtFile_Errors(t *testing.T) {
	ctx := context.Background()

	t.Run("missing source", func(t *testing.T) {
		dir := t.TempDir()
		svc := newTestPreprocessService(t, domain.DefaultAppSettings().Output)

		err := svc.PreprocessGazetteTxtFile(ctx, filepath.Join(dir, "nope.txt"), filepath.Join(dir, "out.txt"))

		assert.ErrorIs(t, err, domain.ErrMissingFile)
	})

	t.Run("empty content leaves no file", func(t *testing.T) {
		dir := t.TempDir()
		src := filepath.Join(dir, "gazette.txt")
		dst := filepath.Join(dir, "clean.txt")
		writeFile(t, src, "\n\n  .......... \n§ 1.º\n")
		svc := newTestPreprocessService(t, domain.DefaultAppSettings().Output)

		err := svc.PreprocessGazetteTxtFile(ctx, src, dst)

		assert.ErrorIs(t, err, domain.ErrEmptyContent)
		assert.NoFileExists(t, dst)
	})

	t.Run("pipeline error", func(t *testing.T) {
		dir := t.TempDir()
		src := filepath.Join(dir, "gazette.txt")
		writeFile(t, src, "text")
		boom := errors.New("boom")
		svc := NewPreprocessService(file.NewTextStore(), &mockPipeline{err: boom}, segmenter.New(),
			domain.DefaultAppSettings().Output)

		err := svc.PreprocessGazetteTxtFile(ctx, src, filepath.Join(dir, "out.txt"))

		assert.ErrorIs(t, err, boom)
	})
}

func TestCreateSentenceFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "clean_gazette.txt")
	dst := filepath.Join(dir, "sentence_gazette.txt")
	writeFile(t, src, "Primeira frase\ncontinua aqui. Segunda frase com inc. XI do art. 5.º!\n\nTerceira?\n")
	writeFile(t, dst, "stale content\n")

	svc := newTestPreprocessService(t, domain.DefaultAppSettings().Output)

	n, err := svc.CreateSentenceFile(context.Background(), src, dst)

	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t,
		"Primeira frase continua aqui.\nSegunda frase com inc.XI do art. 5.º!\nTerceira?\n",
		readFile(t, dst))
}

func TestCreateSentenceFile_Empty(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "clean.txt")
	dst := filepath.Join(dir, "sentences.txt")
	writeFile(t, src, "\n \n")

	svc := newTestPreprocessService(t, domain.DefaultAppSettings().Output)

	n, err := svc.CreateSentenceFile(context.Background(), src, dst)

	assert.ErrorIs(t, err, domain.ErrEmptyContent)
	assert.Zero(t, n)
	assert.NoFileExists(t, dst)
}

func TestCreateSentenceJSON(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "clean.txt")
	dst := filepath.Join(dir, "sentences.json")
	writeFile(t, src, "Uma frase. Outra \"frase\" <aqui>.\n")

	svc := newTestPreprocessService(t, domain.DefaultAppSettings().Output)

	n, err := svc.CreateSentenceJSON(context.Background(), src, dst)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	var got []string
	require.NoError(t, json.Unmarshal([]byte(readFile(t, dst)), &got))
	assert.Equal(t, []string{"Uma frase.", "Outra \"frase\" <aqui>."}, got)
	assert.Contains(t, readFile(t, dst), "<aqui>")
}

func TestPreprocessService_Process(t *testing.T) {
	root := t.TempDir()
	outDir := t.TempDir()
	src := filepath.Join(root, "4205407", "2021-03-01", "gazette.txt")
	writeFile(t, src, rawGazette)

	out := domain.DefaultAppSettings().Output
	out.Dir = outDir
	svc := newTestPreprocessService(t, out)

	gf := domain.GazetteFile{
		Path:     src,
		EntityID: "4205407",
		Date:     time.Date(2021, 3, 1, 0, 0, 0, 0, time.UTC),
		HasDate:  true,
	}

	entry, err := svc.Process(context.Background(), gf)
	require.NoError(t, err)

	wantDir := filepath.Join(outDir, "4205407", "2021-03-01")
	assert.Equal(t, src, entry.SourcePath)
	assert.Equal(t, "4205407", entry.EntityID)
	assert.Equal(t, "2021-03-01", entry.Date)
	assert.Equal(t, filepath.Join(wantDir, "clean_gazette.txt"), entry.CleanPath)
	assert.Equal(t, filepath.Join(wantDir, "sentence_gazette.txt"), entry.SentencePath)
	assert.Equal(t, 4, entry.SentenceCount)
	assert.Equal(t, ContentHash(rawGazette), entry.ContentHash)
	assert.Empty(t, entry.RunID)
	assert.Equal(t, time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC), entry.ProcessedAt)

	assert.Equal(t,
		"O CRIADO \"cargo\" de Assessor.\nFica revogado o inc.XI do art. 3.º da Lei.\nPublique-se.\nCumpra-se!\n",
		readFile(t, entry.SentencePath))
	assert.FileExists(t, entry.CleanPath)
}

func TestPreprocessService_Process_JSON(t *testing.T) {
	root := t.TempDir()
	src := filepath.Join(root, "gazette.txt")
	writeFile(t, src, rawGazette)

	out := domain.DefaultAppSettings().Output
	out.SentenceFormat = domain.SentenceFormatJSON
	svc := newTestPreprocessService(t, out)

	entry, err := svc.Process(context.Background(), domain.GazetteFile{Path: src})
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(root, "sentence_gazette.json"), entry.SentencePath)
	var got []string
	require.NoError(t, json.Unmarshal([]byte(readFile(t, entry.SentencePath)), &got))
	assert.Len(t, got, entry.SentenceCount)
}

func TestPreprocessService_Process_Empty(t *testing.T) {
	root := t.TempDir()
	src := filepath.Join(root, "gazette.txt")
	writeFile(t, src, "   \n\n")

	svc := newTestPreprocessService(t, domain.DefaultAppSettings().Output)

	_, err := svc.Process(context.Background(), domain.GazetteFile{Path: src})

	assert.ErrorIs(t, err, domain.ErrEmptyContent)
	assert.NoFileExists(t, filepath.Join(root, "clean_gazette.txt"))
	assert.NoFileExists(t, filepath.Join(root, "sentence_gazette.txt"))
}

func TestPreprocessService_Sentences(t *testing.T) {
	svc := newTestPreprocessService(t, domain.DefaultAppSettings().Output)

	got, err := svc.Sentences(context.Background(), "Art. 1.º Fica criado.\n\nSegue  o texto.")

	require.NoError(t, err)
	assert.Equal(t, []string{"Fica criado.", "Segue o texto."}, got)
}

func TestContentHash(t *testing.T) {
	assert.Equal(t, "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855", ContentHash(""))
	assert.NotEqual(t, ContentHash("a"), ContentHash("b"))
}
