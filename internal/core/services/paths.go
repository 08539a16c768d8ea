package services

import (
	"path/filepath"
	"strings"

	"github.com/custodia-labs/gazettes-cli/internal/core/domain"
)

// OutputPaths names the clean and sentence files derived from a gazette.
type OutputPaths struct {
	Clean    string
	Sentence string
}

// ResolveOutputPaths returns where the outputs of file are written.
//
// Without an output directory they sit next to the source. With one, the
// <entity>/<date> part of the source tree is mirrored below it. JSON
// sentence files take a .json extension.
func ResolveOutputPaths(file domain.GazetteFile, out domain.OutputSettings) OutputPaths {
	dir := filepath.Dir(file.Path)
	if out.Dir != "" {
		dir = out.Dir
		if file.EntityID != "" {
			dir = filepath.Join(dir, file.EntityID)
		}
		if file.HasDate {
			dir = filepath.Join(dir, file.DateString())
		}
	}

	base := filepath.Base(file.Path)
	sentenceName := out.SentencePrefix + base
	if out.SentenceFormat == domain.SentenceFormatJSON {
		sentenceName = out.SentencePrefix + strings.TrimSuffix(base, filepath.Ext(base)) + ".json"
	}

	return OutputPaths{
		Clean:    filepath.Join(dir, out.CleanPrefix+base),
		Sentence: filepath.Join(dir, sentenceName),
	}
}

// extractionPaths returns the extracted-content file and the *_text.json
// file for a downloaded gazette in dataDir.
func extractionPaths(filePath, dataDir string) (content, text string) {
	base := filepath.Base(filePath)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(dataDir, stem+".xml"), filepath.Join(dataDir, stem+"_text.json")
}
