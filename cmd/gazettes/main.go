// Command gazettes prepares government gazette text for language-model training.
package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/custodia-labs/gazettes-cli/internal/adapters/driven/catalog/csv"
	configfile "github.com/custodia-labs/gazettes-cli/internal/adapters/driven/config/file"
	"github.com/custodia-labs/gazettes-cli/internal/adapters/driven/storage/file"
	"github.com/custodia-labs/gazettes-cli/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/gazettes-cli/internal/adapters/driving/cli"
	"github.com/custodia-labs/gazettes-cli/internal/connectors/filesystem"
	"github.com/custodia-labs/gazettes-cli/internal/core/services"
	"github.com/custodia-labs/gazettes-cli/internal/normalisers"
	"github.com/custodia-labs/gazettes-cli/internal/postprocessors"
	"github.com/custodia-labs/gazettes-cli/internal/postprocessors/segmenter"
)

// version is overridden with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	// A missing .env is fine; GAZETTES_* may come from the real environment.
	_ = godotenv.Load()

	cli.SetVersion(version)
	cli.SetServiceFactory(buildServices)

	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}

// buildServices wires adapters into services for one command invocation.
func buildServices(configDir string) (*cli.Services, func() error, error) {
	configStore, err := configfile.NewConfigStore(filesystem.ResolvePath(configDir))
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	settingsService := services.NewSettingsService(configStore)
	settings, err := settingsService.Get()
	if err != nil {
		return nil, nil, err
	}
	if err := settingsService.Validate(settings); err != nil {
		return nil, nil, fmt.Errorf("%s: %w", configStore.Path(), err)
	}

	settings.Output.Dir = filesystem.ResolvePath(settings.Output.Dir)
	settings.Tabular.CatalogPath = filesystem.ResolvePath(settings.Tabular.CatalogPath)
	settings.Tabular.DataDir = filesystem.ResolvePath(settings.Tabular.DataDir)

	ledgerDir := filesystem.ResolvePath(settings.Batch.LedgerDir)
	if ledgerDir == "" && configDir != "" {
		ledgerDir = filepath.Join(filesystem.ResolvePath(configDir), "data")
	}
	ledger, err := sqlite.NewStore(ledgerDir)
	if err != nil {
		return nil, nil, fmt.Errorf("open ledger: %w", err)
	}

	pipeline, err := postprocessors.NewDefaultPipeline(settings.Pipeline)
	if err != nil {
		_ = ledger.Close()
		return nil, nil, err
	}

	seg := segmenter.New(
		segmenter.WithAbbreviations(settings.Pipeline.Abbreviations),
		segmenter.WithGlueRomanNumerals(settings.Pipeline.GlueRomanNumerals),
	)

	store := file.NewTextStore()
	finder := filesystem.NewFinder(
		filesystem.WithDerivedPrefixes(settings.Output.CleanPrefix, settings.Output.SentencePrefix),
	)
	watcher := filesystem.NewWatcher(finder)

	preprocess := services.NewPreprocessService(store, pipeline, seg, settings.Output)

	closeFn := func() error {
		return errors.Join(watcher.Close(), ledger.Close())
	}

	return &cli.Services{
		Preprocess: preprocess,
		Batch:      services.NewBatchService(finder, watcher, store, ledger, preprocess, *settings),
		Tabular:    services.NewTabularService(csv.NewReader(), normalisers.NewDefaultRegistry(), store, settings.Tabular),
		Settings:   settingsService,
		Finder:     finder,
	}, closeFn, nil
}
