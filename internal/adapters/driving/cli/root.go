package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/gazettes-cli/internal/core/domain"
	"github.com/custodia-labs/gazettes-cli/internal/core/ports/driven"
	"github.com/custodia-labs/gazettes-cli/internal/core/ports/driving"
	"github.com/custodia-labs/gazettes-cli/internal/logger"
)

// version is set at build time via SetVersion.
var version = "dev"

// Services injected by the composition root.
var (
	preprocessService driving.PreprocessService
	batchService      driving.BatchService
	tabularService    driving.TabularService
	settingsService   driving.SettingsService
	gazetteFinder     driven.GazetteFinder
)

// Services groups everything the commands need.
type Services struct {
	Preprocess driving.PreprocessService
	Batch      driving.BatchService
	Tabular    driving.TabularService
	Settings   driving.SettingsService
	Finder     driven.GazetteFinder
}

// ServiceFactory builds the services once global flags are parsed.
// The returned close function releases stores and watchers.
type ServiceFactory func(configDir string) (*Services, func() error, error)

var (
	serviceFactory ServiceFactory
	closeServices  func() error
)

// Global flags.
var (
	verbose   bool
	configDir string
)

var rootCmd = &cobra.Command{
	Use:   "gazettes",
	Short: "Prepare government gazette text for language-model training",
	Long: `gazettes cleans raw gazette text (OCR and HTML extraction output),
splits it into sentences and processes whole <root>/<entity>/<YYYY-MM-DD>
trees, keeping a ledger of what has been processed.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Print debug and progress logs")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "Configuration directory (default ~/.gazettes)")
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	version = v
}

// SetServices injects ready-made services, bypassing the factory.
func SetServices(s Services) {
	preprocessService = s.Preprocess
	batchService = s.Batch
	tabularService = s.Tabular
	settingsService = s.Settings
	gazetteFinder = s.Finder
}

// SetServiceFactory registers the builder run before each command.
func SetServiceFactory(f ServiceFactory) {
	serviceFactory = f
}

// Execute runs the root command and releases the services it opened,
// whether or not the command succeeded.
func Execute() error {
	err := rootCmd.Execute()
	return errors.Join(err, teardown())
}

func setup(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)
	logger.SetOutput(cmd.ErrOrStderr())

	if serviceFactory == nil || cmd == versionCmd {
		return nil
	}

	services, closeFn, err := serviceFactory(configDir)
	if err != nil {
		return fmt.Errorf("initialise: %w", err)
	}
	SetServices(*services)
	closeServices = closeFn
	return nil
}

func teardown() error {
	if closeServices == nil {
		return nil
	}
	err := closeServices()
	closeServices = nil
	return err
}

// currentSettings returns the configured settings, or defaults when no
// settings service is wired.
func currentSettings() (*domain.AppSettings, error) {
	if settingsService == nil {
		defaults := domain.DefaultAppSettings()
		return &defaults, nil
	}
	return settingsService.Get()
}

// requireService fails with a uniform message when a service is not wired.
func requireService(configured bool, name string) error {
	if !configured {
		return errors.New(name + " service not configured")
	}
	return nil
}
