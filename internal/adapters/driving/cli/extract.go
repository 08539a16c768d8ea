package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/gazettes-cli/internal/core/ports/driving"
)

var (
	extractCatalog string
	extractDataDir string
	extractForce   bool
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Build *_text.json files from the gazette catalog",
	Long: `Reads the gazette CSV catalog and, for every downloaded gazette, turns the
extracted <name>.xml in the data directory into <name>_text.json: an array of
lowercased text fragments. Existing files are kept unless --force is given.`,
	Args: cobra.NoArgs,
	RunE: runExtract,
}

func init() {
	extractCmd.Flags().StringVar(&extractCatalog, "catalog", "", "CSV catalog path (default from settings)")
	extractCmd.Flags().StringVar(&extractDataDir, "data-dir", "", "Data directory (default from settings)")
	extractCmd.Flags().BoolVarP(&extractForce, "force", "f", false, "Rewrite existing *_text.json files")
	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, _ []string) error {
	if err := requireService(tabularService != nil, "tabular"); err != nil {
		return err
	}

	report, err := tabularService.Extract(cmd.Context(), driving.ExtractOptions{
		CatalogPath: extractCatalog,
		DataDir:     extractDataDir,
		Force:       extractForce,
	})
	if err != nil {
		return fmt.Errorf("extract failed: %w", err)
	}

	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintln(out, renderTable(
		[]string{"Records", "Written", "Skipped", "Empty", "Failed"},
		[][]string{{
			fmt.Sprint(report.Records),
			fmt.Sprint(report.Written),
			fmt.Sprint(report.Skipped),
			fmt.Sprint(report.Empty),
			fmt.Sprint(len(report.Failures)),
		}},
		[]columnAlignment{alignRight, alignRight, alignRight, alignRight, alignRight},
	))
	for _, f := range report.Failures {
		printStyled(out, errorStyle, "✗ %s: %v", f.Path, f.Err)
	}
	return nil
}
