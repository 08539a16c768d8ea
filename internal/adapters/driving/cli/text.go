package cli

import (
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/gazettes-cli/internal/core/domain"
)

var sentencesJSON bool

var cleanCmd = &cobra.Command{
	Use:   "clean <source> [destination]",
	Short: "Normalise a raw gazette text file",
	Long: `Runs the normalisation passes and the structural line filter over a raw
gazette text file. The destination defaults to clean_<name> next to the source.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runClean,
}

var sentencesCmd = &cobra.Command{
	Use:   "sentences <source> [destination]",
	Short: "Split a clean text file into sentences",
	Long: `Writes one sentence per line, or a JSON array with --json. The destination
defaults to sentence_<name> next to the source.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runSentences,
}

func init() {
	sentencesCmd.Flags().BoolVar(&sentencesJSON, "json", false, "Write a JSON array instead of one sentence per line")
	rootCmd.AddCommand(cleanCmd)
	rootCmd.AddCommand(sentencesCmd)
}

func runClean(cmd *cobra.Command, args []string) error {
	if err := requireService(preprocessService != nil, "preprocess"); err != nil {
		return err
	}

	settings, err := currentSettings()
	if err != nil {
		return err
	}

	source := args[0]
	destination := siblingPath(source, settings.Output.CleanPrefix, "")
	if len(args) == 2 {
		destination = args[1]
	}

	if err := preprocessService.PreprocessGazetteTxtFile(cmd.Context(), source, destination); err != nil {
		return err
	}

	printStyled(cmd.OutOrStdout(), successStyle, "Wrote %s", destination)
	return nil
}

func runSentences(cmd *cobra.Command, args []string) error {
	if err := requireService(preprocessService != nil, "preprocess"); err != nil {
		return err
	}

	settings, err := currentSettings()
	if err != nil {
		return err
	}

	asJSON := sentencesJSON || settings.Output.SentenceFormat == domain.SentenceFormatJSON

	source := args[0]
	ext := ""
	if asJSON {
		ext = ".json"
	}
	destination := siblingPath(source, settings.Output.SentencePrefix, ext)
	if len(args) == 2 {
		destination = args[1]
	}

	var n int
	if asJSON {
		n, err = preprocessService.CreateSentenceJSON(cmd.Context(), source, destination)
	} else {
		n, err = preprocessService.CreateSentenceFile(cmd.Context(), source, destination)
	}
	if err != nil {
		return err
	}

	printStyled(cmd.OutOrStdout(), successStyle, "Wrote %d sentences to %s", n, destination)
	return nil
}

// siblingPath prefixes the file name of path. A non-empty ext replaces the
// original extension.
func siblingPath(path, prefix, ext string) string {
	dir, base := filepath.Split(path)
	if ext != "" {
		base = strings.TrimSuffix(base, filepath.Ext(base)) + ext
	}
	return filepath.Join(dir, prefix+base)
}
