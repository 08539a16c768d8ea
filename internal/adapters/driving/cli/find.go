package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var findSince string

var findCmd = &cobra.Command{
	Use:   "find <root>",
	Short: "List gazette files below a root directory",
	Long: `Walks <root>/<entity>/<YYYY-MM-DD>/<file> in lexical order. With --since only
files in date directories on or after the cutoff are listed.`,
	Args: cobra.ExactArgs(1),
	RunE: runFind,
}

func init() {
	findCmd.Flags().StringVar(&findSince, "since", "", "Inclusive YYYY-MM-DD cutoff")
	rootCmd.AddCommand(findCmd)
}

func runFind(cmd *cobra.Command, args []string) error {
	if err := requireService(gazetteFinder != nil, "discovery"); err != nil {
		return err
	}

	var rows [][]string
	for file, err := range gazetteFinder.Find(cmd.Context(), args[0], findSince) {
		if err != nil {
			return err
		}
		rows = append(rows, []string{file.EntityID, file.DateString(), file.Path})
	}

	out := cmd.OutOrStdout()
	if len(rows) == 0 {
		printStyled(out, mutedStyle, "No gazettes found.")
		return nil
	}

	_, _ = fmt.Fprintln(out, renderTable([]string{"Entity", "Date", "Path"}, rows, nil))
	printStyled(out, mutedStyle, "%d gazettes", len(rows))
	return nil
}
