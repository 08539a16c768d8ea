package cli

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"
)

var ledgerCmd = &cobra.Command{
	Use:   "ledger",
	Short: "Inspect the processing ledger",
}

var ledgerListCmd = &cobra.Command{
	Use:   "list",
	Short: "List processed gazettes",
	Args:  cobra.NoArgs,
	RunE:  runLedgerList,
}

func init() {
	ledgerCmd.AddCommand(ledgerListCmd)
	rootCmd.AddCommand(ledgerCmd)
}

func runLedgerList(cmd *cobra.Command, _ []string) error {
	if err := requireService(batchService != nil, "batch"); err != nil {
		return err
	}

	entries, err := batchService.History(cmd.Context())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(entries) == 0 {
		printStyled(out, mutedStyle, "Ledger is empty.")
		return nil
	}

	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{
			e.EntityID,
			e.Date,
			e.SourcePath,
			strconv.Itoa(e.SentenceCount),
			shortID(e.RunID),
			e.ProcessedAt.Local().Format(time.DateTime),
		})
	}

	_, _ = fmt.Fprintln(out, renderTable(
		[]string{"Entity", "Date", "Source", "Sentences", "Run", "Processed"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight},
	))
	return nil
}

// shortID keeps the first block of a run UUID.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
