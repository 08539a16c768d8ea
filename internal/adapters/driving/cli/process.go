package cli

import (
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/gazettes-cli/internal/core/domain"
	"github.com/custodia-labs/gazettes-cli/internal/core/ports/driving"
)

var (
	processSince   string
	processWorkers int
	processForce   bool
	watchSince     string
)

var processCmd = &cobra.Command{
	Use:   "process <root>",
	Short: "Clean and segment every gazette below a root directory",
	Long: `Discovers gazettes under <root>/<entity>/<YYYY-MM-DD>/<file> and writes clean
and sentence files for each, in parallel. Files whose content is unchanged
since the last run are skipped unless --force is given. Per-file failures are
reported and do not stop the run.`,
	Args: cobra.ExactArgs(1),
	RunE: runProcess,
}

var watchCmd = &cobra.Command{
	Use:   "watch <root>",
	Short: "Process gazettes as they are added",
	Long: `Watches <root> recursively and processes new or modified gazettes in date
directories on or after --since. Runs until interrupted.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	processCmd.Flags().StringVar(&processSince, "since", "", "Inclusive YYYY-MM-DD cutoff (default from settings)")
	processCmd.Flags().IntVarP(&processWorkers, "workers", "w", 0, "Files processed concurrently (default from settings)")
	processCmd.Flags().BoolVarP(&processForce, "force", "f", false, "Reprocess files already in the ledger")
	watchCmd.Flags().StringVar(&watchSince, "since", "", "Inclusive YYYY-MM-DD cutoff (default from settings)")
	rootCmd.AddCommand(processCmd)
	rootCmd.AddCommand(watchCmd)
}

func runProcess(cmd *cobra.Command, args []string) error {
	if err := requireService(batchService != nil, "batch"); err != nil {
		return err
	}

	since, err := sinceOrDefault(processSince)
	if err != nil {
		return err
	}

	report, err := batchService.Run(cmd.Context(), driving.BatchOptions{
		Root:    args[0],
		Since:   since,
		Workers: processWorkers,
		Force:   processForce,
	})
	if err != nil {
		return fmt.Errorf("process failed: %w", err)
	}

	printReport(cmd, report)
	return nil
}

func runWatch(cmd *cobra.Command, args []string) error {
	if err := requireService(batchService != nil, "batch"); err != nil {
		return err
	}

	since, err := sinceOrDefault(watchSince)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	out := cmd.OutOrStdout()
	printStyled(out, titleStyle, "Watching %s (Ctrl+C to stop)", args[0])

	return batchService.Watch(ctx, args[0], since, func(entry *domain.LedgerEntry, err error) {
		if err != nil {
			printStyled(out, errorStyle, "✗ %v", err)
			return
		}
		printStyled(out, successStyle, "✓ %s (%d sentences)", entry.SourcePath, entry.SentenceCount)
	})
}

// sinceOrDefault falls back to the configured discovery cutoff.
func sinceOrDefault(flag string) (string, error) {
	if flag != "" {
		return flag, nil
	}
	settings, err := currentSettings()
	if err != nil {
		return "", err
	}
	return settings.Discovery.Since, nil
}

func printReport(cmd *cobra.Command, report *driving.BatchReport) {
	out := cmd.OutOrStdout()

	printStyled(out, titleStyle, "Run %s", report.RunID)
	_, _ = fmt.Fprintln(out, renderTable(
		[]string{"Discovered", "Processed", "Skipped", "Empty", "Failed", "Duration"},
		[][]string{{
			fmt.Sprint(report.Discovered),
			fmt.Sprint(report.Processed),
			fmt.Sprint(report.Skipped),
			fmt.Sprint(report.Empty),
			fmt.Sprint(len(report.Failures)),
			report.Duration.Round(time.Millisecond).String(),
		}},
		[]columnAlignment{alignRight, alignRight, alignRight, alignRight, alignRight, alignRight},
	))

	if report.Empty > 0 {
		printStyled(out, warningStyle, "%d files had no usable content", report.Empty)
	}
	for _, f := range report.Failures {
		printStyled(out, errorStyle, "✗ %s: %v", f.Path, f.Err)
	}
	if len(report.Failures) == 0 {
		printStyled(out, successStyle, "Done.")
	}
}
