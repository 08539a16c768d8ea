package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/gazettes-cli/internal/core/domain"
)

var versionPasses bool

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the gazettes version",
	Long: `Print the gazettes version. With --passes the built-in normalisation
pass order is printed too, so a cleaned corpus can be traced back to the
rules that produced it.`,
	Args: cobra.NoArgs,
	RunE: runVersion,
}

func init() {
	versionCmd.Flags().BoolVar(&versionPasses, "passes", false, "Also print the default normalisation passes")
	rootCmd.AddCommand(versionCmd)
}

func runVersion(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "gazettes version %s\n", version)
	if versionPasses {
		fmt.Fprintf(out, "passes: %s\n", strings.Join(domain.DefaultPasses(), " > "))
	}
	return nil
}
