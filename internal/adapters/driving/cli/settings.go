package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and change settings stored in config.toml. Lists are comma separated.
Environment variables such as GAZETTES_BATCH_WORKERS override stored values.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	Args:  cobra.NoArgs,
	RunE:  runSettingsShow,
}

var settingsGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Print one setting",
	Args:  cobra.ExactArgs(1),
	RunE:  runSettingsGet,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change one setting",
	Args:  cobra.ExactArgs(2),
	RunE:  runSettingsSet,
}

var settingsResetCmd = &cobra.Command{
	Use:   "reset <key>",
	Short: "Restore a setting to its default",
	Args:  cobra.ExactArgs(1),
	RunE:  runSettingsReset,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsGetCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsResetCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if err := requireService(settingsService != nil, "settings"); err != nil {
		return err
	}

	rows := make([][]string, 0, len(settingsService.Keys()))
	for _, key := range settingsService.Keys() {
		value, err := settingsService.Value(key)
		if err != nil {
			return err
		}
		rows = append(rows, []string{key, value})
	}

	_, _ = fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Key", "Value"}, rows, nil))
	return nil
}

func runSettingsGet(cmd *cobra.Command, args []string) error {
	if err := requireService(settingsService != nil, "settings"); err != nil {
		return err
	}

	value, err := settingsService.Value(args[0])
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), value)
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if err := requireService(settingsService != nil, "settings"); err != nil {
		return err
	}

	if err := settingsService.SetValue(args[0], args[1]); err != nil {
		return err
	}
	printStyled(cmd.OutOrStdout(), successStyle, "%s updated", args[0])
	return nil
}

func runSettingsReset(cmd *cobra.Command, args []string) error {
	if err := requireService(settingsService != nil, "settings"); err != nil {
		return err
	}

	if err := settingsService.Reset(args[0]); err != nil {
		return err
	}
	printStyled(cmd.OutOrStdout(), successStyle, "%s reset to default", args[0])
	return nil
}
