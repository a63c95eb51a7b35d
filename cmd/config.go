package cmd

import "github.com/spf13/cobra"

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage goremu configuration file values.",
	Long: `Create, edit, display, and delete the goremu configuration file.

The configuration stores application-wide values:
- backend.url / backend.api_key / backend.timeout_seconds
- import.default_work_days / import.default_payment_method / import.auto_submit_after_import`,
	Example: `
  # Create default config in $HOME/.goremu.yaml
  goremu config create

  # Show active config and source file
  goremu config show

  # Open active config in editor (creates example if missing)
  goremu config edit

  # Delete active config file
  goremu config delete
`,
}

func init() {
	rootCmd.AddCommand(configCmd)
}
