package cmd

import (
	"fmt"

	"goremu/config"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show active configuration values.",
	Long: `Display the currently loaded configuration and the resolved config file path.

This command validates the configuration before printing values.`,
	Example: `
  # Show active configuration
  goremu config show
`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadAndValidate()
		if err != nil {
			fmt.Println("Invalid config:", err)
			return
		}

		if configPath := viper.ConfigFileUsed(); configPath != "" {
			fmt.Println("Config file loaded from:", configPath)
			fmt.Println("Configuration:")
			fmt.Printf("backend.url: %s\n", cfg.Backend.URL)
			apiKey := "(not set)"
			if cfg.Backend.APIKey != "" {
				apiKey = "(set)"
			}
			fmt.Printf("backend.api_key: %s\n", apiKey)
			fmt.Printf("backend.timeout_seconds: %d\n", cfg.Backend.TimeoutSeconds)
			fmt.Printf("import.default_work_days: %d\n", cfg.Import.DefaultWorkDays)
			fmt.Printf("import.default_payment_method: %s\n", cfg.Import.DefaultPaymentMethod)
			fmt.Printf("import.auto_submit_after_import: %t\n", cfg.Import.AutoSubmitAfterImport)
		}
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
}
