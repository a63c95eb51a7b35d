package cmd

import (
	"fmt"
	"strings"

	"goremu/backend"
	"goremu/config"
	"goremu/importer"
	"goremu/internal/clock"
	"goremu/storage"

	"github.com/spf13/cobra"
)

var (
	importInputs     []string
	importDBPath     string
	importWorkDays   int
	importSubmitMode string
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import payroll books into a local SQLite database",
	Long: `Read payroll books, locate the header row inside each sheet, resolve columns
by Spanish keyword matching, and normalize each data row into a local record.

The period is taken from explicit month/year columns when present, then from a
combined period column, then from the file name, and finally from the current
date. Rows without a name or without a positive total are discarded and logged.

Records already stored from an earlier import of the same file are ignored.`,
	Example: `
  # Import one payroll book
  goremu import -i remuneraciones_04-2024.xlsx

  # Import several books into a custom database
  goremu import -i libro_marzo.xlsx -i libro_abril.xlsx --db ./remu.db

  # Import a CSV book and submit the result immediately
  goremu import -i remuneraciones.csv --submit on

  # Import with custom config file
  goremu --configFile ./custom-goremu.yaml import -i ./libro.xlsx
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadAndValidate()
		if err != nil {
			return err
		}

		store, err := storage.OpenSQLite(importDBPath)
		if err != nil {
			return err
		}
		defer store.Close()

		knownIDs, err := store.KnownIDs()
		if err != nil {
			return err
		}

		workDays := cfg.Import.DefaultWorkDays
		if importWorkDays > 0 {
			workDays = importWorkDays
		}

		totalRead := 0
		totalSkipped := 0
		totalDiscarded := 0
		totalInserted := 0
		for _, input := range importInputs {
			result, err := importer.Run(input, importer.RunOptions{
				Clock:                clock.System{},
				KnownIDs:             knownIDs,
				DefaultWorkDays:      workDays,
				DefaultPaymentMethod: cfg.Import.PaymentMethod(),
			})
			if err != nil {
				return fmt.Errorf("import %s: %w", input, err)
			}

			inserted, err := store.InsertRecords(result.Records)
			if err != nil {
				return err
			}

			for _, record := range result.Records {
				knownIDs = append(knownIDs, record.ID)
			}

			totalRead += result.RowsRead
			totalSkipped += result.RowsSkipped
			totalDiscarded += result.RowsDiscarded
			totalInserted += inserted
		}

		fmt.Printf("Import completed. Files: %d, Rows read: %d, Rows skipped: %d, Rows discarded: %d, Rows persisted: %d\n",
			len(importInputs),
			totalRead,
			totalSkipped,
			totalDiscarded,
			totalInserted,
		)

		shouldSubmit, err := resolveSubmitMode(importSubmitMode, cfg.Import.AutoSubmitAfterImport)
		if err != nil {
			return err
		}
		if shouldSubmit {
			client, err := backend.NewClient(backend.ClientConfig{
				BaseURL: cfg.Backend.URL,
				APIKey:  cfg.Backend.APIKey,
				Timeout: cfg.Backend.Timeout(),
			})
			if err != nil {
				return err
			}
			summary, err := submitPending(cmd.Context(), store, client)
			if err != nil {
				return err
			}
			fmt.Printf("Auto-submit completed. Batch: %s, Submitted: %d, Saved: %d, Failed: %d\n",
				summary.BatchID, summary.Submitted, summary.Saved, summary.Failed)
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(importCmd)

	importCmd.Flags().StringArrayVarP(&importInputs, "input", "i", nil, "Input file path (repeatable)")
	importCmd.Flags().StringVar(&importDBPath, "db", "./goremu.db", "Path to local SQLite database")
	importCmd.Flags().IntVar(&importWorkDays, "work-days", 0, "Default worked days when the book has no such column (overrides config)")
	importCmd.Flags().StringVar(&importSubmitMode, "submit", "auto", "Submit after import: auto|on|off")

	_ = importCmd.MarkFlagRequired("input")
}

func resolveSubmitMode(mode string, configDefault bool) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "", "auto":
		return configDefault, nil
	case "on", "true", "yes":
		return true, nil
	case "off", "false", "no":
		return false, nil
	default:
		return false, fmt.Errorf("invalid submit mode %q (supported: auto|on|off)", mode)
	}
}
