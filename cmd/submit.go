package cmd

import (
	"context"
	"fmt"

	"goremu/backend"
	"goremu/config"
	"goremu/remuneracion"
	"goremu/storage"
	"goremu/submitter"

	"github.com/spf13/cobra"
)

var (
	submitDBPath string
	submitURL    string
)

var submitCmd = &cobra.Command{
	Use:   "submit",
	Short: "Submit pending payroll records to the finance backend",
	Long: `Read pending records from SQLite and post them to the backend in a single
batch call.

The backend may accept the whole batch or only part of it. Accepted records
get their server-assigned ID stored locally; rejected records keep their
rejection reason and stay pending, so a later submit retries them.`,
	Example: `
  # Submit all pending records from the default DB
  goremu submit

  # Submit from a custom database
  goremu submit --db ./remu.db

  # Override the backend URL from config
  goremu submit --url https://finanzas.example.com
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadAndValidate()
		if err != nil {
			return err
		}

		baseURL := cfg.Backend.URL
		if submitURL != "" {
			baseURL = submitURL
		}

		client, err := backend.NewClient(backend.ClientConfig{
			BaseURL: baseURL,
			APIKey:  cfg.Backend.APIKey,
			Timeout: cfg.Backend.Timeout(),
		})
		if err != nil {
			return err
		}

		store, err := storage.OpenSQLite(submitDBPath)
		if err != nil {
			return err
		}
		defer store.Close()

		summary, err := submitPending(cmd.Context(), store, client)
		if err != nil {
			return err
		}

		fmt.Printf("Submit completed. Batch: %s, Submitted: %d, Saved: %d, Failed: %d\n",
			summary.BatchID, summary.Submitted, summary.Saved, summary.Failed)
		for _, failure := range summary.Failures {
			fmt.Printf("  Failed row %d (local id %d): %s\n", failure.RowIndex, failure.LocalID, failure.Reason)
		}
		return nil
	},
}

type submitSummary struct {
	BatchID   string
	Submitted int
	Saved     int
	Failed    int
	Failures  []submitRowFailure
}

type submitRowFailure struct {
	RowIndex int
	LocalID  int64
	Reason   string
}

func init() {
	rootCmd.AddCommand(submitCmd)

	submitCmd.Flags().StringVar(&submitDBPath, "db", "./goremu.db", "Path to local SQLite database")
	submitCmd.Flags().StringVar(&submitURL, "url", "", "Override backend URL from config")
}

// submitPending posts all pending rows in one batch and writes the outcome
// back per row: accepted rows get their remote ID, rejected rows keep the
// backend's reason and stay pending.
func submitPending(ctx context.Context, store *storage.SQLiteStore, client backend.Client) (*submitSummary, error) {
	pending, err := store.ListPending()
	if err != nil {
		return nil, err
	}
	if len(pending) == 0 {
		return nil, fmt.Errorf("no pending records to submit")
	}

	records := make([]remuneracion.Record, 0, len(pending))
	for _, row := range pending {
		records = append(records, row.Record)
	}

	result, err := submitter.Submit(ctx, client, records)
	if err != nil {
		return nil, err
	}

	return persistSubmitOutcome(store, pending, result)
}

// persistSubmitOutcome pairs the submitter's positional outcome back onto the
// local rows: failures are keyed by batch index, accepted rows consume the
// saved records in order.
func persistSubmitOutcome(store *storage.SQLiteStore, pending []storage.Row, result *submitter.Result) (*submitSummary, error) {
	failedIndex := make(map[int]string, len(result.Failures))
	for _, failure := range result.Failures {
		failedIndex[failure.RowIndex] = failure.Reason
	}

	summary := &submitSummary{
		BatchID:   result.BatchID,
		Submitted: result.Submitted,
	}

	savedPos := 0
	for i, row := range pending {
		if reason, failed := failedIndex[i]; failed {
			if err := store.MarkSubmitFailed(row.LocalID, reason); err != nil {
				return nil, err
			}
			summary.Failed++
			summary.Failures = append(summary.Failures, submitRowFailure{RowIndex: i, LocalID: row.LocalID, Reason: reason})
			continue
		}

		if savedPos >= len(result.Saved) {
			reason := "sin id asignado por el servidor"
			if err := store.MarkSubmitFailed(row.LocalID, reason); err != nil {
				return nil, err
			}
			summary.Failed++
			summary.Failures = append(summary.Failures, submitRowFailure{RowIndex: i, LocalID: row.LocalID, Reason: reason})
			continue
		}

		if err := store.MarkSubmitted(row.LocalID, result.Saved[savedPos].ID); err != nil {
			return nil, err
		}
		savedPos++
		summary.Saved++
	}

	return summary, nil
}
