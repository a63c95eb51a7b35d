package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"goremu/storage"

	"github.com/spf13/cobra"
)

var (
	listDBPath      string
	listPeriod      string
	listPendingOnly bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored payroll records",
	Long: `Print stored payroll records as a table.

Use --period to filter by payroll period and --pending to show only records
not yet accepted by the backend.`,
	Example: `
  # List everything
  goremu list

  # List one period
  goremu list --period 04/2024

  # List records awaiting submission
  goremu list --pending
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := storage.OpenSQLite(listDBPath)
		if err != nil {
			return err
		}
		defer store.Close()

		var rows []storage.Row
		if listPendingOnly {
			rows, err = store.ListPending()
		} else {
			rows, err = store.ListRecords(listPeriod)
		}
		if err != nil {
			return err
		}

		writer := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(writer, "ID\tREMOTE\tRUT\tNOMBRE\tPERIODO\tTOTAL\tESTADO\tERROR")
		for _, row := range rows {
			fmt.Fprintf(writer, "%d\t%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
				row.LocalID,
				row.RemoteID,
				row.Record.NationalID,
				row.Record.FullName,
				row.Record.PeriodLabel,
				row.Record.TotalAmount.String(),
				row.Record.Status,
				row.SubmitError,
			)
		}
		if err := writer.Flush(); err != nil {
			return err
		}

		fmt.Printf("Total: %d record(s)\n", len(rows))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().StringVar(&listDBPath, "db", "./goremu.db", "Path to local SQLite database")
	listCmd.Flags().StringVar(&listPeriod, "period", "", "Filter by payroll period, format MM/YYYY")
	listCmd.Flags().BoolVar(&listPendingOnly, "pending", false, "Show only records not yet accepted by the backend")
}
