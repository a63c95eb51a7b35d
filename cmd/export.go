package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"goremu/output"
	"goremu/remuneracion"
	"goremu/storage"

	"github.com/spf13/cobra"
)

var (
	exportFormat string
	exportPeriod string
	exportOutput string
	exportDBPath string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export stored payroll records from SQLite to CSV/Excel",
	Long: `Export stored payroll records from SQLite.

Output format can be selected explicitly via --format or inferred from the
--output extension. Use --period to export a single payroll period.`,
	Example: `
  # Export all records to CSV
  goremu export --db ./goremu.db --output ./remuneraciones.csv

  # Export one period to Excel
  goremu export --period 04/2024 --output ./remuneraciones-abril.xlsx

  # Force Excel format independent of extension
  goremu export --format excel --output ./remuneraciones.out
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		format := exportFormat
		if strings.TrimSpace(format) == "" {
			format = detectExportFormat(exportOutput)
		}

		store, err := storage.OpenSQLite(exportDBPath)
		if err != nil {
			return err
		}
		defer store.Close()

		rows, err := store.ListRecords(exportPeriod)
		if err != nil {
			return err
		}

		records := make([]remuneracion.Record, 0, len(rows))
		for _, row := range rows {
			records = append(records, row.Record)
		}

		writer, err := output.WriterForFormat(format)
		if err != nil {
			return err
		}
		if err := writer.Write(exportOutput, records); err != nil {
			return err
		}

		fmt.Printf("Export completed. Rows: %d, Format: %s, File: %s\n", len(records), format, exportOutput)
		return nil
	},
}

func detectExportFormat(path string) string {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	switch ext {
	case "csv":
		return "csv"
	case "xlsx", "xlsm", "xls":
		return "excel"
	default:
		return "csv"
	}
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "", "Output format: csv|excel (optional, inferred from output extension)")
	exportCmd.Flags().StringVar(&exportPeriod, "period", "", "Filter by payroll period, format MM/YYYY")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file path")
	exportCmd.Flags().StringVar(&exportDBPath, "db", "./goremu.db", "Path to local SQLite database")

	_ = exportCmd.MarkFlagRequired("output")
}
