package importer

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestRunGridValidRowsPlusTrailingBlanks(t *testing.T) {
	t.Parallel()

	grid := Grid{
		row("Libro de Remuneraciones"),
		row("RUT", "NOMBRE", "SUELDO LIQUIDO", "ANTICIPO", "PERIODO"),
		row("12.345.678-9", "Ana Rojas", "650000", "100000", "04/2024"),
		row("", "", "", "", ""),
		row("", "", "", "", ""),
		row("", "", "", "", ""),
	}

	result, err := RunGrid(grid, "libro.xlsx", RunOptions{Clock: testClock})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.HeaderRow != 1 {
		t.Fatalf("header row = %d", result.HeaderRow)
	}
	if result.RowsRead != 4 {
		t.Fatalf("rows read = %d", result.RowsRead)
	}
	if result.RowsSkipped != 3 {
		t.Fatalf("rows skipped = %d, blank trailing rows must be skipped silently", result.RowsSkipped)
	}
	if len(result.Records) != 1 {
		t.Fatalf("expected exactly 1 record, got %d", len(result.Records))
	}

	record := result.Records[0]
	if !record.IsTemporary() {
		t.Fatalf("expected a temporary id, got %d", record.ID)
	}
	if record.PeriodLabel != "04/2024" {
		t.Fatalf("period = %q", record.PeriodLabel)
	}
}

func TestRunGridAllRowsInvalid(t *testing.T) {
	t.Parallel()

	grid := Grid{
		row("RUT", "NOMBRE", "SUELDO LIQUIDO"),
		row("", "", "0"),
		row("", "", ""),
	}

	_, err := RunGrid(grid, "libro.xlsx", RunOptions{Clock: testClock})
	var noValid *NoValidRecordsError
	if !errors.As(err, &noValid) {
		t.Fatalf("expected NoValidRecordsError, got %v", err)
	}
}

func TestRunGridMissingColumnsFailsBeforeRows(t *testing.T) {
	t.Parallel()

	grid := Grid{
		row("TOTAL", "PERIODO"),
		row("650000", "04/2024"),
	}

	_, err := RunGrid(grid, "libro.xlsx", RunOptions{Clock: testClock})
	var missing *MissingRequiredColumnsError
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingRequiredColumnsError, got %v", err)
	}
}

func TestRunReadsRealWorkbook(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "remuneraciones_04-2024.xlsx")
	writeTestWorkbook(t, path, [][]any{
		{"Empresa Demo S.A."},
		{"RUT", "NOMBRE", "SUELDO LIQUIDO", "ANTICIPO"},
		{"12.345.678-9", "Ana Rojas", 650000, 100000},
		{"9.876.543-2", "Luis Soto", 720000, 0},
	})

	result, err := Run(path, RunOptions{Clock: testClock})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(result.Records))
	}

	// No period columns anywhere: the file name supplies the period.
	for _, record := range result.Records {
		if record.PeriodLabel != "04/2024" {
			t.Fatalf("period = %q, want filename fallback", record.PeriodLabel)
		}
	}
}

func TestRunUnreadableFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "broken.xlsx")
	if err := os.WriteFile(path, []byte("this is not a spreadsheet"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	_, err := Run(path, RunOptions{Clock: testClock})
	var unreadable *UnreadableFileError
	if !errors.As(err, &unreadable) {
		t.Fatalf("expected UnreadableFileError, got %v", err)
	}
}

func TestRunUnsupportedExtension(t *testing.T) {
	t.Parallel()

	if _, err := Run("libro.pdf", RunOptions{Clock: testClock}); err == nil {
		t.Fatal("expected unsupported extension error")
	}
}

func writeTestWorkbook(t *testing.T, path string, rows [][]any) {
	t.Helper()

	file := excelize.NewFile()
	defer file.Close()

	sheet := file.GetSheetName(0)
	for i, cells := range rows {
		for j, value := range cells {
			cell, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				t.Fatalf("cell name: %v", err)
			}
			if err := file.SetCellValue(sheet, cell, value); err != nil {
				t.Fatalf("set cell %s: %v", cell, err)
			}
		}
	}

	if err := file.SaveAs(path); err != nil {
		t.Fatalf("save workbook: %v", err)
	}
}
