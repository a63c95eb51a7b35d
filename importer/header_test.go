package importer

import (
	"errors"
	"testing"
)

func row(values ...string) []Cell {
	cells := make([]Cell, len(values))
	for i, value := range values {
		cells[i] = textCell(value)
	}
	return cells
}

func paddedGrid(headerIndex int, header []Cell) Grid {
	grid := make(Grid, 0, headerIndex+1)
	for i := 0; i < headerIndex; i++ {
		grid = append(grid, row("Empresa Demo S.A.", ""))
	}
	return append(grid, header)
}

func TestLocateHeaderFirstRow(t *testing.T) {
	t.Parallel()

	grid := Grid{
		row("RUT", "NOMBRE", "SUELDO LIQUIDO"),
		row("12.345.678-9", "Ana Rojas", "650000"),
	}

	index, err := LocateHeader(grid)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if index != 0 {
		t.Fatalf("expected header at row 0, got %d", index)
	}
}

func TestLocateHeaderSkipsTitleRows(t *testing.T) {
	t.Parallel()

	grid := Grid{
		row("Empresa Demo S.A."),
		row("Libro de Remuneraciones Abril"),
		row(""),
		row("RUT", "NOMBRE", "LÍQUIDO"),
		row("12.345.678-9", "Ana Rojas", "650000"),
	}

	index, err := LocateHeader(grid)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if index != 3 {
		t.Fatalf("expected header at row 3, got %d", index)
	}
}

func TestLocateHeaderAtWindowBoundary(t *testing.T) {
	t.Parallel()

	grid := paddedGrid(14, row("RUT", "NOMBRE", "SUELDO"))
	index, err := LocateHeader(grid)
	if err != nil {
		t.Fatalf("row 14 is inside the scan window: %v", err)
	}
	if index != 14 {
		t.Fatalf("expected header at row 14, got %d", index)
	}
}

func TestLocateHeaderBeyondWindow(t *testing.T) {
	t.Parallel()

	grid := paddedGrid(15, row("RUT", "NOMBRE", "SUELDO"))
	_, err := LocateHeader(grid)

	var headerErr *HeaderNotFoundError
	if !errors.As(err, &headerErr) {
		t.Fatalf("expected HeaderNotFoundError, got %v", err)
	}
	if headerErr.RowsScanned != 15 {
		t.Fatalf("expected 15 rows scanned, got %d", headerErr.RowsScanned)
	}
}

func TestLocateHeaderEmptyGrid(t *testing.T) {
	t.Parallel()

	_, err := LocateHeader(Grid{})
	var headerErr *HeaderNotFoundError
	if !errors.As(err, &headerErr) {
		t.Fatalf("expected HeaderNotFoundError, got %v", err)
	}
}
