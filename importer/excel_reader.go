package importer

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

type ExcelReader struct{}

// Read decodes the first worksheet of an xlsx/xlsm file into a Grid. Raw cell
// values are requested so numeric cells arrive unformatted ("650000.5"
// instead of "$ 650.000,50").
func (r *ExcelReader) Read(path string) (Grid, error) {
	file, err := excelize.OpenFile(path)
	if err != nil {
		return nil, &UnreadableFileError{Path: path, Err: err}
	}
	defer file.Close()

	sheetName := file.GetSheetName(0)
	if sheetName == "" {
		return nil, &UnreadableFileError{Path: path, Err: fmt.Errorf("workbook has no sheets")}
	}

	rows, err := file.GetRows(sheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, &UnreadableFileError{Path: path, Err: fmt.Errorf("read rows from sheet %s: %w", sheetName, err)}
	}

	grid := make(Grid, 0, len(rows))
	for _, row := range rows {
		cells := make([]Cell, len(row))
		for i, value := range row {
			cells[i] = textCell(value)
		}
		grid = append(grid, cells)
	}

	return grid, nil
}
