package importer

import (
	"fmt"

	"github.com/extrame/xls"
)

// XLSReader decodes legacy BIFF (.xls) workbooks, which excelize does not
// handle. Payroll systems in the wild still export these.
type XLSReader struct{}

func (r *XLSReader) Read(path string) (Grid, error) {
	workbook, err := xls.Open(path, "utf-8")
	if err != nil {
		return nil, &UnreadableFileError{Path: path, Err: err}
	}

	sheet := workbook.GetSheet(0)
	if sheet == nil {
		return nil, &UnreadableFileError{Path: path, Err: fmt.Errorf("workbook has no sheets")}
	}

	grid := make(Grid, 0, int(sheet.MaxRow)+1)
	for i := 0; i <= int(sheet.MaxRow); i++ {
		row := sheet.Row(i)
		if row == nil {
			grid = append(grid, nil)
			continue
		}

		cells := make([]Cell, row.LastCol()+1)
		for j := row.FirstCol(); j <= row.LastCol(); j++ {
			if j < 0 || j >= len(cells) {
				continue
			}
			cells[j] = textCell(row.Col(j))
		}
		grid = append(grid, cells)
	}

	return grid, nil
}
