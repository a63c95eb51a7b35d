package importer

import (
	"encoding/csv"
	"errors"
	"io"
	"os"
)

type CSVReader struct{}

func (r *CSVReader) Read(path string) (Grid, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, &UnreadableFileError{Path: path, Err: err}
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	grid := make(Grid, 0, 128)
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, &UnreadableFileError{Path: path, Err: err}
		}

		cells := make([]Cell, len(row))
		for i, value := range row {
			cells[i] = textCell(value)
		}
		grid = append(grid, cells)
	}

	return grid, nil
}
