package importer

import (
	"strconv"
	"strings"
)

// Cell is one raw spreadsheet cell. Value keeps the text exactly as stored in
// the source; Numeric marks cells that carried a native numeric value, so the
// amount coercion can take them verbatim instead of scrubbing formatting.
type Cell struct {
	Value   string
	Numeric bool
}

// Grid is the decoded worksheet: rows of cells, mixed types, no coercion yet.
type Grid [][]Cell

func textCell(value string) Cell {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return Cell{}
	}
	if _, err := strconv.ParseFloat(trimmed, 64); err == nil {
		return Cell{Value: trimmed, Numeric: true}
	}
	return Cell{Value: trimmed}
}

func (c Cell) IsEmpty() bool {
	return strings.TrimSpace(c.Value) == ""
}

func cellAt(row []Cell, index int) Cell {
	if index < 0 || index >= len(row) {
		return Cell{}
	}
	return row[index]
}

func rowIsBlank(row []Cell) bool {
	for _, cell := range row {
		if !cell.IsEmpty() {
			return false
		}
	}
	return true
}
