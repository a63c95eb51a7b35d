package importer

import (
	"goremu/internal/clock"
	"goremu/remuneracion"

	"github.com/sirupsen/logrus"
)

// Result summarizes one import run.
type Result struct {
	SourceFile    string
	HeaderRow     int
	RowsRead      int
	RowsSkipped   int
	RowsDiscarded int
	Records       []remuneracion.Record
}

// RunOptions configures one pipeline invocation.
type RunOptions struct {
	Clock                clock.Clock
	KnownIDs             []int64
	DefaultWorkDays      int
	DefaultPaymentMethod remuneracion.PaymentMethod
}

// Run executes the full import pipeline for one file: decode, locate the
// header, resolve columns, normalize each data row and assemble records with
// temporary IDs. Systemic failures abort with a typed error; individual bad
// rows are skipped.
func Run(path string, opts RunOptions) (*Result, error) {
	reader, err := ReaderForPath(path)
	if err != nil {
		return nil, err
	}

	grid, err := reader.Read(path)
	if err != nil {
		return nil, err
	}

	return RunGrid(grid, path, opts)
}

// RunGrid runs the pipeline stages that follow decoding. Split out so the
// web upload handler and tests can feed an already-decoded grid.
func RunGrid(grid Grid, sourcePath string, opts RunOptions) (*Result, error) {
	headerRow, err := LocateHeader(grid)
	if err != nil {
		return nil, err
	}

	columns, err := ResolveColumns(grid[headerRow])
	if err != nil {
		return nil, err
	}

	normalizeOpts := NormalizeOptions{
		SourceFile:           sourcePath,
		Clock:                opts.Clock,
		DefaultWorkDays:      opts.DefaultWorkDays,
		DefaultPaymentMethod: opts.DefaultPaymentMethod,
	}

	dataRows := grid[headerRow+1:]
	drafts := make([]remuneracion.Record, 0, len(dataRows))
	skipped := 0
	for _, row := range dataRows {
		draft, ok := NormalizeRow(row, columns, normalizeOpts)
		if !ok {
			skipped++
			continue
		}
		drafts = append(drafts, draft)
	}

	if len(drafts) == 0 {
		return nil, &NoValidRecordsError{RowsConsidered: len(dataRows)}
	}

	records, err := Assemble(drafts, AssembleOptions{Clock: opts.Clock, KnownIDs: opts.KnownIDs})
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"archivo":     sourcePath,
		"fila_header": headerRow,
		"leidas":      len(dataRows),
		"omitidas":    skipped,
		"registros":   len(records),
	}).Info("importacion normalizada")

	return &Result{
		SourceFile:    sourcePath,
		HeaderRow:     headerRow,
		RowsRead:      len(dataRows),
		RowsSkipped:   skipped,
		RowsDiscarded: len(drafts) - len(records),
		Records:       records,
	}, nil
}
