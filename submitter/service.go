// Package submitter sends assembled payroll records to the backend in one
// batch and reconciles server-assigned IDs back onto the local records.
// Partial success is the normal case: rejected rows are reported, not fatal.
package submitter

import (
	"context"
	"errors"
	"fmt"

	"goremu/backend"
	"goremu/remuneracion"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// RowFailure is one record the server rejected, positioned by its index in
// the submitted batch.
type RowFailure struct {
	RowIndex int
	Reason   string
}

// Result is the outcome of one batch submission.
type Result struct {
	BatchID   string
	Submitted int
	Saved     []remuneracion.Record
	Failures  []RowFailure
}

// Submit posts all records in a single batch call. Records accepted by the
// server come back with their temporary ID replaced by the real one, in
// submission order; rejected rows are collected as failures. An accepted
// request that yields no IDs at all is an error.
func Submit(ctx context.Context, client backend.Client, records []remuneracion.Record) (*Result, error) {
	if len(records) == 0 {
		return nil, errors.New("no records to submit")
	}

	batchID := uuid.NewString()
	items := make([]backend.BatchItem, 0, len(records))
	for _, record := range records {
		items = append(items, toBatchItem(record))
	}

	response, err := client.CreateBatch(ctx, items)
	if err != nil {
		return nil, fmt.Errorf("submit batch %s: %w", batchID, err)
	}
	if len(response.IDs) == 0 {
		return nil, fmt.Errorf("submit batch %s: %w", batchID, backend.ErrEmptyBatchResponse)
	}

	rejected := make(map[int]string, len(response.Errors))
	for _, rowErr := range response.Errors {
		rejected[rowErr.Index] = rowErr.Reason
	}

	result := &Result{
		BatchID:   batchID,
		Submitted: len(records),
		Saved:     make([]remuneracion.Record, 0, len(response.IDs)),
	}

	nextID := 0
	for i, record := range records {
		if reason, isRejected := rejected[i]; isRejected {
			result.Failures = append(result.Failures, RowFailure{RowIndex: i, Reason: reason})
			continue
		}
		if nextID >= len(response.IDs) {
			result.Failures = append(result.Failures, RowFailure{RowIndex: i, Reason: "sin id asignado por el servidor"})
			continue
		}

		record.ID = response.IDs[nextID]
		nextID++
		result.Saved = append(result.Saved, record)
	}

	logrus.WithFields(logrus.Fields{
		"batch":     result.BatchID,
		"enviados":  result.Submitted,
		"guardados": len(result.Saved),
		"fallidos":  len(result.Failures),
	}).Info("lote de remuneraciones enviado")

	return result, nil
}

func toBatchItem(record remuneracion.Record) backend.BatchItem {
	return backend.BatchItem{
		RUT:               record.NationalID,
		NombreCompleto:    record.FullName,
		Cargo:             record.Position,
		Area:              record.Area,
		Periodo:           record.PeriodLabel,
		FechaPago:         record.PaymentDate,
		SueldoLiquido:     record.NetSalary,
		Anticipo:          record.AdvancePayment,
		MontoTotal:        record.TotalAmount,
		CodigoCentroCosto: record.CostCenterCode,
		NombreCentroCosto: record.CostCenterName,
		DiasTrabajados:    record.WorkDays,
		MetodoPago:        string(record.PaymentMethod),
		Estado:            string(record.Status),
		Notas:             record.Notes,
	}
}
