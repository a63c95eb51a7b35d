package output

import (
	"fmt"
	"strings"

	"goremu/remuneracion"
)

type Writer interface {
	Write(path string, records []remuneracion.Record) error
}

func WriterForFormat(format string) (Writer, error) {
	switch normalizeFormat(format) {
	case "csv":
		return &CSVWriter{}, nil
	case "excel", "xlsx":
		return &ExcelWriter{}, nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}

func normalizeFormat(value string) string {
	return strings.TrimSpace(strings.ToLower(value))
}

var exportHeaders = []string{
	"RUT", "Nombre", "Cargo", "Area", "Periodo", "FechaPago",
	"SueldoLiquido", "Anticipo", "MontoTotal",
	"CentroCostoCodigo", "CentroCostoNombre",
	"DiasTrabajados", "FormaPago", "Estado", "Notas", "Archivo",
}

func exportRow(record remuneracion.Record) []string {
	return []string{
		record.NationalID,
		record.FullName,
		record.Position,
		record.Area,
		record.PeriodLabel,
		record.PaymentDate,
		record.NetSalary.String(),
		record.AdvancePayment.String(),
		record.TotalAmount.String(),
		record.CostCenterCode,
		record.CostCenterName,
		fmt.Sprintf("%d", record.WorkDays),
		string(record.PaymentMethod),
		string(record.Status),
		record.Notes,
		record.SourceFile,
	}
}
