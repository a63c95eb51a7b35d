package importer

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"goremu/internal/clock"
	"goremu/internal/period"
	"goremu/remuneracion"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

const defaultWorkDays = 30

// NormalizeOptions carries the per-import context the row normalizer needs:
// the source file (provenance note and period fallback) and the clock for the
// last-resort current-month fallback.
type NormalizeOptions struct {
	SourceFile           string
	Clock                clock.Clock
	DefaultWorkDays      int
	DefaultPaymentMethod remuneracion.PaymentMethod
}

func (o NormalizeOptions) workDays() int {
	if o.DefaultWorkDays > 0 {
		return o.DefaultWorkDays
	}
	return defaultWorkDays
}

func (o NormalizeOptions) paymentMethod() remuneracion.PaymentMethod {
	if o.DefaultPaymentMethod != "" {
		return o.DefaultPaymentMethod
	}
	return remuneracion.PaymentTransfer
}

func (o NormalizeOptions) now() time.Time {
	if o.Clock != nil {
		return o.Clock.Now()
	}
	return clock.System{}.Now()
}

// NormalizeRow turns one data row into a payroll record draft, or reports
// the row as skippable. It never fails: bad cells coerce to defaults, and
// rows without an identity and a positive amount are silently dropped so
// trailing blank or decorative rows do not poison the import.
func NormalizeRow(row []Cell, columns ColumnMap, opts NormalizeOptions) (remuneracion.Record, bool) {
	if rowIsBlank(row) {
		return remuneracion.Record{}, false
	}

	nationalID := textAt(row, columns, FieldNationalID)
	fullName := resolveDisplayName(row, columns)

	netSalary := amountAt(row, columns, FieldNetSalary)
	advance := amountAt(row, columns, FieldAdvancePayment)
	explicitTotal := amountAt(row, columns, FieldTotal)

	hasIdentity := fullName != "" || nationalID != ""
	hasAmount := netSalary.IsPositive() || advance.IsPositive() || explicitTotal.IsPositive()
	if !hasIdentity && !hasAmount {
		return remuneracion.Record{}, false
	}

	// An explicit total column is authoritative when it carries a value;
	// otherwise the total is derived from its parts.
	total := explicitTotal
	if total.IsZero() {
		total = netSalary.Add(advance)
	}

	periodLabel := resolvePeriod(row, columns, opts)
	paymentDate, ok := paymentDateFromCell(cellAt(row, indexOr(columns, FieldPaymentDate)))
	if !ok {
		paymentDate, _ = period.PaymentDate(periodLabel)
	}

	workDays := opts.workDays()
	if value, ok := parseIntCell(cellAt(row, indexOr(columns, FieldWorkDays))); ok && value > 0 {
		workDays = value
	}

	method := opts.paymentMethod()
	if raw := textAt(row, columns, FieldPaymentMethod); raw != "" {
		method = remuneracion.ParsePaymentMethod(raw)
	}

	notes := textAt(row, columns, FieldNotes)
	if notes == "" {
		notes = provenanceNote(opts)
	}

	return remuneracion.Record{
		NationalID:     nationalID,
		FullName:       fullName,
		Position:       textAt(row, columns, FieldPosition),
		Area:           textAt(row, columns, FieldArea),
		PeriodLabel:    periodLabel,
		PaymentDate:    paymentDate,
		NetSalary:      netSalary,
		AdvancePayment: advance,
		TotalAmount:    total,
		CostCenterCode: textAt(row, columns, FieldCostCenterCode),
		CostCenterName: textAt(row, columns, FieldCostCenterName),
		WorkDays:       workDays,
		PaymentMethod:  method,
		Status:         remuneracion.StatusPending,
		Notes:          notes,
		SourceFile:     filepath.Base(opts.SourceFile),
	}, true
}

// resolveDisplayName combines the name column with an optional paternal
// surname column: first token of the name plus the surname when the surname
// adds information, otherwise the raw name column unchanged.
func resolveDisplayName(row []Cell, columns ColumnMap) string {
	fullName := textAt(row, columns, FieldFullName)
	surname := textAt(row, columns, FieldSurname)
	if fullName == "" {
		return surname
	}
	if surname == "" {
		return fullName
	}

	first := strings.Fields(fullName)[0]
	if strings.EqualFold(first, surname) {
		return fullName
	}
	return first + " " + surname
}

// resolvePeriod applies the period precedence: separate month/year columns
// first (least ambiguous), then the combined period column, then the source
// file name, and finally the current calendar month.
func resolvePeriod(row []Cell, columns ColumnMap, opts NormalizeOptions) string {
	monthCell := cellAt(row, indexOr(columns, FieldMonth))
	yearCell := cellAt(row, indexOr(columns, FieldYear))
	if month, okM := parseIntCell(monthCell); okM {
		if year, okY := parseIntCell(yearCell); okY {
			if label, ok := period.FromMonthYear(month, year); ok {
				return label
			}
		}
	}

	if raw := textAt(row, columns, FieldPeriodLabel); raw != "" {
		if label, ok := period.Normalize(raw); ok {
			return label
		}
	}

	if label, ok := period.FromFilename(filepath.Base(opts.SourceFile)); ok {
		return label
	}

	return period.Current(opts.now())
}

// paymentDateFromCell coerces an explicit payment-date cell into an ISO
// date. Native numeric cells carry an Excel serial day count; text cells use
// the day-first layouts of Chilean books or are already ISO. Anything else
// is rejected so the caller can derive the date from the period instead.
func paymentDateFromCell(cell Cell) (string, bool) {
	raw := strings.TrimSpace(cell.Value)
	if raw == "" {
		return "", false
	}

	if cell.Numeric {
		serial, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return "", false
		}
		parsed, err := excelize.ExcelDateToTime(serial, false)
		if err != nil || parsed.Year() < 1990 || parsed.Year() > 2100 {
			return "", false
		}
		return parsed.Format("2006-01-02"), true
	}

	return period.ISODate(raw)
}

func provenanceNote(opts NormalizeOptions) string {
	return fmt.Sprintf(
		"Importado desde %s el %s",
		filepath.Base(opts.SourceFile),
		opts.now().Format("2006-01-02 15:04:05"),
	)
}

func textAt(row []Cell, columns ColumnMap, field Field) string {
	index, ok := columns.Index(field)
	if !ok {
		return ""
	}
	return strings.TrimSpace(cellAt(row, index).Value)
}

func amountAt(row []Cell, columns ColumnMap, field Field) decimal.Decimal {
	index, ok := columns.Index(field)
	if !ok {
		return decimal.Zero
	}
	return ParseAmount(cellAt(row, index))
}

func indexOr(columns ColumnMap, field Field) int {
	if index, ok := columns.Index(field); ok {
		return index
	}
	return -1
}
