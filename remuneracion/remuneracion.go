package remuneracion

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// PaymentMethod is how a payroll record is paid out.
type PaymentMethod string

const (
	PaymentTransfer PaymentMethod = "transferencia"
	PaymentCheck    PaymentMethod = "cheque"
	PaymentCash     PaymentMethod = "efectivo"
)

// Status is the lifecycle state of a payroll record on the backend.
type Status string

const (
	StatusPending   Status = "pendiente"
	StatusApproved  Status = "aprobado"
	StatusPaid      Status = "pagado"
	StatusRejected  Status = "rechazado"
	StatusCancelled Status = "anulado"
)

// Record is the normalized payroll record used across the importer, storage,
// output writers and the backend submitter. ID is negative while the record
// only exists locally and is replaced by the server-assigned ID after a
// successful batch submission.
type Record struct {
	ID             int64
	NationalID     string
	FullName       string
	Position       string
	Area           string
	PeriodLabel    string
	PaymentDate    string
	NetSalary      decimal.Decimal
	AdvancePayment decimal.Decimal
	TotalAmount    decimal.Decimal
	CostCenterCode string
	CostCenterName string
	WorkDays       int
	PaymentMethod  PaymentMethod
	Status         Status
	Notes          string
	SourceFile     string
}

// IsTemporary reports whether the record still carries a locally minted ID.
func (r Record) IsTemporary() bool {
	return r.ID < 0
}

// ParsePaymentMethod maps free-form input onto a known payment method.
// Unknown or empty values default to bank transfer.
func ParsePaymentMethod(value string) PaymentMethod {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "transferencia", "transfer", "deposito", "depósito":
		return PaymentTransfer
	case "cheque", "check":
		return PaymentCheck
	case "efectivo", "cash", "caja":
		return PaymentCash
	default:
		return PaymentTransfer
	}
}

// ParseStatus maps free-form input onto a known status. Unknown or empty
// values default to pending.
func ParseStatus(value string) Status {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "aprobado", "approved":
		return StatusApproved
	case "pagado", "paid":
		return StatusPaid
	case "rechazado", "rejected":
		return StatusRejected
	case "anulado", "cancelado", "cancelled":
		return StatusCancelled
	default:
		return StatusPending
	}
}

func (r Record) String() string {
	return fmt.Sprintf("remuneracion id=%d rut=%s nombre=%q periodo=%s total=%s",
		r.ID, r.NationalID, r.FullName, r.PeriodLabel, r.TotalAmount.String())
}
