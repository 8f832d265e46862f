package valueobject

import "fmt"

// InvoiceStatus represents the lifecycle state of an invoice.
// PENDING and APPROVED are pass-through approval states with no ledger
// effect; POSTED is the only state with a journal entry attached.
type InvoiceStatus struct {
	value string
}

var (
	InvoiceStatusDraft     = InvoiceStatus{"DRAFT"}
	InvoiceStatusPending   = InvoiceStatus{"PENDING"}
	InvoiceStatusApproved  = InvoiceStatus{"APPROVED"}
	InvoiceStatusPosted    = InvoiceStatus{"POSTED"}
	InvoiceStatusCancelled = InvoiceStatus{"CANCELLED"}
)

var validInvoiceStatuses = map[string]InvoiceStatus{
	"DRAFT":     InvoiceStatusDraft,
	"PENDING":   InvoiceStatusPending,
	"APPROVED":  InvoiceStatusApproved,
	"POSTED":    InvoiceStatusPosted,
	"CANCELLED": InvoiceStatusCancelled,
}

// NewInvoiceStatus validates and creates an InvoiceStatus from a string.
func NewInvoiceStatus(s string) (InvoiceStatus, error) {
	if st, ok := validInvoiceStatuses[s]; ok {
		return st, nil
	}
	return InvoiceStatus{}, fmt.Errorf("invalid invoice status: %q", s)
}

func (s InvoiceStatus) String() string { return s.value }
func (s InvoiceStatus) IsZero() bool   { return s.value == "" }

// CanPost reports whether an invoice in this status may be posted.
func (s InvoiceStatus) CanPost() bool {
	return s == InvoiceStatusDraft || s == InvoiceStatusPending || s == InvoiceStatusApproved
}

// PaymentState is a reporting projection derived from amounts and dates.
// It is not part of the invoice state machine.
type PaymentState string

const (
	PaymentStateOpen          PaymentState = "OPEN"
	PaymentStatePaid          PaymentState = "PAID"
	PaymentStatePartiallyPaid PaymentState = "PARTIALLY_PAID"
	PaymentStateOverdue       PaymentState = "OVERDUE"
)
