package event

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finbooks/backoffice/pkg/events"
)

const AggregateTypeInvoice = "Invoice"

// InvoicePosted is emitted when an invoice is posted to the ledger.
type InvoicePosted struct {
	events.BaseEvent
	InvoiceID      uuid.UUID       `json:"invoice_id"`
	JournalEntryID uuid.UUID       `json:"journal_entry_id"`
	InvoiceType    string          `json:"invoice_type"`
	Total          decimal.Decimal `json:"total"`
	PostedBy       string          `json:"posted_by"`
	PostedAt       time.Time       `json:"posted_at"`
}

func NewInvoicePosted(invoiceID, journalEntryID uuid.UUID, invoiceType string, total decimal.Decimal, postedBy string, postedAt time.Time) InvoicePosted {
	payload, _ := json.Marshal(struct {
		InvoiceID      uuid.UUID       `json:"invoice_id"`
		JournalEntryID uuid.UUID       `json:"journal_entry_id"`
		InvoiceType    string          `json:"invoice_type"`
		Total          decimal.Decimal `json:"total"`
		PostedBy       string          `json:"posted_by"`
		PostedAt       time.Time       `json:"posted_at"`
	}{invoiceID, journalEntryID, invoiceType, total, postedBy, postedAt})

	return InvoicePosted{
		BaseEvent:      events.NewBaseEvent("invoicing.invoice.posted", invoiceID, AggregateTypeInvoice, payload),
		InvoiceID:      invoiceID,
		JournalEntryID: journalEntryID,
		InvoiceType:    invoiceType,
		Total:          total,
		PostedBy:       postedBy,
		PostedAt:       postedAt,
	}
}

// InvoiceCancelled is emitted when a posted or pre-posted invoice is cancelled.
type InvoiceCancelled struct {
	events.BaseEvent
	InvoiceID   uuid.UUID `json:"invoice_id"`
	Reason      string    `json:"reason"`
	CancelledBy string    `json:"cancelled_by"`
	Forced      bool      `json:"forced"`
}

func NewInvoiceCancelled(invoiceID uuid.UUID, reason, cancelledBy string, forced bool) InvoiceCancelled {
	payload, _ := json.Marshal(struct {
		InvoiceID   uuid.UUID `json:"invoice_id"`
		Reason      string    `json:"reason"`
		CancelledBy string    `json:"cancelled_by"`
		Forced      bool      `json:"forced"`
	}{invoiceID, reason, cancelledBy, forced})

	return InvoiceCancelled{
		BaseEvent:   events.NewBaseEvent("invoicing.invoice.cancelled", invoiceID, AggregateTypeInvoice, payload),
		InvoiceID:   invoiceID,
		Reason:      reason,
		CancelledBy: cancelledBy,
		Forced:      forced,
	}
}

// InvoiceResetToDraft is emitted when an invoice returns to DRAFT for rework.
type InvoiceResetToDraft struct {
	events.BaseEvent
	InvoiceID uuid.UUID `json:"invoice_id"`
	ResetBy   string    `json:"reset_by"`
	Forced    bool      `json:"forced"`
}

func NewInvoiceResetToDraft(invoiceID uuid.UUID, resetBy string, forced bool) InvoiceResetToDraft {
	payload, _ := json.Marshal(struct {
		InvoiceID uuid.UUID `json:"invoice_id"`
		ResetBy   string    `json:"reset_by"`
		Forced    bool      `json:"forced"`
	}{invoiceID, resetBy, forced})

	return InvoiceResetToDraft{
		BaseEvent: events.NewBaseEvent("invoicing.invoice.reset_to_draft", invoiceID, AggregateTypeInvoice, payload),
		InvoiceID: invoiceID,
		ResetBy:   resetBy,
		Forced:    forced,
	}
}
