package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PostInvoiceRequest is the input DTO for posting an invoice to the ledger.
type PostInvoiceRequest struct {
	InvoiceID uuid.UUID
	Actor     string
}

// CancelInvoiceRequest is the input DTO for cancelling an invoice.
type CancelInvoiceRequest struct {
	InvoiceID uuid.UUID
	Actor     string
	Reason    string
	Force     bool
}

// ResetInvoiceRequest is the input DTO for returning an invoice to DRAFT.
// Reason is recorded on the cancelled journal entry when a POSTED
// invoice is force-reset.
type ResetInvoiceRequest struct {
	InvoiceID uuid.UUID
	Actor     string
	Reason    string
	Force     bool
}

// PreviewJournalEntryRequest is the input DTO for a dry-run posting.
type PreviewJournalEntryRequest struct {
	InvoiceID uuid.UUID
}

// PreviewPaymentScheduleRequest is the input DTO for a due schedule
// preview. With an InvoiceID the stored invoice supplies total, terms
// and dates; otherwise Total, PaymentTermsID and InvoiceDate describe a
// hypothetical invoice.
type PreviewPaymentScheduleRequest struct {
	InvoiceID      uuid.UUID
	Total          decimal.Decimal
	PaymentTermsID uuid.UUID
	InvoiceDate    time.Time
}

// GetInvoiceRequest is the input DTO for fetching an invoice.
type GetInvoiceRequest struct {
	InvoiceID uuid.UUID
}

// InvoiceLineDTO transfers invoice line data.
type InvoiceLineDTO struct {
	ID              uuid.UUID
	LineNumber      int
	Description     string
	ProductID       uuid.UUID
	AccountID       uuid.UUID
	TaxID           uuid.UUID
	Quantity        decimal.Decimal
	UnitPrice       decimal.Decimal
	DiscountPercent decimal.Decimal
	TaxRate         decimal.Decimal
	NetAmount       decimal.Decimal
	TaxAmount       decimal.Decimal
	TotalAmount     decimal.Decimal
}

// InvoiceResponse is the output DTO for an invoice.
type InvoiceResponse struct {
	ID             uuid.UUID
	Number         string
	InvoiceType    string
	Status         string
	PaymentState   string
	ThirdPartyID   uuid.UUID
	PaymentTermsID uuid.UUID
	InvoiceDate    time.Time
	DueDate        time.Time
	Currency       string
	Subtotal       decimal.Decimal
	DiscountTotal  decimal.Decimal
	TaxTotal       decimal.Decimal
	Total          decimal.Decimal
	PaidAmount     decimal.Decimal
	JournalEntryID uuid.UUID
	PostedBy       string
	PostedAt       time.Time
	CancelledBy    string
	CancelledAt    time.Time
	CancelReason   string
	Lines          []InvoiceLineDTO
	Version        int
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// EntryLineDTO transfers journal entry line data.
type EntryLineDTO struct {
	LineNumber  int
	AccountID   uuid.UUID
	AccountCode string
	AccountName string
	Debit       decimal.Decimal
	Credit      decimal.Decimal
	Description string
	DueDate     time.Time
}

// JournalEntryResponse is the output DTO for a journal entry.
type JournalEntryResponse struct {
	ID          uuid.UUID
	InvoiceID   uuid.UUID
	EntryDate   time.Time
	Status      string
	Description string
	Reference   string
	TotalDebit  decimal.Decimal
	TotalCredit decimal.Decimal
	Lines       []EntryLineDTO
	Version     int
}

// DueLineDTO transfers one scheduled installment.
type DueLineDTO struct {
	Sequence    int
	Amount      decimal.Decimal
	DueDate     time.Time
	Description string
}

// PaymentScheduleResponse is the output DTO for a schedule preview.
type PaymentScheduleResponse struct {
	InvoiceID uuid.UUID
	Total     decimal.Decimal
	Lines     []DueLineDTO
}
