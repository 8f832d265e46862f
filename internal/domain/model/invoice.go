package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finbooks/backoffice/internal/domain/apperr"
	"github.com/finbooks/backoffice/internal/domain/event"
	"github.com/finbooks/backoffice/internal/domain/valueobject"
	"github.com/finbooks/backoffice/pkg/events"
)

// Invoice is the root aggregate for the invoicing bounded context.
// State transitions are copy-on-write and record domain events; the
// aggregate carries at most one journal entry, created on the first
// transition to POSTED and kept across cancel and repost cycles.
type Invoice struct {
	id             uuid.UUID
	number         string
	invoiceType    valueobject.InvoiceType
	thirdPartyID   uuid.UUID
	paymentTermsID uuid.UUID
	accountID      uuid.UUID
	invoiceDate    time.Time
	dueDate        time.Time
	currency       string
	status         valueobject.InvoiceStatus
	lines          []*InvoiceLine
	subtotal       decimal.Decimal
	discountTotal  decimal.Decimal
	taxTotal       decimal.Decimal
	total          decimal.Decimal
	paidAmount     decimal.Decimal
	journalEntryID uuid.UUID
	postedBy       string
	postedAt       time.Time
	cancelledBy    string
	cancelledAt    time.Time
	cancelReason   string
	notes          string
	version        int
	createdAt      time.Time
	updatedAt      time.Time
	domainEvents   []events.DomainEvent
}

// NewInvoice creates a new invoice in DRAFT status with no lines.
func NewInvoice(
	number string,
	invoiceType valueobject.InvoiceType,
	thirdPartyID uuid.UUID,
	invoiceDate, dueDate time.Time,
	currency string,
) (Invoice, error) {
	if number == "" {
		return Invoice{}, apperr.NewValidation("invoice number is required")
	}
	if invoiceType.IsZero() {
		return Invoice{}, apperr.NewValidation("invoice type is required")
	}
	if thirdPartyID == uuid.Nil {
		return Invoice{}, apperr.NewValidation("third party ID is required")
	}
	if invoiceDate.IsZero() {
		return Invoice{}, apperr.NewValidation("invoice date is required")
	}
	if dueDate.IsZero() {
		dueDate = invoiceDate
	}
	if dueDate.Before(invoiceDate) {
		return Invoice{}, apperr.NewValidation("due date %s precedes invoice date %s", dueDate.Format("2006-01-02"), invoiceDate.Format("2006-01-02"))
	}
	if len(currency) != 3 {
		return Invoice{}, apperr.NewValidation("currency must be a 3-letter code, got %q", currency)
	}

	now := time.Now().UTC()
	return Invoice{
		id:            uuid.New(),
		number:        number,
		invoiceType:   invoiceType,
		thirdPartyID:  thirdPartyID,
		invoiceDate:   invoiceDate,
		dueDate:       dueDate,
		currency:      currency,
		status:        valueobject.InvoiceStatusDraft,
		subtotal:      decimal.Zero,
		discountTotal: decimal.Zero,
		taxTotal:      decimal.Zero,
		total:         decimal.Zero,
		paidAmount:    decimal.Zero,
		version:       1,
		createdAt:     now,
		updatedAt:     now,
	}, nil
}

// ReconstructInvoice recreates an Invoice from persistence (no validation, no events).
func ReconstructInvoice(
	id uuid.UUID,
	number string,
	invoiceType valueobject.InvoiceType,
	thirdPartyID, paymentTermsID, accountID uuid.UUID,
	invoiceDate, dueDate time.Time,
	currency string,
	status valueobject.InvoiceStatus,
	lines []*InvoiceLine,
	subtotal, discountTotal, taxTotal, total, paidAmount decimal.Decimal,
	journalEntryID uuid.UUID,
	postedBy string, postedAt time.Time,
	cancelledBy string, cancelledAt time.Time, cancelReason string,
	notes string,
	version int,
	createdAt, updatedAt time.Time,
) Invoice {
	return Invoice{
		id:             id,
		number:         number,
		invoiceType:    invoiceType,
		thirdPartyID:   thirdPartyID,
		paymentTermsID: paymentTermsID,
		accountID:      accountID,
		invoiceDate:    invoiceDate,
		dueDate:        dueDate,
		currency:       currency,
		status:         status,
		lines:          lines,
		subtotal:       subtotal,
		discountTotal:  discountTotal,
		taxTotal:       taxTotal,
		total:          total,
		paidAmount:     paidAmount,
		journalEntryID: journalEntryID,
		postedBy:       postedBy,
		postedAt:       postedAt,
		cancelledBy:    cancelledBy,
		cancelledAt:    cancelledAt,
		cancelReason:   cancelReason,
		notes:          notes,
		version:        version,
		createdAt:      createdAt,
		updatedAt:      updatedAt,
	}
}

// WithLines returns a copy carrying the given lines with totals recomputed.
// Only DRAFT invoices may change their lines.
func (inv Invoice) WithLines(lines []*InvoiceLine) (Invoice, error) {
	if inv.status != valueobject.InvoiceStatusDraft {
		return Invoice{}, apperr.NewBusinessRule("can only change lines of DRAFT invoices, current: %s", inv.status)
	}
	updated := inv
	updated.lines = lines
	updated.calculateTotals()
	updated.updatedAt = time.Now().UTC()
	return updated, nil
}

// WithPaymentTerms returns a copy carrying the given payment terms.
func (inv Invoice) WithPaymentTerms(termsID uuid.UUID) (Invoice, error) {
	if inv.status != valueobject.InvoiceStatusDraft {
		return Invoice{}, apperr.NewBusinessRule("can only change terms of DRAFT invoices, current: %s", inv.status)
	}
	updated := inv
	updated.paymentTermsID = termsID
	updated.updatedAt = time.Now().UTC()
	return updated, nil
}

// WithAccount returns a copy carrying an explicit counterparty account
// override, taking precedence over the third party's default.
func (inv Invoice) WithAccount(accountID uuid.UUID) (Invoice, error) {
	if inv.status != valueobject.InvoiceStatusDraft {
		return Invoice{}, apperr.NewBusinessRule("can only change the account of DRAFT invoices, current: %s", inv.status)
	}
	updated := inv
	updated.accountID = accountID
	updated.updatedAt = time.Now().UTC()
	return updated, nil
}

// calculateTotals derives header totals from the lines:
// total = subtotal - discount + tax.
func (inv *Invoice) calculateTotals() {
	subtotal, discount, tax := decimal.Zero, decimal.Zero, decimal.Zero
	for _, l := range inv.lines {
		subtotal = subtotal.Add(l.GrossAmount())
		discount = discount.Add(l.DiscountAmount())
		tax = tax.Add(l.TaxAmount())
	}
	inv.subtotal = subtotal
	inv.discountTotal = discount
	inv.taxTotal = tax
	inv.total = subtotal.Sub(discount).Add(tax)
}

// RecalculateTotals returns a copy with the header totals rederived
// from the lines.
func (inv Invoice) RecalculateTotals() Invoice {
	updated := inv
	updated.calculateTotals()
	return updated
}

// Submit moves a DRAFT invoice into the PENDING approval queue.
func (inv Invoice) Submit(now time.Time) (Invoice, error) {
	if inv.status != valueobject.InvoiceStatusDraft {
		return Invoice{}, apperr.NewBusinessRule("can only submit DRAFT invoices, current: %s", inv.status)
	}
	if len(inv.lines) == 0 {
		return Invoice{}, apperr.NewBusinessRule("cannot submit invoice %s without lines", inv.number)
	}
	updated := inv
	updated.status = valueobject.InvoiceStatusPending
	updated.updatedAt = now
	updated.version++
	return updated, nil
}

// Approve moves a PENDING invoice to APPROVED.
func (inv Invoice) Approve(now time.Time) (Invoice, error) {
	if inv.status != valueobject.InvoiceStatusPending {
		return Invoice{}, apperr.NewBusinessRule("can only approve PENDING invoices, current: %s", inv.status)
	}
	updated := inv
	updated.status = valueobject.InvoiceStatusApproved
	updated.updatedAt = now
	updated.version++
	return updated, nil
}

// Post transitions the invoice to POSTED and links the journal entry.
func (inv Invoice) Post(entryID uuid.UUID, actor string, now time.Time) (Invoice, error) {
	if !inv.status.CanPost() {
		return Invoice{}, apperr.NewBusinessRule("cannot post invoice %s in status %s", inv.number, inv.status)
	}
	if len(inv.lines) == 0 {
		return Invoice{}, apperr.NewBusinessRule("cannot post invoice %s without lines", inv.number)
	}
	if entryID == uuid.Nil {
		return Invoice{}, apperr.NewValidation("journal entry ID is required")
	}
	if inv.journalEntryID != uuid.Nil && inv.journalEntryID != entryID {
		return Invoice{}, apperr.NewBusinessRule("invoice %s is already linked to entry %s", inv.number, inv.journalEntryID)
	}

	posted := inv
	posted.status = valueobject.InvoiceStatusPosted
	posted.journalEntryID = entryID
	posted.postedBy = actor
	posted.postedAt = now
	posted.updatedAt = now
	posted.version++
	posted.domainEvents = append([]events.DomainEvent{}, inv.domainEvents...)
	posted.domainEvents = append(posted.domainEvents,
		event.NewInvoicePosted(inv.id, entryID, inv.invoiceType.String(), inv.total, actor, now))
	return posted, nil
}

// Cancel transitions a POSTED invoice to CANCELLED. Invoices with
// recorded payments are refused unless force is set.
func (inv Invoice) Cancel(actor string, now time.Time, reason string, force bool) (Invoice, error) {
	if inv.status != valueobject.InvoiceStatusPosted {
		return Invoice{}, apperr.NewBusinessRule("can only cancel POSTED invoices, invoice %s is %s", inv.number, inv.status)
	}
	if inv.paidAmount.IsPositive() && !force {
		return Invoice{}, apperr.NewBusinessRule("invoice %s has payments of %s recorded, cancellation requires force", inv.number, inv.paidAmount)
	}

	cancelled := inv
	cancelled.status = valueobject.InvoiceStatusCancelled
	cancelled.cancelledBy = actor
	cancelled.cancelledAt = now
	cancelled.cancelReason = reason
	cancelled.updatedAt = now
	cancelled.version++
	cancelled.domainEvents = append([]events.DomainEvent{}, inv.domainEvents...)
	cancelled.domainEvents = append(cancelled.domainEvents,
		event.NewInvoiceCancelled(inv.id, reason, actor, force))
	return cancelled, nil
}

// ResetToDraft returns the invoice to DRAFT for rework. The normal path
// starts from CANCELLED; resetting a POSTED invoice requires force and
// implies its ledger effects are rolled back by the caller.
func (inv Invoice) ResetToDraft(actor string, now time.Time, force bool) (Invoice, error) {
	switch inv.status {
	case valueobject.InvoiceStatusCancelled:
	case valueobject.InvoiceStatusPosted:
		if !force {
			return Invoice{}, apperr.NewBusinessRule("resetting POSTED invoice %s requires force", inv.number)
		}
	default:
		return Invoice{}, apperr.NewBusinessRule("cannot reset invoice %s in status %s", inv.number, inv.status)
	}

	draft := inv
	draft.status = valueobject.InvoiceStatusDraft
	draft.postedBy = ""
	draft.postedAt = time.Time{}
	draft.cancelledBy = ""
	draft.cancelledAt = time.Time{}
	draft.cancelReason = ""
	draft.updatedAt = now
	draft.version++
	draft.domainEvents = append([]events.DomainEvent{}, inv.domainEvents...)
	draft.domainEvents = append(draft.domainEvents,
		event.NewInvoiceResetToDraft(inv.id, actor, force))
	return draft, nil
}

// RegisterPayment accumulates a received payment against the invoice.
func (inv Invoice) RegisterPayment(amount decimal.Decimal, now time.Time) (Invoice, error) {
	if inv.status != valueobject.InvoiceStatusPosted {
		return Invoice{}, apperr.NewBusinessRule("can only register payments on POSTED invoices, current: %s", inv.status)
	}
	if !amount.IsPositive() {
		return Invoice{}, apperr.NewValidation("payment amount must be positive, got %s", amount)
	}
	if inv.paidAmount.Add(amount).GreaterThan(inv.total) {
		return Invoice{}, apperr.NewBusinessRule("payment of %s would exceed invoice total %s", amount, inv.total)
	}
	updated := inv
	updated.paidAmount = inv.paidAmount.Add(amount)
	updated.updatedAt = now
	updated.version++
	return updated, nil
}

// PaymentState projects the reporting payment state from amounts and the
// due date. It is not part of the invoice state machine.
func (inv Invoice) PaymentState(asOf time.Time) valueobject.PaymentState {
	switch {
	case inv.status == valueobject.InvoiceStatusPosted && inv.paidAmount.GreaterThanOrEqual(inv.total) && inv.total.IsPositive():
		return valueobject.PaymentStatePaid
	case inv.paidAmount.IsPositive():
		return valueobject.PaymentStatePartiallyPaid
	case inv.status == valueobject.InvoiceStatusPosted && asOf.After(inv.dueDate):
		return valueobject.PaymentStateOverdue
	default:
		return valueobject.PaymentStateOpen
	}
}

// Accessors
func (inv Invoice) ID() uuid.UUID                        { return inv.id }
func (inv Invoice) Number() string                       { return inv.number }
func (inv Invoice) InvoiceType() valueobject.InvoiceType { return inv.invoiceType }
func (inv Invoice) ThirdPartyID() uuid.UUID              { return inv.thirdPartyID }
func (inv Invoice) PaymentTermsID() uuid.UUID            { return inv.paymentTermsID }
func (inv Invoice) AccountID() uuid.UUID                 { return inv.accountID }
func (inv Invoice) InvoiceDate() time.Time               { return inv.invoiceDate }
func (inv Invoice) DueDate() time.Time                   { return inv.dueDate }
func (inv Invoice) Currency() string                     { return inv.currency }
func (inv Invoice) Status() valueobject.InvoiceStatus    { return inv.status }
func (inv Invoice) Lines() []*InvoiceLine                { return inv.lines }
func (inv Invoice) Subtotal() decimal.Decimal            { return inv.subtotal }
func (inv Invoice) DiscountTotal() decimal.Decimal       { return inv.discountTotal }
func (inv Invoice) TaxTotal() decimal.Decimal            { return inv.taxTotal }
func (inv Invoice) Total() decimal.Decimal               { return inv.total }
func (inv Invoice) PaidAmount() decimal.Decimal          { return inv.paidAmount }
func (inv Invoice) JournalEntryID() uuid.UUID            { return inv.journalEntryID }
func (inv Invoice) PostedBy() string                     { return inv.postedBy }
func (inv Invoice) PostedAt() time.Time                  { return inv.postedAt }
func (inv Invoice) CancelledBy() string                  { return inv.cancelledBy }
func (inv Invoice) CancelledAt() time.Time               { return inv.cancelledAt }
func (inv Invoice) CancelReason() string                 { return inv.cancelReason }
func (inv Invoice) Notes() string                        { return inv.notes }
func (inv Invoice) Version() int                         { return inv.version }
func (inv Invoice) CreatedAt() time.Time                 { return inv.createdAt }
func (inv Invoice) UpdatedAt() time.Time                 { return inv.updatedAt }
func (inv Invoice) DomainEvents() []events.DomainEvent   { return inv.domainEvents }
