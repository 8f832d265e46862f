package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/finbooks/backoffice/internal/domain/apperr"
	"github.com/finbooks/backoffice/internal/domain/model"
	"github.com/finbooks/backoffice/internal/domain/port"
	"github.com/finbooks/backoffice/internal/domain/valueobject"
	"github.com/finbooks/backoffice/pkg/events"
	pgpkg "github.com/finbooks/backoffice/pkg/postgres"
)

// Compile-time interface check
var _ port.InvoiceRepository = (*InvoiceRepo)(nil)

// InvoiceRepo implements InvoiceRepository using PostgreSQL. Save guards
// against lost updates with an optimistic version check and writes the
// invoice's domain events to the outbox in the same transaction.
type InvoiceRepo struct {
	db pgpkg.Querier
}

func NewInvoiceRepo(db pgpkg.Querier) *InvoiceRepo {
	return &InvoiceRepo{db: db}
}

func (r *InvoiceRepo) Create(ctx context.Context, inv model.Invoice) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO invoices (id, number, invoice_type, third_party_id, payment_terms_id, account_id, invoice_date, due_date,
			currency, status, subtotal, discount_total, tax_total, total, paid_amount, journal_entry_id,
			posted_by, posted_at, cancelled_by, cancelled_at, cancel_reason, notes,
			version, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25)
	`, inv.ID(), inv.Number(), inv.InvoiceType().String(), inv.ThirdPartyID(), nullableUUID(inv.PaymentTermsID()),
		nullableUUID(inv.AccountID()), inv.InvoiceDate(), inv.DueDate(), inv.Currency(), inv.Status().String(),
		inv.Subtotal(), inv.DiscountTotal(), inv.TaxTotal(), inv.Total(), inv.PaidAmount(),
		nullableUUID(inv.JournalEntryID()), inv.PostedBy(), nullableTime(inv.PostedAt()),
		inv.CancelledBy(), nullableTime(inv.CancelledAt()), inv.CancelReason(),
		inv.Notes(), inv.Version(), inv.CreatedAt(), inv.UpdatedAt())
	if err != nil {
		return fmt.Errorf("insert invoice: %w", err)
	}
	return r.replaceLines(ctx, inv)
}

func (r *InvoiceRepo) Save(ctx context.Context, inv model.Invoice) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE invoices
		SET payment_terms_id = $2, account_id = $3, invoice_date = $4, due_date = $5, status = $6,
		    subtotal = $7, discount_total = $8, tax_total = $9, total = $10, paid_amount = $11,
		    journal_entry_id = $12, posted_by = $13, posted_at = $14,
		    cancelled_by = $15, cancelled_at = $16, cancel_reason = $17,
		    notes = $18, version = $19, updated_at = $20
		WHERE id = $1 AND version = $19 - 1
	`, inv.ID(), nullableUUID(inv.PaymentTermsID()), nullableUUID(inv.AccountID()), inv.InvoiceDate(), inv.DueDate(), inv.Status().String(),
		inv.Subtotal(), inv.DiscountTotal(), inv.TaxTotal(), inv.Total(), inv.PaidAmount(),
		nullableUUID(inv.JournalEntryID()), inv.PostedBy(), nullableTime(inv.PostedAt()),
		inv.CancelledBy(), nullableTime(inv.CancelledAt()), inv.CancelReason(),
		inv.Notes(), inv.Version(), inv.UpdatedAt())
	if err != nil {
		return fmt.Errorf("update invoice: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NewBusinessRule("invoice %s was modified concurrently", inv.ID())
	}

	if err := r.replaceLines(ctx, inv); err != nil {
		return err
	}

	for _, evt := range inv.DomainEvents() {
		entry := events.NewOutboxEntry(evt)
		_, err = r.db.Exec(ctx, `
			INSERT INTO outbox (id, aggregate_id, aggregate_type, event_type, payload, created_at)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, entry.ID, entry.AggregateID, entry.AggregateType, entry.EventType, entry.Payload, entry.CreatedAt)
		if err != nil {
			return fmt.Errorf("insert outbox event: %w", err)
		}
	}
	return nil
}

func (r *InvoiceRepo) replaceLines(ctx context.Context, inv model.Invoice) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM invoice_lines WHERE invoice_id = $1`, inv.ID()); err != nil {
		return fmt.Errorf("delete invoice lines: %w", err)
	}
	for _, l := range inv.Lines() {
		_, err := r.db.Exec(ctx, `
			INSERT INTO invoice_lines (id, invoice_id, line_number, description, product_id, account_id, tax_id,
				quantity, unit_price, discount_percent, tax_rate)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		`, l.ID(), inv.ID(), l.LineNumber(), l.Description(), nullableUUID(l.ProductID()),
			nullableUUID(l.AccountID()), nullableUUID(l.TaxID()),
			l.Quantity(), l.UnitPrice(), l.DiscountPercent(), l.TaxRate())
		if err != nil {
			return fmt.Errorf("insert invoice line %d: %w", l.LineNumber(), err)
		}
	}
	return nil
}

func (r *InvoiceRepo) FindByID(ctx context.Context, id uuid.UUID) (model.Invoice, error) {
	var (
		invID          uuid.UUID
		number         string
		invoiceType    string
		thirdPartyID   uuid.UUID
		paymentTermsID *uuid.UUID
		accountID      *uuid.UUID
		invoiceDate    time.Time
		dueDate        time.Time
		currency       string
		status         string
		subtotal       decimal.Decimal
		discountTotal  decimal.Decimal
		taxTotal       decimal.Decimal
		total          decimal.Decimal
		paidAmount     decimal.Decimal
		journalEntryID *uuid.UUID
		postedBy       string
		postedAt       *time.Time
		cancelledBy    string
		cancelledAt    *time.Time
		cancelReason   string
		notes          string
		version        int
		createdAt      time.Time
		updatedAt      time.Time
	)
	err := r.db.QueryRow(ctx, `
		SELECT id, number, invoice_type, third_party_id, payment_terms_id, account_id, invoice_date, due_date,
			currency, status, subtotal, discount_total, tax_total, total, paid_amount, journal_entry_id,
			posted_by, posted_at, cancelled_by, cancelled_at, cancel_reason, notes,
			version, created_at, updated_at
		FROM invoices WHERE id = $1
	`, id).Scan(&invID, &number, &invoiceType, &thirdPartyID, &paymentTermsID, &accountID, &invoiceDate, &dueDate,
		&currency, &status, &subtotal, &discountTotal, &taxTotal, &total, &paidAmount, &journalEntryID,
		&postedBy, &postedAt, &cancelledBy, &cancelledAt, &cancelReason, &notes,
		&version, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Invoice{}, apperr.NewNotFound("invoice", id.String())
		}
		return model.Invoice{}, fmt.Errorf("query invoice: %w", err)
	}

	it, err := valueobject.NewInvoiceType(invoiceType)
	if err != nil {
		return model.Invoice{}, err
	}
	st, err := valueobject.NewInvoiceStatus(status)
	if err != nil {
		return model.Invoice{}, err
	}
	lines, err := r.listLines(ctx, invID)
	if err != nil {
		return model.Invoice{}, err
	}

	return model.ReconstructInvoice(invID, number, it, thirdPartyID, derefUUID(paymentTermsID), derefUUID(accountID),
		invoiceDate, dueDate, currency, st, lines,
		subtotal, discountTotal, taxTotal, total, paidAmount,
		derefUUID(journalEntryID),
		postedBy, derefTime(postedAt), cancelledBy, derefTime(cancelledAt), cancelReason,
		notes, version, createdAt, updatedAt), nil
}

func (r *InvoiceRepo) listLines(ctx context.Context, invoiceID uuid.UUID) ([]*model.InvoiceLine, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, line_number, description, product_id, account_id, tax_id, quantity, unit_price, discount_percent, tax_rate
		FROM invoice_lines WHERE invoice_id = $1 ORDER BY line_number
	`, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("query invoice lines: %w", err)
	}
	defer rows.Close()

	var lines []*model.InvoiceLine
	for rows.Next() {
		var (
			lineID          uuid.UUID
			lineNumber      int
			description     string
			productID       *uuid.UUID
			accountID       *uuid.UUID
			taxID           *uuid.UUID
			quantity        decimal.Decimal
			unitPrice       decimal.Decimal
			discountPercent decimal.Decimal
			taxRate         decimal.Decimal
		)
		if err := rows.Scan(&lineID, &lineNumber, &description, &productID, &accountID, &taxID,
			&quantity, &unitPrice, &discountPercent, &taxRate); err != nil {
			return nil, fmt.Errorf("scan invoice line: %w", err)
		}
		lines = append(lines, model.ReconstructInvoiceLine(lineID, invoiceID, lineNumber, description,
			derefUUID(productID), derefUUID(accountID), derefUUID(taxID),
			quantity, unitPrice, discountPercent, taxRate))
	}
	return lines, rows.Err()
}
