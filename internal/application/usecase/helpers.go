package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/finbooks/backoffice/internal/application/dto"
	"github.com/finbooks/backoffice/internal/domain/model"
	"github.com/finbooks/backoffice/internal/domain/port"
	"github.com/finbooks/backoffice/internal/domain/service"
)

// TopicInvoices is the broker topic carrying invoice lifecycle events.
const TopicInvoices = "backoffice.invoicing.invoices"

// loadCatalog snapshots the reference data a posting run needs inside
// the current transaction.
func loadCatalog(ctx context.Context, uow port.UnitOfWork) (*service.Catalog, error) {
	accounts, err := uow.Accounts().ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load chart of accounts: %w", err)
	}
	products, err := uow.Products().ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load products: %w", err)
	}
	taxes, err := uow.Taxes().ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load taxes: %w", err)
	}
	return service.NewCatalog(accounts, products, taxes), nil
}

// loadTerms fetches the invoice's payment terms, or nil when none are set.
func loadTerms(ctx context.Context, uow port.UnitOfWork, inv model.Invoice) (*model.PaymentTerms, error) {
	if inv.PaymentTermsID() == uuid.Nil {
		return nil, nil
	}
	terms, err := uow.PaymentTerms().FindByID(ctx, inv.PaymentTermsID())
	if err != nil {
		return nil, fmt.Errorf("failed to load payment terms: %w", err)
	}
	return terms, nil
}

func toInvoiceResponse(inv model.Invoice, asOf time.Time) dto.InvoiceResponse {
	lines := make([]dto.InvoiceLineDTO, 0, len(inv.Lines()))
	for _, l := range inv.Lines() {
		lines = append(lines, dto.InvoiceLineDTO{
			ID:              l.ID(),
			LineNumber:      l.LineNumber(),
			Description:     l.Description(),
			ProductID:       l.ProductID(),
			AccountID:       l.AccountID(),
			TaxID:           l.TaxID(),
			Quantity:        l.Quantity(),
			UnitPrice:       l.UnitPrice(),
			DiscountPercent: l.DiscountPercent(),
			TaxRate:         l.TaxRate(),
			NetAmount:       l.NetAmount(),
			TaxAmount:       l.TaxAmount(),
			TotalAmount:     l.TotalAmount(),
		})
	}
	return dto.InvoiceResponse{
		ID:             inv.ID(),
		Number:         inv.Number(),
		InvoiceType:    inv.InvoiceType().String(),
		Status:         inv.Status().String(),
		PaymentState:   string(inv.PaymentState(asOf)),
		ThirdPartyID:   inv.ThirdPartyID(),
		PaymentTermsID: inv.PaymentTermsID(),
		InvoiceDate:    inv.InvoiceDate(),
		DueDate:        inv.DueDate(),
		Currency:       inv.Currency(),
		Subtotal:       inv.Subtotal(),
		DiscountTotal:  inv.DiscountTotal(),
		TaxTotal:       inv.TaxTotal(),
		Total:          inv.Total(),
		PaidAmount:     inv.PaidAmount(),
		JournalEntryID: inv.JournalEntryID(),
		PostedBy:       inv.PostedBy(),
		PostedAt:       inv.PostedAt(),
		CancelledBy:    inv.CancelledBy(),
		CancelledAt:    inv.CancelledAt(),
		CancelReason:   inv.CancelReason(),
		Lines:          lines,
		Version:        inv.Version(),
		CreatedAt:      inv.CreatedAt(),
		UpdatedAt:      inv.UpdatedAt(),
	}
}

func toJournalEntryResponse(entry model.JournalEntry, catalog *service.Catalog) dto.JournalEntryResponse {
	lines := make([]dto.EntryLineDTO, 0, len(entry.Lines()))
	for _, l := range entry.Lines() {
		code, name := "", ""
		if catalog != nil {
			if acc := catalog.Account(l.AccountID()); acc != nil {
				code = acc.Code().String()
				name = acc.Name()
			}
		}
		lines = append(lines, dto.EntryLineDTO{
			LineNumber:  l.LineNumber(),
			AccountID:   l.AccountID(),
			AccountCode: code,
			AccountName: name,
			Debit:       l.Debit(),
			Credit:      l.Credit(),
			Description: l.Description(),
			DueDate:     l.DueDate(),
		})
	}
	return dto.JournalEntryResponse{
		ID:          entry.ID(),
		InvoiceID:   entry.InvoiceID(),
		EntryDate:   entry.EntryDate(),
		Status:      entry.Status().String(),
		Description: entry.Description(),
		Reference:   entry.Reference(),
		TotalDebit:  entry.TotalDebit(),
		TotalCredit: entry.TotalCredit(),
		Lines:       lines,
		Version:     entry.Version(),
	}
}
