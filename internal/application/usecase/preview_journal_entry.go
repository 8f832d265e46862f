package usecase

import (
	"context"

	"github.com/finbooks/backoffice/internal/application/dto"
	"github.com/finbooks/backoffice/internal/domain/port"
	"github.com/finbooks/backoffice/internal/domain/service"
)

// PreviewJournalEntry is a dry run of the posting pipeline: it builds
// and validates the journal entry an invoice would produce without
// persisting anything or changing state.
type PreviewJournalEntry struct {
	tx        port.TxManager
	resolver  *service.AccountResolver
	scheduler *service.PaymentScheduler
	builder   *service.EntryBuilder
	validator *service.EntryValidator
}

func NewPreviewJournalEntry(
	tx port.TxManager,
	resolver *service.AccountResolver,
	scheduler *service.PaymentScheduler,
	builder *service.EntryBuilder,
	validator *service.EntryValidator,
) *PreviewJournalEntry {
	return &PreviewJournalEntry{
		tx:        tx,
		resolver:  resolver,
		scheduler: scheduler,
		builder:   builder,
		validator: validator,
	}
}

func (uc *PreviewJournalEntry) Execute(ctx context.Context, req dto.PreviewJournalEntryRequest) (dto.JournalEntryResponse, error) {
	var resp dto.JournalEntryResponse

	err := uc.tx.RunInTx(ctx, func(uow port.UnitOfWork) error {
		inv, err := uow.Invoices().FindByID(ctx, req.InvoiceID)
		if err != nil {
			return err
		}
		inv = inv.RecalculateTotals()

		party, err := uow.ThirdParties().FindByID(ctx, inv.ThirdPartyID())
		if err != nil {
			return err
		}
		catalog, err := loadCatalog(ctx, uow)
		if err != nil {
			return err
		}
		terms, err := loadTerms(ctx, uow, inv)
		if err != nil {
			return err
		}

		resolved, err := uc.resolver.ResolveAll(inv, party, catalog)
		if err != nil {
			return err
		}
		dueLines, err := uc.scheduler.Schedule(inv.Total(), inv.InvoiceDate(), inv.DueDate(), terms)
		if err != nil {
			return err
		}
		entry, err := uc.builder.Build(inv, resolved, dueLines)
		if err != nil {
			return err
		}
		if err := uc.validator.Check(entry, catalog); err != nil {
			return err
		}

		resp = toJournalEntryResponse(entry, catalog)
		return nil
	})
	if err != nil {
		return dto.JournalEntryResponse{}, err
	}
	return resp, nil
}
