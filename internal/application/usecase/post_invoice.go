package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/finbooks/backoffice/internal/application/dto"
	"github.com/finbooks/backoffice/internal/domain/port"
	"github.com/finbooks/backoffice/internal/domain/service"
	"github.com/finbooks/backoffice/pkg/events"
)

// PostInvoice runs the full posting pipeline for one invoice inside a
// single transaction: resolve accounts, derive the due schedule, build
// and validate the journal entry, post it, link it to the invoice and
// apply the account movements. Events are published after commit.
type PostInvoice struct {
	tx        port.TxManager
	publisher port.EventPublisher
	resolver  *service.AccountResolver
	scheduler *service.PaymentScheduler
	builder   *service.EntryBuilder
	validator *service.EntryValidator
}

func NewPostInvoice(
	tx port.TxManager,
	publisher port.EventPublisher,
	resolver *service.AccountResolver,
	scheduler *service.PaymentScheduler,
	builder *service.EntryBuilder,
	validator *service.EntryValidator,
) *PostInvoice {
	return &PostInvoice{
		tx:        tx,
		publisher: publisher,
		resolver:  resolver,
		scheduler: scheduler,
		builder:   builder,
		validator: validator,
	}
}

func (uc *PostInvoice) Execute(ctx context.Context, req dto.PostInvoiceRequest) (dto.InvoiceResponse, error) {
	now := time.Now().UTC()
	var resp dto.InvoiceResponse
	var pending []events.DomainEvent

	err := uc.tx.RunInTx(ctx, func(uow port.UnitOfWork) error {
		inv, err := uow.Invoices().FindByID(ctx, req.InvoiceID)
		if err != nil {
			return err
		}
		// header totals are rederived from the lines so a stale total
		// cannot skew the schedule
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
		// A repost reuses the entry identity created on first posting.
		if inv.JournalEntryID() != uuid.Nil {
			entry = entry.WithID(inv.JournalEntryID())
		}
		if err := uc.validator.Check(entry, catalog); err != nil {
			return err
		}

		posted, err := entry.Post(now)
		if err != nil {
			return err
		}
		postedInv, err := inv.Post(posted.ID(), req.Actor, now)
		if err != nil {
			return err
		}

		if err := uow.JournalEntries().Save(ctx, posted); err != nil {
			return fmt.Errorf("failed to save journal entry: %w", err)
		}
		if err := uow.Invoices().Save(ctx, postedInv); err != nil {
			return fmt.Errorf("failed to save invoice: %w", err)
		}
		for _, l := range posted.Lines() {
			if err := uow.Accounts().ApplyMovement(ctx, l.AccountID(), l.Debit(), l.Credit()); err != nil {
				return fmt.Errorf("failed to apply movement for line %d: %w", l.LineNumber(), err)
			}
		}

		pending = postedInv.DomainEvents()
		resp = toInvoiceResponse(postedInv, now)
		return nil
	})
	if err != nil {
		return dto.InvoiceResponse{}, err
	}

	if len(pending) > 0 {
		if err := uc.publisher.Publish(ctx, TopicInvoices, pending...); err != nil {
			return dto.InvoiceResponse{}, fmt.Errorf("failed to publish events: %w", err)
		}
	}
	return resp, nil
}
