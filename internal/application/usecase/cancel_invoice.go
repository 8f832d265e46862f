package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/finbooks/backoffice/internal/application/dto"
	"github.com/finbooks/backoffice/internal/domain/port"
	"github.com/finbooks/backoffice/pkg/events"
)

// CancelInvoice cancels a POSTED invoice. Its journal entry is flipped
// to CANCELLED in the same transaction and the account movements are
// rolled back; no reversal entry is created.
type CancelInvoice struct {
	tx        port.TxManager
	publisher port.EventPublisher
}

func NewCancelInvoice(tx port.TxManager, publisher port.EventPublisher) *CancelInvoice {
	return &CancelInvoice{tx: tx, publisher: publisher}
}

func (uc *CancelInvoice) Execute(ctx context.Context, req dto.CancelInvoiceRequest) (dto.InvoiceResponse, error) {
	now := time.Now().UTC()
	var resp dto.InvoiceResponse
	var pending []events.DomainEvent

	err := uc.tx.RunInTx(ctx, func(uow port.UnitOfWork) error {
		inv, err := uow.Invoices().FindByID(ctx, req.InvoiceID)
		if err != nil {
			return err
		}

		cancelled, err := inv.Cancel(req.Actor, now, req.Reason, req.Force)
		if err != nil {
			return err
		}

		if inv.JournalEntryID() != uuid.Nil {
			entry, err := uow.JournalEntries().FindByID(ctx, inv.JournalEntryID())
			if err != nil {
				return err
			}
			cancelledEntry, err := entry.Cancel(now, req.Reason)
			if err != nil {
				return err
			}
			if err := uow.JournalEntries().Save(ctx, cancelledEntry); err != nil {
				return fmt.Errorf("failed to save journal entry: %w", err)
			}
			for _, l := range cancelledEntry.Lines() {
				if err := uow.Accounts().ApplyMovement(ctx, l.AccountID(), l.Debit().Neg(), l.Credit().Neg()); err != nil {
					return fmt.Errorf("failed to roll back movement for line %d: %w", l.LineNumber(), err)
				}
			}
		}

		if err := uow.Invoices().Save(ctx, cancelled); err != nil {
			return fmt.Errorf("failed to save invoice: %w", err)
		}

		pending = cancelled.DomainEvents()
		resp = toInvoiceResponse(cancelled, now)
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
