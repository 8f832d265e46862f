package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/finbooks/backoffice/internal/application/dto"
	"github.com/finbooks/backoffice/internal/domain/port"
	"github.com/finbooks/backoffice/internal/domain/valueobject"
	"github.com/finbooks/backoffice/pkg/events"
)

// ResetInvoice returns an invoice to DRAFT for rework. The normal path
// starts from CANCELLED, where the ledger effects were already rolled
// back at cancellation. Forcing a reset of a POSTED invoice cancels its
// entry and rolls the movements back in the same transaction. Either
// way the journal entry returns to DRAFT keeping its identity, so a
// repost reuses the same entry ID.
type ResetInvoice struct {
	tx        port.TxManager
	publisher port.EventPublisher
}

func NewResetInvoice(tx port.TxManager, publisher port.EventPublisher) *ResetInvoice {
	return &ResetInvoice{tx: tx, publisher: publisher}
}

func (uc *ResetInvoice) Execute(ctx context.Context, req dto.ResetInvoiceRequest) (dto.InvoiceResponse, error) {
	now := time.Now().UTC()
	var resp dto.InvoiceResponse
	var pending []events.DomainEvent

	err := uc.tx.RunInTx(ctx, func(uow port.UnitOfWork) error {
		inv, err := uow.Invoices().FindByID(ctx, req.InvoiceID)
		if err != nil {
			return err
		}

		wasPosted := inv.Status() == valueobject.InvoiceStatusPosted
		draft, err := inv.ResetToDraft(req.Actor, now, req.Force)
		if err != nil {
			return err
		}

		if inv.JournalEntryID() != uuid.Nil {
			entry, err := uow.JournalEntries().FindByID(ctx, inv.JournalEntryID())
			if err != nil {
				return err
			}

			if wasPosted {
				reason := req.Reason
				if reason == "" {
					reason = "forced reset to draft"
				}
				cancelledEntry, err := entry.Cancel(now, reason)
				if err != nil {
					return err
				}
				for _, l := range cancelledEntry.Lines() {
					if err := uow.Accounts().ApplyMovement(ctx, l.AccountID(), l.Debit().Neg(), l.Credit().Neg()); err != nil {
						return fmt.Errorf("failed to roll back movement for line %d: %w", l.LineNumber(), err)
					}
				}
				entry = cancelledEntry
			}

			if entry.Status() == valueobject.EntryStatusCancelled {
				draftEntry, err := entry.ResetToDraft(now)
				if err != nil {
					return err
				}
				if err := uow.JournalEntries().Save(ctx, draftEntry); err != nil {
					return fmt.Errorf("failed to save journal entry: %w", err)
				}
			}
		}

		if err := uow.Invoices().Save(ctx, draft); err != nil {
			return fmt.Errorf("failed to save invoice: %w", err)
		}

		pending = draft.DomainEvents()
		resp = toInvoiceResponse(draft, now)
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
