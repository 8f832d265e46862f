package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/finbooks/backoffice/internal/application/dto"
	"github.com/finbooks/backoffice/internal/domain/apperr"
	"github.com/finbooks/backoffice/internal/domain/model"
	"github.com/finbooks/backoffice/internal/domain/port"
	"github.com/finbooks/backoffice/internal/domain/service"
)

// PreviewPaymentSchedule shows the due lines a total splits into under
// payment terms, without touching any state. The total, terms and date
// come either from a stored invoice or directly from the request, so
// terms can be tried against a hypothetical invoice.
type PreviewPaymentSchedule struct {
	tx        port.TxManager
	scheduler *service.PaymentScheduler
}

func NewPreviewPaymentSchedule(tx port.TxManager, scheduler *service.PaymentScheduler) *PreviewPaymentSchedule {
	return &PreviewPaymentSchedule{tx: tx, scheduler: scheduler}
}

func (uc *PreviewPaymentSchedule) Execute(ctx context.Context, req dto.PreviewPaymentScheduleRequest) (dto.PaymentScheduleResponse, error) {
	var resp dto.PaymentScheduleResponse

	err := uc.tx.RunInTx(ctx, func(uow port.UnitOfWork) error {
		total := req.Total
		invoiceDate := req.InvoiceDate
		dueDate := req.InvoiceDate
		termsID := req.PaymentTermsID

		if req.InvoiceID != uuid.Nil {
			inv, err := uow.Invoices().FindByID(ctx, req.InvoiceID)
			if err != nil {
				return err
			}
			inv = inv.RecalculateTotals()
			total = inv.Total()
			invoiceDate = inv.InvoiceDate()
			dueDate = inv.DueDate()
			termsID = inv.PaymentTermsID()
		} else if invoiceDate.IsZero() {
			return apperr.NewValidation("invoice date is required without an invoice ID")
		}

		var terms *model.PaymentTerms
		if termsID != uuid.Nil {
			var err error
			terms, err = uow.PaymentTerms().FindByID(ctx, termsID)
			if err != nil {
				return fmt.Errorf("failed to load payment terms: %w", err)
			}
		}

		dueLines, err := uc.scheduler.Schedule(total, invoiceDate, dueDate, terms)
		if err != nil {
			return err
		}

		lines := make([]dto.DueLineDTO, 0, len(dueLines))
		for _, l := range dueLines {
			lines = append(lines, dto.DueLineDTO{
				Sequence:    l.Sequence(),
				Amount:      l.Amount(),
				DueDate:     l.DueDate(),
				Description: l.Description(),
			})
		}
		resp = dto.PaymentScheduleResponse{
			InvoiceID: req.InvoiceID,
			Total:     total,
			Lines:     lines,
		}
		return nil
	})
	if err != nil {
		return dto.PaymentScheduleResponse{}, err
	}
	return resp, nil
}
