package usecase

import (
	"context"
	"time"

	"github.com/finbooks/backoffice/internal/application/dto"
	"github.com/finbooks/backoffice/internal/domain/port"
)

// GetInvoice fetches one invoice with its lines.
type GetInvoice struct {
	tx port.TxManager
}

func NewGetInvoice(tx port.TxManager) *GetInvoice {
	return &GetInvoice{tx: tx}
}

func (uc *GetInvoice) Execute(ctx context.Context, req dto.GetInvoiceRequest) (dto.InvoiceResponse, error) {
	var resp dto.InvoiceResponse
	err := uc.tx.RunInTx(ctx, func(uow port.UnitOfWork) error {
		inv, err := uow.Invoices().FindByID(ctx, req.InvoiceID)
		if err != nil {
			return err
		}
		resp = toInvoiceResponse(inv, time.Now().UTC())
		return nil
	})
	if err != nil {
		return dto.InvoiceResponse{}, err
	}
	return resp, nil
}
