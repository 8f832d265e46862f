package grpc

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/timestamppb"

	"github.com/finbooks/backoffice/internal/application/dto"
	"github.com/finbooks/backoffice/internal/application/usecase"
	"github.com/finbooks/backoffice/internal/domain/apperr"
	"github.com/finbooks/backoffice/pkg/auth"
)

// InvoicingHandler implements the gRPC InvoicingService server.
type InvoicingHandler struct {
	UnimplementedInvoicingServiceServer

	postInvoice     *usecase.PostInvoice
	cancelInvoice   *usecase.CancelInvoice
	resetInvoice    *usecase.ResetInvoice
	previewEntry    *usecase.PreviewJournalEntry
	previewSchedule *usecase.PreviewPaymentSchedule
	getInvoice      *usecase.GetInvoice
}

func NewInvoicingHandler(
	postInvoice *usecase.PostInvoice,
	cancelInvoice *usecase.CancelInvoice,
	resetInvoice *usecase.ResetInvoice,
	previewEntry *usecase.PreviewJournalEntry,
	previewSchedule *usecase.PreviewPaymentSchedule,
	getInvoice *usecase.GetInvoice,
) *InvoicingHandler {
	return &InvoicingHandler{
		postInvoice:     postInvoice,
		cancelInvoice:   cancelInvoice,
		resetInvoice:    resetInvoice,
		previewEntry:    previewEntry,
		previewSchedule: previewSchedule,
		getInvoice:      getInvoice,
	}
}

// Request/Response message types are temporary stand-ins until proto gen is wired.

type PostInvoiceRequest struct {
	InvoiceID string
}

type PostInvoiceResponse struct {
	Invoice *InvoiceMsg
}

type CancelInvoiceRequest struct {
	InvoiceID string
	Reason    string
	Force     bool
}

type CancelInvoiceResponse struct {
	Invoice *InvoiceMsg
}

type ResetInvoiceRequest struct {
	InvoiceID string
	Reason    string
	Force     bool
}

type ResetInvoiceResponse struct {
	Invoice *InvoiceMsg
}

type PreviewJournalEntryRequest struct {
	InvoiceID string
}

type PreviewJournalEntryResponse struct {
	Entry *JournalEntryMsg
}

type PreviewPaymentScheduleRequest struct {
	InvoiceID      string
	Total          string
	PaymentTermsID string
	InvoiceDate    string
}

type PreviewPaymentScheduleResponse struct {
	InvoiceID string
	Total     string
	Lines     []*DueLineMsg
}

type GetInvoiceRequest struct {
	InvoiceID string
}

type GetInvoiceResponse struct {
	Invoice *InvoiceMsg
}

type InvoiceLineMsg struct {
	LineNumber  int32
	Description string
	Quantity    string
	UnitPrice   string
	NetAmount   string
	TaxAmount   string
	TotalAmount string
}

type InvoiceMsg struct {
	ID             string
	Number         string
	InvoiceType    string
	Status         string
	PaymentState   string
	ThirdPartyID   string
	InvoiceDate    string
	DueDate        string
	Currency       string
	Subtotal       string
	DiscountTotal  string
	TaxTotal       string
	Total          string
	PaidAmount     string
	JournalEntryID string
	PostedBy       string
	PostedAt       *timestamppb.Timestamp
	CancelledBy    string
	CancelledAt    *timestamppb.Timestamp
	CancelReason   string
	Lines          []*InvoiceLineMsg
	Version        int32
	CreatedAt      *timestamppb.Timestamp
	UpdatedAt      *timestamppb.Timestamp
}

type EntryLineMsg struct {
	LineNumber  int32
	AccountID   string
	AccountCode string
	AccountName string
	Debit       string
	Credit      string
	Description string
	DueDate     string
}

type JournalEntryMsg struct {
	ID          string
	InvoiceID   string
	EntryDate   string
	Status      string
	Description string
	Reference   string
	TotalDebit  string
	TotalCredit string
	Lines       []*EntryLineMsg
	Version     int32
}

type DueLineMsg struct {
	Sequence    int32
	Amount      string
	DueDate     string
	Description string
}

func (h *InvoicingHandler) PostInvoice(ctx context.Context, req *PostInvoiceRequest) (*PostInvoiceResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}
	invoiceID, err := uuid.Parse(req.InvoiceID)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid invoice_id: %v", err)
	}

	result, err := h.postInvoice.Execute(ctx, dto.PostInvoiceRequest{
		InvoiceID: invoiceID,
		Actor:     actorFromContext(ctx),
	})
	if err != nil {
		return nil, toStatusError(err)
	}

	return &PostInvoiceResponse{Invoice: toInvoiceMsg(result)}, nil
}

func (h *InvoicingHandler) CancelInvoice(ctx context.Context, req *CancelInvoiceRequest) (*CancelInvoiceResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}
	invoiceID, err := uuid.Parse(req.InvoiceID)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid invoice_id: %v", err)
	}

	result, err := h.cancelInvoice.Execute(ctx, dto.CancelInvoiceRequest{
		InvoiceID: invoiceID,
		Actor:     actorFromContext(ctx),
		Reason:    req.Reason,
		Force:     req.Force,
	})
	if err != nil {
		return nil, toStatusError(err)
	}

	return &CancelInvoiceResponse{Invoice: toInvoiceMsg(result)}, nil
}

func (h *InvoicingHandler) ResetInvoice(ctx context.Context, req *ResetInvoiceRequest) (*ResetInvoiceResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}
	invoiceID, err := uuid.Parse(req.InvoiceID)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid invoice_id: %v", err)
	}

	result, err := h.resetInvoice.Execute(ctx, dto.ResetInvoiceRequest{
		InvoiceID: invoiceID,
		Actor:     actorFromContext(ctx),
		Reason:    req.Reason,
		Force:     req.Force,
	})
	if err != nil {
		return nil, toStatusError(err)
	}

	return &ResetInvoiceResponse{Invoice: toInvoiceMsg(result)}, nil
}

func (h *InvoicingHandler) PreviewJournalEntry(ctx context.Context, req *PreviewJournalEntryRequest) (*PreviewJournalEntryResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}
	invoiceID, err := uuid.Parse(req.InvoiceID)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid invoice_id: %v", err)
	}

	result, err := h.previewEntry.Execute(ctx, dto.PreviewJournalEntryRequest{InvoiceID: invoiceID})
	if err != nil {
		return nil, toStatusError(err)
	}

	return &PreviewJournalEntryResponse{Entry: toJournalEntryMsg(result)}, nil
}

func (h *InvoicingHandler) PreviewPaymentSchedule(ctx context.Context, req *PreviewPaymentScheduleRequest) (*PreviewPaymentScheduleResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}
	var ucReq dto.PreviewPaymentScheduleRequest
	if req.InvoiceID != "" {
		invoiceID, err := uuid.Parse(req.InvoiceID)
		if err != nil {
			return nil, status.Errorf(codes.InvalidArgument, "invalid invoice_id: %v", err)
		}
		ucReq.InvoiceID = invoiceID
	} else {
		total, err := decimal.NewFromString(req.Total)
		if err != nil {
			return nil, status.Errorf(codes.InvalidArgument, "invalid total: %v", err)
		}
		invoiceDate, err := time.Parse("2006-01-02", req.InvoiceDate)
		if err != nil {
			return nil, status.Errorf(codes.InvalidArgument, "invalid invoice_date: %v", err)
		}
		ucReq.Total = total
		ucReq.InvoiceDate = invoiceDate
		if req.PaymentTermsID != "" {
			termsID, err := uuid.Parse(req.PaymentTermsID)
			if err != nil {
				return nil, status.Errorf(codes.InvalidArgument, "invalid payment_terms_id: %v", err)
			}
			ucReq.PaymentTermsID = termsID
		}
	}

	result, err := h.previewSchedule.Execute(ctx, ucReq)
	if err != nil {
		return nil, toStatusError(err)
	}

	lines := make([]*DueLineMsg, 0, len(result.Lines))
	for _, l := range result.Lines {
		lines = append(lines, &DueLineMsg{
			Sequence:    int32(l.Sequence),
			Amount:      l.Amount.String(),
			DueDate:     l.DueDate.Format("2006-01-02"),
			Description: l.Description,
		})
	}

	resp := &PreviewPaymentScheduleResponse{
		Total: result.Total.String(),
		Lines: lines,
	}
	if result.InvoiceID != uuid.Nil {
		resp.InvoiceID = result.InvoiceID.String()
	}
	return resp, nil
}

func (h *InvoicingHandler) GetInvoice(ctx context.Context, req *GetInvoiceRequest) (*GetInvoiceResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}
	invoiceID, err := uuid.Parse(req.InvoiceID)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid invoice_id: %v", err)
	}

	result, err := h.getInvoice.Execute(ctx, dto.GetInvoiceRequest{InvoiceID: invoiceID})
	if err != nil {
		return nil, toStatusError(err)
	}

	return &GetInvoiceResponse{Invoice: toInvoiceMsg(result)}, nil
}

// actorFromContext identifies the caller from JWT claims for the audit trail.
func actorFromContext(ctx context.Context) string {
	if claims, ok := auth.ClaimsFromContext(ctx); ok {
		return claims.UserID.String()
	}
	return "system"
}

// toStatusError maps application errors onto gRPC status codes.
func toStatusError(err error) error {
	switch {
	case apperr.IsNotFound(err):
		return status.Error(codes.NotFound, err.Error())
	case apperr.IsValidation(err):
		return status.Error(codes.InvalidArgument, err.Error())
	case apperr.IsBusinessRule(err):
		return status.Error(codes.FailedPrecondition, err.Error())
	default:
		return status.Errorf(codes.Internal, "internal error: %v", err)
	}
}

func toInvoiceMsg(r dto.InvoiceResponse) *InvoiceMsg {
	lines := make([]*InvoiceLineMsg, 0, len(r.Lines))
	for _, l := range r.Lines {
		lines = append(lines, &InvoiceLineMsg{
			LineNumber:  int32(l.LineNumber),
			Description: l.Description,
			Quantity:    l.Quantity.String(),
			UnitPrice:   l.UnitPrice.String(),
			NetAmount:   l.NetAmount.String(),
			TaxAmount:   l.TaxAmount.String(),
			TotalAmount: l.TotalAmount.String(),
		})
	}

	msg := &InvoiceMsg{
		ID:            r.ID.String(),
		Number:        r.Number,
		InvoiceType:   r.InvoiceType,
		Status:        r.Status,
		PaymentState:  r.PaymentState,
		ThirdPartyID:  r.ThirdPartyID.String(),
		InvoiceDate:   r.InvoiceDate.Format("2006-01-02"),
		DueDate:       r.DueDate.Format("2006-01-02"),
		Currency:      r.Currency,
		Subtotal:      r.Subtotal.String(),
		DiscountTotal: r.DiscountTotal.String(),
		TaxTotal:      r.TaxTotal.String(),
		Total:         r.Total.String(),
		PaidAmount:    r.PaidAmount.String(),
		Lines:         lines,
		Version:       int32(r.Version),
		CreatedAt:     timestamppb.New(r.CreatedAt),
		UpdatedAt:     timestamppb.New(r.UpdatedAt),
	}
	if r.JournalEntryID != uuid.Nil {
		msg.JournalEntryID = r.JournalEntryID.String()
	}
	msg.PostedBy = r.PostedBy
	if !r.PostedAt.IsZero() {
		msg.PostedAt = timestamppb.New(r.PostedAt)
	}
	msg.CancelledBy = r.CancelledBy
	if !r.CancelledAt.IsZero() {
		msg.CancelledAt = timestamppb.New(r.CancelledAt)
	}
	msg.CancelReason = r.CancelReason
	return msg
}

func toJournalEntryMsg(r dto.JournalEntryResponse) *JournalEntryMsg {
	lines := make([]*EntryLineMsg, 0, len(r.Lines))
	for _, l := range r.Lines {
		line := &EntryLineMsg{
			LineNumber:  int32(l.LineNumber),
			AccountID:   l.AccountID.String(),
			AccountCode: l.AccountCode,
			AccountName: l.AccountName,
			Debit:       l.Debit.String(),
			Credit:      l.Credit.String(),
			Description: l.Description,
		}
		if !l.DueDate.IsZero() {
			line.DueDate = l.DueDate.Format("2006-01-02")
		}
		lines = append(lines, line)
	}

	return &JournalEntryMsg{
		ID:          r.ID.String(),
		InvoiceID:   r.InvoiceID.String(),
		EntryDate:   r.EntryDate.Format("2006-01-02"),
		Status:      r.Status,
		Description: r.Description,
		Reference:   r.Reference,
		TotalDebit:  r.TotalDebit.String(),
		TotalCredit: r.TotalCredit.String(),
		Lines:       lines,
		Version:     int32(r.Version),
	}
}
