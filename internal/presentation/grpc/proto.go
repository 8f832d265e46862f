package grpc

// proto.go defines the gRPC server interface derived from finbooks/invoicing/v1/invoicing.proto.
// This file serves as a stand-in for buf-generated code. Once `buf generate` is run,
// replace this file with the import from github.com/finbooks/backoffice/api/gen/go/finbooks/invoicing/v1.

import (
	"context"

	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// InvoicingServiceServer is the server API for InvoicingService.
// It mirrors the proto-generated interface from finbooks.invoicing.v1.InvoicingService.
type InvoicingServiceServer interface {
	PostInvoice(context.Context, *PostInvoiceRequest) (*PostInvoiceResponse, error)
	CancelInvoice(context.Context, *CancelInvoiceRequest) (*CancelInvoiceResponse, error)
	ResetInvoice(context.Context, *ResetInvoiceRequest) (*ResetInvoiceResponse, error)
	PreviewJournalEntry(context.Context, *PreviewJournalEntryRequest) (*PreviewJournalEntryResponse, error)
	PreviewPaymentSchedule(context.Context, *PreviewPaymentScheduleRequest) (*PreviewPaymentScheduleResponse, error)
	GetInvoice(context.Context, *GetInvoiceRequest) (*GetInvoiceResponse, error)
	mustEmbedUnimplementedInvoicingServiceServer()
}

// UnimplementedInvoicingServiceServer provides forward-compatible default implementations.
type UnimplementedInvoicingServiceServer struct{}

func (UnimplementedInvoicingServiceServer) PostInvoice(context.Context, *PostInvoiceRequest) (*PostInvoiceResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method PostInvoice not implemented")
}
func (UnimplementedInvoicingServiceServer) CancelInvoice(context.Context, *CancelInvoiceRequest) (*CancelInvoiceResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method CancelInvoice not implemented")
}
func (UnimplementedInvoicingServiceServer) ResetInvoice(context.Context, *ResetInvoiceRequest) (*ResetInvoiceResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ResetInvoice not implemented")
}
func (UnimplementedInvoicingServiceServer) PreviewJournalEntry(context.Context, *PreviewJournalEntryRequest) (*PreviewJournalEntryResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method PreviewJournalEntry not implemented")
}
func (UnimplementedInvoicingServiceServer) PreviewPaymentSchedule(context.Context, *PreviewPaymentScheduleRequest) (*PreviewPaymentScheduleResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method PreviewPaymentSchedule not implemented")
}
func (UnimplementedInvoicingServiceServer) GetInvoice(context.Context, *GetInvoiceRequest) (*GetInvoiceResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetInvoice not implemented")
}
func (UnimplementedInvoicingServiceServer) mustEmbedUnimplementedInvoicingServiceServer() {}

// RegisterInvoicingServiceServer registers the InvoicingServiceServer with the gRPC server.
func RegisterInvoicingServiceServer(s *grpclib.Server, srv InvoicingServiceServer) {
	s.RegisterService(&_InvoicingService_serviceDesc, srv) //nolint:revive // gRPC handler registration
}

//nolint:revive // gRPC handler registration
var _InvoicingService_serviceDesc = grpclib.ServiceDesc{
	ServiceName: "finbooks.invoicing.v1.InvoicingService",
	HandlerType: (*InvoicingServiceServer)(nil),
	Methods: []grpclib.MethodDesc{
		{MethodName: "PostInvoice", Handler: _InvoicingService_PostInvoice_Handler},                       //nolint:revive // gRPC handler registration
		{MethodName: "CancelInvoice", Handler: _InvoicingService_CancelInvoice_Handler},                   //nolint:revive // gRPC handler registration
		{MethodName: "ResetInvoice", Handler: _InvoicingService_ResetInvoice_Handler},                     //nolint:revive // gRPC handler registration
		{MethodName: "PreviewJournalEntry", Handler: _InvoicingService_PreviewJournalEntry_Handler},       //nolint:revive // gRPC handler registration
		{MethodName: "PreviewPaymentSchedule", Handler: _InvoicingService_PreviewPaymentSchedule_Handler}, //nolint:revive // gRPC handler registration
		{MethodName: "GetInvoice", Handler: _InvoicingService_GetInvoice_Handler},                         //nolint:revive // gRPC handler registration
	},
	Streams: []grpclib.StreamDesc{},
}

//nolint:revive,errcheck // gRPC handler registration
func _InvoicingService_PostInvoice_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(PostInvoiceRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(InvoicingServiceServer).PostInvoice(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/finbooks.invoicing.v1.InvoicingService/PostInvoice",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(InvoicingServiceServer).PostInvoice(ctx, req.(*PostInvoiceRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _InvoicingService_CancelInvoice_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(CancelInvoiceRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(InvoicingServiceServer).CancelInvoice(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/finbooks.invoicing.v1.InvoicingService/CancelInvoice",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(InvoicingServiceServer).CancelInvoice(ctx, req.(*CancelInvoiceRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _InvoicingService_ResetInvoice_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(ResetInvoiceRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(InvoicingServiceServer).ResetInvoice(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/finbooks.invoicing.v1.InvoicingService/ResetInvoice",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(InvoicingServiceServer).ResetInvoice(ctx, req.(*ResetInvoiceRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _InvoicingService_PreviewJournalEntry_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(PreviewJournalEntryRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(InvoicingServiceServer).PreviewJournalEntry(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/finbooks.invoicing.v1.InvoicingService/PreviewJournalEntry",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(InvoicingServiceServer).PreviewJournalEntry(ctx, req.(*PreviewJournalEntryRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _InvoicingService_PreviewPaymentSchedule_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(PreviewPaymentScheduleRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(InvoicingServiceServer).PreviewPaymentSchedule(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/finbooks.invoicing.v1.InvoicingService/PreviewPaymentSchedule",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(InvoicingServiceServer).PreviewPaymentSchedule(ctx, req.(*PreviewPaymentScheduleRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _InvoicingService_GetInvoice_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(GetInvoiceRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(InvoicingServiceServer).GetInvoice(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/finbooks.invoicing.v1.InvoicingService/GetInvoice",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(InvoicingServiceServer).GetInvoice(ctx, req.(*GetInvoiceRequest))
	}
	return interceptor(ctx, in, info, handler)
}
