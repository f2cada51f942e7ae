package handler

import (
	"context"
	"strings"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/rl1809/quantum-bookstore/internal/core/domain"
	"github.com/rl1809/quantum-bookstore/internal/core/service"
)

const bookstoreServiceName = "bookstore.v1.Bookstore"

type PurchaseRequest struct {
	RequestID string `json:"request_id"`
	ISBN      string `json:"isbn"`
	Quantity  int32  `json:"quantity"`
	Email     string `json:"email"`
	Address   string `json:"address"`
}

type PurchaseResponse struct {
	Success        bool   `json:"success"`
	Code           string `json:"code,omitempty"`
	Message        string `json:"message"`
	RemainingStock int32  `json:"remaining_stock,omitempty"`
}

type ListBooksRequest struct{}

type ListBooksResponse struct {
	Books []domain.ItemView `json:"books"`
}

// EvictRequest fields left unset fall back to the configured policy.
type EvictRequest struct {
	ReferenceYear *int32 `json:"reference_year,omitempty"`
	MaxAgeYears   *int32 `json:"max_age_years,omitempty"`
}

type EvictResponse struct {
	Evicted []string `json:"evicted"`
}

// BookstoreServer is the server API of bookstore.v1.Bookstore.
type BookstoreServer interface {
	Purchase(context.Context, *PurchaseRequest) (*PurchaseResponse, error)
	ListBooks(context.Context, *ListBooksRequest) (*ListBooksResponse, error)
	Evict(context.Context, *EvictRequest) (*EvictResponse, error)
}

type GRPCHandler struct {
	bookstore *service.BookstoreService
	eviction  service.EvictionPolicy
}

func NewGRPCHandler(bookstore *service.BookstoreService, eviction service.EvictionPolicy) *GRPCHandler {
	return &GRPCHandler{bookstore: bookstore, eviction: eviction}
}

func RegisterBookstoreServer(s grpc.ServiceRegistrar, srv BookstoreServer) {
	s.RegisterService(&bookstoreServiceDesc, srv)
}

func (h *GRPCHandler) Purchase(ctx context.Context, req *PurchaseRequest) (*PurchaseResponse, error) {
	if req.ISBN == "" || req.Quantity <= 0 {
		return nil, status.Error(codes.InvalidArgument, "isbn and a positive quantity are required")
	}

	res, err := h.bookstore.Purchase(ctx, service.PurchaseRequest{
		RequestID: req.RequestID,
		ISBN:      req.ISBN,
		Quantity:  int(req.Quantity),
		Email:     req.Email,
		Address:   req.Address,
	})
	if err != nil {
		f := classify(err)
		switch f.code {
		case codeInternal:
			return nil, status.Error(codes.Internal, f.message)
		case codeUnavailable:
			return nil, status.Error(codes.Unavailable, f.message)
		}
		return &PurchaseResponse{
			Success: false,
			Code:    f.code,
			Message: f.message,
		}, nil
	}

	return &PurchaseResponse{
		Success:        true,
		Message:        strings.Join(res.Messages, "\n"),
		RemainingStock: int32(res.RemainingStock),
	}, nil
}

func (h *GRPCHandler) ListBooks(ctx context.Context, _ *ListBooksRequest) (*ListBooksResponse, error) {
	return &ListBooksResponse{Books: h.bookstore.List(ctx)}, nil
}

func (h *GRPCHandler) Evict(ctx context.Context, req *EvictRequest) (*EvictResponse, error) {
	policy := h.eviction
	if req.ReferenceYear != nil {
		policy.ReferenceYear = int(*req.ReferenceYear)
	}
	if req.MaxAgeYears != nil {
		policy.MaxAgeYears = int(*req.MaxAgeYears)
	}

	evicted, err := h.bookstore.Evict(ctx, policy)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	return &EvictResponse{Evicted: evicted}, nil
}

var bookstoreServiceDesc = grpc.ServiceDesc{
	ServiceName: bookstoreServiceName,
	HandlerType: (*BookstoreServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Purchase", Handler: purchaseHandler},
		{MethodName: "ListBooks", Handler: listBooksHandler},
		{MethodName: "Evict", Handler: evictHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "bookstore/v1/bookstore.json",
}

func purchaseHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(PurchaseRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(BookstoreServer).Purchase(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + bookstoreServiceName + "/Purchase"}
	return interceptor(ctx, in, info, func(ctx context.Context, req any) (any, error) {
		return srv.(BookstoreServer).Purchase(ctx, req.(*PurchaseRequest))
	})
}

func listBooksHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(ListBooksRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(BookstoreServer).ListBooks(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + bookstoreServiceName + "/ListBooks"}
	return interceptor(ctx, in, info, func(ctx context.Context, req any) (any, error) {
		return srv.(BookstoreServer).ListBooks(ctx, req.(*ListBooksRequest))
	})
}

func evictHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(EvictRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(BookstoreServer).Evict(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + bookstoreServiceName + "/Evict"}
	return interceptor(ctx, in, info, func(ctx context.Context, req any) (any, error) {
		return srv.(BookstoreServer).Evict(ctx, req.(*EvictRequest))
	})
}
