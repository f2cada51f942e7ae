package handler

import (
	"context"

	"google.golang.org/grpc"
)

// BookstoreClient calls bookstore.v1.Bookstore using the JSON codec.
type BookstoreClient struct {
	cc grpc.ClientConnInterface
}

func NewBookstoreClient(cc grpc.ClientConnInterface) *BookstoreClient {
	return &BookstoreClient{cc: cc}
}

func (c *BookstoreClient) Purchase(ctx context.Context, in *PurchaseRequest, opts ...grpc.CallOption) (*PurchaseResponse, error) {
	out := new(PurchaseResponse)
	if err := c.invoke(ctx, "Purchase", in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *BookstoreClient) ListBooks(ctx context.Context, in *ListBooksRequest, opts ...grpc.CallOption) (*ListBooksResponse, error) {
	out := new(ListBooksResponse)
	if err := c.invoke(ctx, "ListBooks", in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *BookstoreClient) Evict(ctx context.Context, in *EvictRequest, opts ...grpc.CallOption) (*EvictResponse, error) {
	out := new(EvictResponse)
	if err := c.invoke(ctx, "Evict", in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *BookstoreClient) invoke(ctx context.Context, method string, in, out any, opts []grpc.CallOption) error {
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(JSONCodecName)}, opts...)
	return c.cc.Invoke(ctx, "/"+bookstoreServiceName+"/"+method, in, out, opts...)
}
