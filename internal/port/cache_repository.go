package port

import "context"

type IdempotencyStore interface {
	// SetIdempotency claims key, returns false if it was already claimed
	SetIdempotency(ctx context.Context, key string) (bool, error)

	// ReleaseIdempotency frees a claimed key (the guarded call failed and may be retried)
	ReleaseIdempotency(ctx context.Context, key string) error
}
