package ports

import (
	"context"

	"fooddelivery/internal/core/domain/model/kernel"
)

// IdempotencyStore is a fast lookup from a client supplied Idempotency-Key
// to the order it created. Keys are scoped to the customer who sent them.
// The orders table remains the source of truth.
type IdempotencyStore interface {
	// Lookup returns the order id remembered for the user's key, if any.
	Lookup(ctx context.Context, userID kernel.UUID, key string) (kernel.UUID, bool, error)
	Remember(ctx context.Context, userID kernel.UUID, key string, orderID kernel.UUID) error
}
