// Package ports defines the contracts between the order engine and its
// infrastructure: repositories bound to a unit of work, attachment storage,
// event publishing and idempotency bookkeeping.
package ports

import (
	"context"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Lines are written together with their order and never updated afterwards.
type OrderRepository interface {
	// Add persists a new order together with all of its lines.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists status, delivery partner and status timestamps.
	// Lines and the total are immutable and are not written.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order with its lines.
	// Returns *errs.ObjectNotFoundError when the id does not exist.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetForUpdate is Get with the order row locked until the surrounding
	// transaction ends.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetByIdempotencyKey finds the order the user created with the given
	// client key.
	GetByIdempotencyKey(ctx context.Context, userID kernel.UUID, key string) (*order.Order, error)

	// GetFirstAwaitingDispatch locks and returns the oldest PREPARING order
	// without a delivery partner. Rows locked by other transactions are skipped.
	GetFirstAwaitingDispatch(ctx context.Context) (*order.Order, error)
}
