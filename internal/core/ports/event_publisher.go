package ports

import (
	"context"

	"fooddelivery/internal/core/domain/model/order"
)

// OrderEventPublisher delivers committed order events to other systems.
type OrderEventPublisher interface {
	Publish(ctx context.Context, events ...order.Event) error
}
