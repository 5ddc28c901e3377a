package order

import (
	"time"

	"fooddelivery/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
)

type EventType string

const (
	EventPlaced          EventType = "order.placed"
	EventStatusChanged   EventType = "order.status_changed"
	EventPartnerAssigned EventType = "order.partner_assigned"
)

// Event is recorded by the Order aggregate on every state change and
// published once the surrounding transaction has committed.
type Event struct {
	Type           EventType
	OrderID        kernel.UUID
	UserID         kernel.UUID
	RestaurantID   kernel.UUID
	PartnerID      *kernel.UUID
	PreviousStatus Status
	Status         Status
	TotalAmount    decimal.Decimal
	OccurredAt     time.Time
}
