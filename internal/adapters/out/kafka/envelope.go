package kafka

import (
	"encoding/json"
	"time"

	"fooddelivery/internal/core/domain/model/order"
)

const envelopeVersion = 1

// Envelope wraps every message written to the order topic.
type Envelope struct {
	EventID       string          `json:"event_id"`
	EventType     string          `json:"event_type"`
	EventVersion  int             `json:"event_version"`
	OccurredAt    time.Time       `json:"occurred_at"`
	Producer      string          `json:"producer"`
	CorrelationID string          `json:"correlation_id,omitempty"`
	Payload       json.RawMessage `json:"payload"`
}

// OrderChangedPayload is the body of order.placed, order.status_changed and
// order.partner_assigned.
type OrderChangedPayload struct {
	OrderID        string  `json:"order_id"`
	UserID         string  `json:"user_id"`
	RestaurantID   string  `json:"restaurant_id"`
	PartnerID      *string `json:"partner_id,omitempty"`
	PreviousStatus string  `json:"previous_status,omitempty"`
	Status         string  `json:"status"`
	TotalAmount    string  `json:"total_amount"`
}

func payloadFromEvent(e order.Event) OrderChangedPayload {
	p := OrderChangedPayload{
		OrderID:      e.OrderID.String(),
		UserID:       e.UserID.String(),
		RestaurantID: e.RestaurantID.String(),
		Status:       e.Status.String(),
		TotalAmount:  e.TotalAmount.StringFixed(2),
	}
	if e.PartnerID != nil {
		id := e.PartnerID.String()
		p.PartnerID = &id
	}
	if e.PreviousStatus != order.Unknown {
		p.PreviousStatus = e.PreviousStatus.String()
	}
	return p
}
