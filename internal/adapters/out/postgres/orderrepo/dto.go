// Package orderrepo persists orders together with their lines.
//
// An order row is written once with all of its lines. Afterwards only the
// status, the delivery partner and the status timestamps change; lines and
// total_amount are the snapshot taken at creation.
package orderrepo

import (
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// idempotencyKeyIndex makes a client key unique per user. Two customers may
// send the same key.
const idempotencyKeyIndex = "idx_orders_user_idempotency_key"

// OrderDTO is the orders row. Status is stored by name so the table reads
// the same as the API.
type OrderDTO struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID           uuid.UUID       `gorm:"type:uuid;not null;index;uniqueIndex:idx_orders_user_idempotency_key,priority:1"`
	RestaurantID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	PartnerID        *uuid.UUID      `gorm:"type:uuid;index"`
	Status           string          `gorm:"type:varchar(32);not null;index"`
	TotalAmount      decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	PaymentProof     string          `gorm:"type:varchar(255);not null"`
	IdempotencyKey   *string         `gorm:"type:varchar(128);uniqueIndex:idx_orders_user_idempotency_key,priority:2"`
	CreatedAt        time.Time       `gorm:"not null;index"`
	PreparingAt      *time.Time
	OutForDeliveryAt *time.Time
	DeliveredAt      *time.Time
	CancelledAt      *time.Time
	Lines            []OrderLineDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

// OrderLineDTO is one order_lines row. UnitPrice is the menu price at the
// moment the order was placed.
type OrderLineDTO struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	Position   int             `gorm:"not null"`
	MenuItemID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Quantity   int             `gorm:"not null;check:chk_order_lines_quantity,quantity >= 1"`
	UnitPrice  decimal.Decimal `gorm:"type:numeric(10,2);not null"`
}

func (OrderLineDTO) TableName() string {
	return "order_lines"
}

func fromDomain(o *order.Order) OrderDTO {
	var partnerID *uuid.UUID
	if id := o.Partner(); id != nil {
		raw := id.Raw()
		partnerID = &raw
	}

	var key *string
	if k := o.IdempotencyKey(); k != "" {
		key = &k
	}

	lines := make([]OrderLineDTO, 0, len(o.Lines()))
	for i, l := range o.Lines() {
		lines = append(lines, OrderLineDTO{
			ID:         l.ID().Raw(),
			OrderID:    o.ID().Raw(),
			Position:   i,
			MenuItemID: l.MenuItemID().Raw(),
			Quantity:   l.Quantity(),
			UnitPrice:  l.UnitPrice(),
		})
	}

	ts := o.Timestamps()
	return OrderDTO{
		ID:               o.ID().Raw(),
		UserID:           o.UserID().Raw(),
		RestaurantID:     o.RestaurantID().Raw(),
		PartnerID:        partnerID,
		Status:           o.Status().String(),
		TotalAmount:      o.TotalAmount(),
		PaymentProof:     o.PaymentProof(),
		IdempotencyKey:   key,
		CreatedAt:        o.CreatedAt(),
		PreparingAt:      ts.PreparingAt,
		OutForDeliveryAt: ts.OutForDeliveryAt,
		DeliveredAt:      ts.DeliveredAt,
		CancelledAt:      ts.CancelledAt,
		Lines:            lines,
	}
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromRaw(dto.ID)
	if err != nil {
		return nil, err
	}
	userID, err := kernel.UUIDFromRaw(dto.UserID)
	if err != nil {
		return nil, err
	}
	restaurantID, err := kernel.UUIDFromRaw(dto.RestaurantID)
	if err != nil {
		return nil, err
	}

	var partnerID *kernel.UUID
	if dto.PartnerID != nil {
		pID, partnerErr := kernel.UUIDFromRaw(*dto.PartnerID)
		if partnerErr != nil {
			return nil, partnerErr
		}
		partnerID = &pID
	}

	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	lines := make([]order.Line, 0, len(dto.Lines))
	for _, lineDTO := range dto.Lines {
		line, lineErr := lineToDomain(lineDTO)
		if lineErr != nil {
			return nil, lineErr
		}
		lines = append(lines, line)
	}

	var key string
	if dto.IdempotencyKey != nil {
		key = *dto.IdempotencyKey
	}

	return order.RestoreOrder(order.RestoreParams{
		ID:           id,
		UserID:       userID,
		RestaurantID: restaurantID,
		PartnerID:    partnerID,
		Status:       status,
		Lines:        lines,
		TotalAmount:  dto.TotalAmount,
		PaymentProof: dto.PaymentProof,
		CreatedAt:    dto.CreatedAt,
		Timestamps: order.Timestamps{
			PreparingAt:      dto.PreparingAt,
			OutForDeliveryAt: dto.OutForDeliveryAt,
			DeliveredAt:      dto.DeliveredAt,
			CancelledAt:      dto.CancelledAt,
		},
		IdempotencyKey: key,
	})
}

func lineToDomain(dto OrderLineDTO) (order.Line, error) {
	id, err := kernel.UUIDFromRaw(dto.ID)
	if err != nil {
		return order.Line{}, err
	}
	menuItemID, err := kernel.UUIDFromRaw(dto.MenuItemID)
	if err != nil {
		return order.Line{}, err
	}
	return order.NewLine(id, menuItemID, dto.Quantity, dto.UnitPrice)
}
