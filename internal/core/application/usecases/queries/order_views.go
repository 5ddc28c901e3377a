// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries read the tables directly with SQL and return read models shaped
// for a specific use case; they never load or mutate aggregates.
package queries

import (
	"context"
	"database/sql"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// snapshotRead is used by views that read an order row and its lines in
// separate statements.
var snapshotRead = &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true}

// OrderSummary is the order row as shown in lists and detail views.
// TotalAmount is the snapshot taken when the order was placed.
type OrderSummary struct {
	ID           kernel.UUID
	UserID       kernel.UUID
	RestaurantID kernel.UUID
	PartnerID    *kernel.UUID
	Status       order.Status
	TotalAmount  decimal.Decimal
	PaymentProof string
	CreatedAt    time.Time
	Timestamps   order.Timestamps
}

// OrderLineView is one order line with the current name of its menu item
// and the price paid for it.
type OrderLineView struct {
	MenuItemID kernel.UUID
	ItemName   string
	UnitPrice  decimal.Decimal
	Quantity   int
}

func (l OrderLineView) ItemTotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

const orderSummaryColumns = `
	o.id,
	o.user_id,
	o.restaurant_id,
	o.partner_id,
	o.status,
	o.total_amount,
	o.payment_proof,
	o.created_at,
	o.preparing_at,
	o.out_for_delivery_at,
	o.delivered_at,
	o.cancelled_at`

func scanOrderSummary(rows *sql.Rows) (OrderSummary, error) {
	var (
		summary                  OrderSummary
		id, userID, restaurantID uuid.UUID
		partnerID                uuid.NullUUID
		status                   string
	)

	err := rows.Scan(
		&id,
		&userID,
		&restaurantID,
		&partnerID,
		&status,
		&summary.TotalAmount,
		&summary.PaymentProof,
		&summary.CreatedAt,
		&summary.Timestamps.PreparingAt,
		&summary.Timestamps.OutForDeliveryAt,
		&summary.Timestamps.DeliveredAt,
		&summary.Timestamps.CancelledAt,
	)
	if err != nil {
		return OrderSummary{}, err
	}

	if summary.ID, err = kernel.UUIDFromRaw(id); err != nil {
		return OrderSummary{}, err
	}
	if summary.UserID, err = kernel.UUIDFromRaw(userID); err != nil {
		return OrderSummary{}, err
	}
	if summary.RestaurantID, err = kernel.UUIDFromRaw(restaurantID); err != nil {
		return OrderSummary{}, err
	}
	if partnerID.Valid {
		pid, pidErr := kernel.UUIDFromRaw(partnerID.UUID)
		if pidErr != nil {
			return OrderSummary{}, pidErr
		}
		summary.PartnerID = &pid
	}
	if summary.Status, err = order.ParseStatus(status); err != nil {
		return OrderSummary{}, err
	}

	return summary, nil
}

// loadOrderLines reads the lines of one order in the order they were placed.
func loadOrderLines(ctx context.Context, db *gorm.DB, orderID kernel.UUID) ([]OrderLineView, error) {
	rows, err := db.WithContext(ctx).Raw(`
		SELECT
			l.menu_item_id,
			m.name,
			l.unit_price,
			l.quantity
		FROM order_lines l
		JOIN menu_items m ON m.id = l.menu_item_id
		WHERE l.order_id = ?
		ORDER BY l.position
	`, orderID.Raw()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	lines := make([]OrderLineView, 0)
	for rows.Next() {
		var line OrderLineView
		var menuItemID uuid.UUID

		if err = rows.Scan(&menuItemID, &line.ItemName, &line.UnitPrice, &line.Quantity); err != nil {
			return nil, err
		}
		if line.MenuItemID, err = kernel.UUIDFromRaw(menuItemID); err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return lines, nil
}
