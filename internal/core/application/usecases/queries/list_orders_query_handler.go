package queries

import (
	"context"
	"fmt"

	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/pkg/errs"

	"gorm.io/gorm"
)

type ownerLookup struct {
	entity string
	table  string
	column string
}

var ownerLookups = map[OrderScope]ownerLookup{
	ScopeUser:       {entity: "user", table: "users", column: "user_id"},
	ScopeRestaurant: {entity: "restaurant", table: "restaurants", column: "restaurant_id"},
	ScopePartner:    {entity: "delivery partner", table: "delivery_partners", column: "partner_id"},
}

type ListOrdersQueryHandler struct {
	db *gorm.DB
}

func NewListOrdersQueryHandler(db *gorm.DB) ListOrdersQueryHandler {
	return ListOrdersQueryHandler{db: db}
}

// Handle returns the orders of the query's scope without their lines. An
// unknown owner is reported as ObjectNotFoundError; an owner without orders
// yields an empty slice.
func (h ListOrdersQueryHandler) Handle(ctx context.Context, query ListOrdersQuery) ([]OrderSummary, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	db := h.db.WithContext(ctx)

	if query.Scope() == ScopeActive {
		return h.list(db, `
			SELECT `+orderSummaryColumns+`
			FROM orders o
			WHERE o.status NOT IN (?, ?)
			ORDER BY o.created_at, o.id
		`, order.Delivered.String(), order.Cancelled.String())
	}

	lookup, ok := ownerLookups[query.Scope()]
	if !ok {
		return nil, fmt.Errorf("unsupported order scope %d", query.Scope())
	}

	var exists bool
	if err := db.Raw(
		"SELECT EXISTS (SELECT 1 FROM "+lookup.table+" WHERE id = ?)", query.OwnerID().Raw(),
	).Scan(&exists).Error; err != nil {
		return nil, err
	}
	if !exists {
		return nil, errs.NewObjectNotFoundError(lookup.entity, query.OwnerID().String())
	}

	return h.list(db, `
		SELECT `+orderSummaryColumns+`
		FROM orders o
		WHERE o.`+lookup.column+` = ?
		ORDER BY o.created_at DESC, o.id
	`, query.OwnerID().Raw())
}

func (h ListOrdersQueryHandler) list(db *gorm.DB, sql string, args ...any) ([]OrderSummary, error) {
	rows, err := db.Raw(sql, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]OrderSummary, 0)
	for rows.Next() {
		summary, scanErr := scanOrderSummary(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		orders = append(orders, summary)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
