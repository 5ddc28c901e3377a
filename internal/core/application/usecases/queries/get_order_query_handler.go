package queries

import (
	"context"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"

	"gorm.io/gorm"
)

type GetOrderQueryHandler struct {
	db *gorm.DB
}

func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle returns the order with its lines, or an ObjectNotFoundError. The
// order row and its lines are read in one read-only transaction.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderQueryResponse{}, err
	}

	var response GetOrderQueryResponse
	err := h.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var txErr error
		response, txErr = readOrder(ctx, tx, query.OrderID())
		return txErr
	}, snapshotRead)
	if err != nil {
		return GetOrderQueryResponse{}, err
	}
	return response, nil
}

func readOrder(ctx context.Context, tx *gorm.DB, orderID kernel.UUID) (GetOrderQueryResponse, error) {
	rows, err := tx.Raw(`
		SELECT `+orderSummaryColumns+`
		FROM orders o
		WHERE o.id = ?
	`, orderID.Raw()).Rows()
	if err != nil {
		return GetOrderQueryResponse{}, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return GetOrderQueryResponse{}, err
		}
		return GetOrderQueryResponse{}, errs.NewObjectNotFoundError("order", orderID.String())
	}

	summary, err := scanOrderSummary(rows)
	if err != nil {
		return GetOrderQueryResponse{}, err
	}
	rows.Close()

	lines, err := loadOrderLines(ctx, tx, summary.ID)
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	return GetOrderQueryResponse{OrderSummary: summary, Lines: lines}, nil
}
