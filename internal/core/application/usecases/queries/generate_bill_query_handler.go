package queries

import (
	"context"
	"database/sql"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/domain/services"
	"fooddelivery/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GenerateBillQueryHandler struct {
	db        *gorm.DB
	generator services.BillGenerator
}

func NewGenerateBillQueryHandler(db *gorm.DB, generator services.BillGenerator) GenerateBillQueryHandler {
	return GenerateBillQueryHandler{db: db, generator: generator}
}

func (h GenerateBillQueryHandler) Handle(ctx context.Context, query GenerateBillQuery) (Bill, error) {
	if err := query.Validate(); err != nil {
		return Bill{}, err
	}

	var bill Bill
	err := h.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var txErr error
		bill, txErr = readBill(ctx, tx, query.OrderID())
		return txErr
	}, snapshotRead)
	if err != nil {
		return Bill{}, err
	}

	billLines := make([]services.BillLine, 0, len(bill.Lines))
	for _, l := range bill.Lines {
		billLines = append(billLines, services.BillLine{ItemName: l.ItemName, UnitPrice: l.UnitPrice, Quantity: l.Quantity})
	}
	bill.Summary = h.generator.Summarize(billLines)

	return bill, nil
}

// readBill loads the bill header and its lines. Run it inside one
// transaction so that both reads see the same snapshot.
func readBill(ctx context.Context, tx *gorm.DB, orderID kernel.UUID) (Bill, error) {
	rows, err := tx.Raw(`
		SELECT
			o.id,
			o.status,
			o.created_at,
			o.total_amount,
			u.id, u.name, u.email, u.mobile, u.address,
			r.id, r.name, r.email, r.mobile, r.address,
			p.id, p.name, p.email, p.mobile, p.address
		FROM orders o
		JOIN users u ON u.id = o.user_id
		JOIN restaurants r ON r.id = o.restaurant_id
		LEFT JOIN delivery_partners p ON p.id = o.partner_id
		WHERE o.id = ?
	`, orderID.Raw()).Rows()
	if err != nil {
		return Bill{}, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return Bill{}, err
		}
		return Bill{}, errs.NewObjectNotFoundError("order", orderID.String())
	}

	bill, err := scanBillHeader(rows)
	if err != nil {
		return Bill{}, err
	}
	rows.Close()

	if bill.Lines, err = loadOrderLines(ctx, tx, bill.OrderID); err != nil {
		return Bill{}, err
	}
	return bill, nil
}

func scanBillHeader(rows *sql.Rows) (Bill, error) {
	var (
		bill                 Bill
		orderID              uuid.UUID
		status               string
		userID, restaurantID uuid.UUID
		partnerID            uuid.NullUUID
		partnerName          sql.NullString
		partnerEmail         sql.NullString
		partnerMobile        sql.NullString
		partnerAddress       sql.NullString
	)

	err := rows.Scan(
		&orderID, &status, &bill.CreatedAt, &bill.TotalAmount,
		&userID, &bill.User.Name, &bill.User.Email, &bill.User.Mobile, &bill.User.Address,
		&restaurantID, &bill.Restaurant.Name, &bill.Restaurant.Email, &bill.Restaurant.Mobile, &bill.Restaurant.Address,
		&partnerID, &partnerName, &partnerEmail, &partnerMobile, &partnerAddress,
	)
	if err != nil {
		return Bill{}, err
	}

	if bill.OrderID, err = kernel.UUIDFromRaw(orderID); err != nil {
		return Bill{}, err
	}
	if bill.Status, err = order.ParseStatus(status); err != nil {
		return Bill{}, err
	}
	if bill.User.ID, err = kernel.UUIDFromRaw(userID); err != nil {
		return Bill{}, err
	}
	if bill.Restaurant.ID, err = kernel.UUIDFromRaw(restaurantID); err != nil {
		return Bill{}, err
	}

	if partnerID.Valid {
		pid, pidErr := kernel.UUIDFromRaw(partnerID.UUID)
		if pidErr != nil {
			return Bill{}, pidErr
		}
		bill.Partner = &PartySummary{
			ID:      pid,
			Name:    partnerName.String,
			Email:   partnerEmail.String,
			Mobile:  partnerMobile.String,
			Address: partnerAddress.String,
		}
	}

	return bill, nil
}
