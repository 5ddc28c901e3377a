package queries

import (
	"errors"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/domain/services"
	"fooddelivery/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrGenerateBillQueryIsNotConstructed = errors.New(
	"GenerateBillQuery must be created via NewGenerateBillQuery constructor",
)

// GenerateBillQuery renders the invoice of one order.
//
// Example:
//
//	query, err := NewGenerateBillQuery(orderID)
//	if err != nil {
//	    return err
//	}
//	bill, err := handler.Handle(ctx, query)
//	fmt.Println(bill.Summary.GrandTotal) // subtotal + GST + delivery fee
type GenerateBillQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGenerateBillQuery(orderID kernel.UUID) (GenerateBillQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GenerateBillQuery{}, err
	}
	return GenerateBillQuery{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (q GenerateBillQuery) OrderID() kernel.UUID { return q.orderID }

func (q GenerateBillQuery) Validate() error {
	return q.guard.Validate(ErrGenerateBillQueryIsNotConstructed)
}

// PartySummary is the denormalized contact block of a customer, restaurant
// or delivery partner printed on a bill.
type PartySummary struct {
	ID      kernel.UUID
	Name    string
	Email   string
	Mobile  string
	Address string
}

// Bill is the itemized invoice. Lines carry the prices paid at order time.
// TotalAmount is the order's stored total; Summary.GrandTotal adds tax and
// the delivery fee for display and is never written back.
type Bill struct {
	OrderID     kernel.UUID
	Status      order.Status
	CreatedAt   time.Time
	TotalAmount decimal.Decimal
	User        PartySummary
	Restaurant  PartySummary
	Partner     *PartySummary
	Lines       []OrderLineView
	Summary     services.BillSummary
}
