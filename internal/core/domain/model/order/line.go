package order

import (
	"errors"
	"fmt"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var ErrLineIsNotConstructed = errors.New("Line must be created via NewLine constructor")

// Limits keep every amount of an order within numeric(10,2).
const MaxLineQuantity = 999

var (
	MaxUnitPrice   = decimal.RequireFromString("99999.99")
	MaxTotalAmount = decimal.RequireFromString("99999999.99")
)

// Line is one menu item, its quantity and the unit price captured when the
// order was placed. The price never follows later catalog changes.
type Line struct {
	id         kernel.UUID
	menuItemID kernel.UUID
	quantity   int
	unitPrice  decimal.Decimal

	isConstructed bool
}

func NewLine(id, menuItemID kernel.UUID, quantity int, unitPrice decimal.Decimal) (Line, error) {
	var errList []error
	errList = append(errList, id.Validate(), menuItemID.Validate())
	switch {
	case quantity < 1:
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause(
			"quantity", fmt.Errorf("%d is less than 1", quantity),
		))
	case quantity > MaxLineQuantity:
		errList = append(errList, errs.NewValueIsOutOfRangeError("quantity", quantity, 1, MaxLineQuantity))
	}
	switch {
	case unitPrice.IsNegative():
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause(
			"unit price", fmt.Errorf("%s is negative", unitPrice),
		))
	case unitPrice.GreaterThan(MaxUnitPrice):
		errList = append(errList, errs.NewValueIsOutOfRangeError("unit price", unitPrice, decimal.Zero, MaxUnitPrice))
	}
	if err := errors.Join(errList...); err != nil {
		return Line{}, err
	}

	return Line{
		id:            id,
		menuItemID:    menuItemID,
		quantity:      quantity,
		unitPrice:     unitPrice,
		isConstructed: true,
	}, nil
}

func (l Line) Validate() error {
	if !l.isConstructed {
		return ErrLineIsNotConstructed
	}
	return nil
}

func (l Line) ID() kernel.UUID            { return l.id }
func (l Line) MenuItemID() kernel.UUID    { return l.menuItemID }
func (l Line) Quantity() int              { return l.quantity }
func (l Line) UnitPrice() decimal.Decimal { return l.unitPrice }

// ItemTotal is unit price times quantity. It is derived and never stored.
func (l Line) ItemTotal() decimal.Decimal {
	return l.unitPrice.Mul(decimal.NewFromInt(int64(l.quantity)))
}
