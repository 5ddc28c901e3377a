package commands

import (
	"errors"
	"fmt"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrUpdateMenuItemCommandIsNotConstructed = errors.New(
	"UpdateMenuItemCommand must be created via NewUpdateMenuItemCommand constructor",
)

// UpdateMenuItemCommand changes the price, the availability flag, or both.
// A nil field is left as it is.
type UpdateMenuItemCommand struct {
	restaurantID kernel.UUID
	menuItemID   kernel.UUID
	price        *decimal.Decimal
	available    *bool

	guard guard.ConstructorGuard
}

func NewUpdateMenuItemCommand(
	restaurantID, menuItemID kernel.UUID,
	price *decimal.Decimal,
	available *bool,
) (UpdateMenuItemCommand, error) {
	var errList []error
	errList = append(errList, restaurantID.Validate(), menuItemID.Validate())
	if price == nil && available == nil {
		errList = append(errList, errs.NewValueIsRequiredError("price or availability"))
	}
	if price != nil && price.IsNegative() {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause("price", fmt.Errorf("%s is negative", *price)))
	}
	if err := errors.Join(errList...); err != nil {
		return UpdateMenuItemCommand{}, err
	}

	return UpdateMenuItemCommand{
		restaurantID: restaurantID,
		menuItemID:   menuItemID,
		price:        price,
		available:    available,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

func (c UpdateMenuItemCommand) Validate() error {
	return c.guard.Validate(ErrUpdateMenuItemCommandIsNotConstructed)
}

func (c UpdateMenuItemCommand) RestaurantID() kernel.UUID { return c.restaurantID }
func (c UpdateMenuItemCommand) MenuItemID() kernel.UUID   { return c.menuItemID }
func (c UpdateMenuItemCommand) Price() *decimal.Decimal   { return c.price }
func (c UpdateMenuItemCommand) Available() *bool          { return c.available }
