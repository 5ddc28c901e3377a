package commands

import (
	"errors"
	"fmt"
	"strings"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrAddMenuItemCommandIsNotConstructed = errors.New(
	"AddMenuItemCommand must be created via NewAddMenuItemCommand constructor",
)

type AddMenuItemCommand struct {
	restaurantID kernel.UUID
	categoryID   kernel.UUID
	name         string
	price        decimal.Decimal

	guard guard.ConstructorGuard
}

func NewAddMenuItemCommand(
	restaurantID, categoryID kernel.UUID,
	name string,
	price decimal.Decimal,
) (AddMenuItemCommand, error) {
	name = strings.TrimSpace(name)

	var errList []error
	errList = append(errList, restaurantID.Validate(), categoryID.Validate())
	if name == "" {
		errList = append(errList, errs.NewValueIsRequiredError("menu item name"))
	}
	if price.IsNegative() {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause("price", fmt.Errorf("%s is negative", price)))
	}
	if err := errors.Join(errList...); err != nil {
		return AddMenuItemCommand{}, err
	}

	return AddMenuItemCommand{
		restaurantID: restaurantID,
		categoryID:   categoryID,
		name:         name,
		price:        price,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

func (c AddMenuItemCommand) Validate() error {
	return c.guard.Validate(ErrAddMenuItemCommandIsNotConstructed)
}

func (c AddMenuItemCommand) RestaurantID() kernel.UUID { return c.restaurantID }
func (c AddMenuItemCommand) CategoryID() kernel.UUID   { return c.categoryID }
func (c AddMenuItemCommand) Name() string              { return c.name }
func (c AddMenuItemCommand) Price() decimal.Decimal    { return c.price }
