package catalog

import (
	"errors"
	"fmt"
	"strings"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrMenuItemIsNotConstructed = errors.New("MenuItem must be created via NewMenuItem constructor")

// MaxPrice is the highest menu price. Prices are stored as numeric(10,2) and
// an order line multiplies them by up to a thousand units.
var MaxPrice = decimal.RequireFromString("99999.99")

// MenuItem is a priced dish of one restaurant, filed under one of its
// categories. The available flag is an operator override that applies on top
// of the category window.
type MenuItem struct {
	id           kernel.UUID
	restaurantID kernel.UUID
	categoryID   kernel.UUID
	name         string
	price        decimal.Decimal
	available    bool
	guard        guard.ConstructorGuard
}

// NewMenuItem creates an available menu item.
func NewMenuItem(id, restaurantID, categoryID kernel.UUID, name string, price decimal.Decimal) (*MenuItem, error) {
	return RestoreMenuItem(id, restaurantID, categoryID, name, price, true)
}

func RestoreMenuItem(
	id, restaurantID, categoryID kernel.UUID,
	name string,
	price decimal.Decimal,
	available bool,
) (*MenuItem, error) {
	name = strings.TrimSpace(name)

	var nameErr error
	if name == "" {
		nameErr = errs.NewValueIsRequiredError("menu item name")
	}
	if err := errors.Join(
		id.Validate(),
		restaurantID.Validate(),
		categoryID.Validate(),
		nameErr,
		validatePrice(price),
	); err != nil {
		return nil, err
	}

	return &MenuItem{
		id:           id,
		restaurantID: restaurantID,
		categoryID:   categoryID,
		name:         name,
		price:        price,
		available:    available,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

func (m *MenuItem) Validate() error {
	if m == nil {
		return ErrMenuItemIsNotConstructed
	}
	return m.guard.Validate(ErrMenuItemIsNotConstructed)
}

func (m *MenuItem) ID() kernel.UUID           { return m.id }
func (m *MenuItem) RestaurantID() kernel.UUID { return m.restaurantID }
func (m *MenuItem) CategoryID() kernel.UUID   { return m.categoryID }
func (m *MenuItem) Name() string              { return m.name }
func (m *MenuItem) Price() decimal.Decimal    { return m.price }
func (m *MenuItem) IsAvailable() bool         { return m.available }

// BelongsTo reports whether the item is on the given restaurant's menu.
func (m *MenuItem) BelongsTo(restaurantID kernel.UUID) bool {
	return m.restaurantID.IsEqual(restaurantID)
}

// ChangePrice sets a new price. Orders already placed keep their snapshot.
func (m *MenuItem) ChangePrice(price decimal.Decimal) error {
	if err := validatePrice(price); err != nil {
		return err
	}
	m.price = price
	return nil
}

func (m *MenuItem) SetAvailable(available bool) {
	m.available = available
}

func validatePrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("price", fmt.Errorf("%s is negative", price))
	}
	if price.GreaterThan(MaxPrice) {
		return errs.NewValueIsOutOfRangeError("price", price, decimal.Zero, MaxPrice)
	}
	return nil
}
