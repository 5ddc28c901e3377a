package queries

import (
	"errors"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrGetRestaurantMenuQueryIsNotConstructed = errors.New(
	"GetRestaurantMenuQuery must be created via NewGetRestaurantMenuQuery constructor",
)

// GetRestaurantMenuQuery reads a restaurant's categories and items and flags
// each item with whether it can be ordered at the moment the query runs.
type GetRestaurantMenuQuery struct {
	restaurantID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetRestaurantMenuQuery(restaurantID kernel.UUID) (GetRestaurantMenuQuery, error) {
	if err := restaurantID.Validate(); err != nil {
		return GetRestaurantMenuQuery{}, err
	}
	return GetRestaurantMenuQuery{restaurantID: restaurantID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetRestaurantMenuQuery) RestaurantID() kernel.UUID { return q.restaurantID }

func (q GetRestaurantMenuQuery) Validate() error {
	return q.guard.Validate(ErrGetRestaurantMenuQueryIsNotConstructed)
}

type MenuItemView struct {
	ID          kernel.UUID
	Name        string
	Price       decimal.Decimal
	IsAvailable bool
	// Orderable is IsAvailable combined with the category window at query time.
	Orderable bool
}

type MenuCategoryView struct {
	ID     kernel.UUID
	Name   string
	Window kernel.TimeWindow
	Items  []MenuItemView
}

type GetRestaurantMenuQueryResponse struct {
	RestaurantID kernel.UUID
	Categories   []MenuCategoryView
}
