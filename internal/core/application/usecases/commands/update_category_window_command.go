package commands

import (
	"errors"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/guard"
)

var ErrUpdateCategoryWindowCommandIsNotConstructed = errors.New(
	"UpdateCategoryWindowCommand must be created via NewUpdateCategoryWindowCommand constructor",
)

type UpdateCategoryWindowCommand struct {
	restaurantID kernel.UUID
	categoryID   kernel.UUID
	window       kernel.TimeWindow

	guard guard.ConstructorGuard
}

func NewUpdateCategoryWindowCommand(
	restaurantID, categoryID kernel.UUID,
	start, end string,
) (UpdateCategoryWindowCommand, error) {
	window, windowErr := kernel.ParseTimeWindow(start, end)
	if err := errors.Join(restaurantID.Validate(), categoryID.Validate(), windowErr); err != nil {
		return UpdateCategoryWindowCommand{}, err
	}
	return UpdateCategoryWindowCommand{
		restaurantID: restaurantID,
		categoryID:   categoryID,
		window:       window,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

func (c UpdateCategoryWindowCommand) Validate() error {
	return c.guard.Validate(ErrUpdateCategoryWindowCommandIsNotConstructed)
}

func (c UpdateCategoryWindowCommand) RestaurantID() kernel.UUID { return c.restaurantID }
func (c UpdateCategoryWindowCommand) CategoryID() kernel.UUID   { return c.categoryID }
func (c UpdateCategoryWindowCommand) Window() kernel.TimeWindow { return c.window }
