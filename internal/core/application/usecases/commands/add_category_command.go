package commands

import (
	"errors"

	"fooddelivery/internal/core/domain/model/catalog"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/guard"
)

var ErrAddCategoryCommandIsNotConstructed = errors.New(
	"AddCategoryCommand must be created via NewAddCategoryCommand constructor",
)

// AddCategoryCommand creates a category with its ordering window. start and
// end are wall-clock times in HH:MM or HH:MM:SS form.
type AddCategoryCommand struct {
	restaurantID kernel.UUID
	name         string
	window       kernel.TimeWindow

	guard guard.ConstructorGuard
}

func NewAddCategoryCommand(restaurantID kernel.UUID, name, start, end string) (AddCategoryCommand, error) {
	name = catalog.NormalizeName(name)

	var nameErr error
	if name == "" {
		nameErr = errs.NewValueIsRequiredError("category name")
	}
	window, windowErr := kernel.ParseTimeWindow(start, end)

	if err := errors.Join(restaurantID.Validate(), nameErr, windowErr); err != nil {
		return AddCategoryCommand{}, err
	}

	return AddCategoryCommand{
		restaurantID: restaurantID,
		name:         name,
		window:       window,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

func (c AddCategoryCommand) Validate() error {
	return c.guard.Validate(ErrAddCategoryCommandIsNotConstructed)
}

func (c AddCategoryCommand) RestaurantID() kernel.UUID { return c.restaurantID }
func (c AddCategoryCommand) Name() string              { return c.name }
func (c AddCategoryCommand) Window() kernel.TimeWindow { return c.window }
