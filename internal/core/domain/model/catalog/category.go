package catalog

import (
	"errors"
	"strings"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/guard"
)

var ErrCategoryIsNotConstructed = errors.New("Category must be created via NewCategory constructor")

// Category groups a restaurant's menu items under a daily ordering window.
// Names are unique per restaurant after NormalizeName.
type Category struct {
	id           kernel.UUID
	restaurantID kernel.UUID
	name         string
	window       kernel.TimeWindow
	guard        guard.ConstructorGuard
}

func NewCategory(id, restaurantID kernel.UUID, name string, window kernel.TimeWindow) (*Category, error) {
	name = NormalizeName(name)

	var nameErr error
	if name == "" {
		nameErr = errs.NewValueIsRequiredError("category name")
	}
	if err := errors.Join(id.Validate(), restaurantID.Validate(), nameErr, window.Validate()); err != nil {
		return nil, err
	}

	return &Category{
		id:           id,
		restaurantID: restaurantID,
		name:         name,
		window:       window,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

// NormalizeName trims and lower-cases a category name.
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func (c *Category) Validate() error {
	if c == nil {
		return ErrCategoryIsNotConstructed
	}
	return c.guard.Validate(ErrCategoryIsNotConstructed)
}

func (c *Category) ID() kernel.UUID           { return c.id }
func (c *Category) RestaurantID() kernel.UUID { return c.restaurantID }
func (c *Category) Name() string              { return c.name }
func (c *Category) Window() kernel.TimeWindow { return c.window }

// ChangeWindow replaces the ordering window.
func (c *Category) ChangeWindow(window kernel.TimeWindow) error {
	if err := window.Validate(); err != nil {
		return err
	}
	c.window = window
	return nil
}

// IsOpenAt reports whether the window contains the given wall-clock time.
func (c *Category) IsOpenAt(t kernel.TimeOfDay) bool {
	return c.window.Contains(t)
}
