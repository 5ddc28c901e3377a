package services

import (
	"fmt"
	"time"

	"fooddelivery/internal/core/domain/model/catalog"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"
)

// AvailabilityResolver decides whether a menu item can be ordered at an
// instant. Category windows are wall-clock times in the resolver's location.
type AvailabilityResolver struct {
	location *time.Location
}

// NewAvailabilityResolver uses UTC when location is nil.
func NewAvailabilityResolver(location *time.Location) AvailabilityResolver {
	if location == nil {
		location = time.UTC
	}
	return AvailabilityResolver{location: location}
}

func (r AvailabilityResolver) Location() *time.Location {
	if r.location == nil {
		return time.UTC
	}
	return r.location
}

// IsOrderable reports whether item is switched on and at falls inside the
// window of category, the item's own category.
func (r AvailabilityResolver) IsOrderable(item *catalog.MenuItem, category *catalog.Category, at time.Time) bool {
	return r.Check(item, category, at) == nil
}

// Check is IsOrderable with the reason attached. It returns an
// ItemUnavailableError for a closed item and a ValueIsInvalidError when
// category is not the item's category.
func (r AvailabilityResolver) Check(item *catalog.MenuItem, category *catalog.Category, at time.Time) error {
	if err := item.Validate(); err != nil {
		return err
	}
	if err := category.Validate(); err != nil {
		return err
	}
	if !category.ID().IsEqual(item.CategoryID()) {
		return errs.NewValueIsInvalidErrorWithCause(
			"category",
			fmt.Errorf("category %s does not own menu item %s", category.ID(), item.ID()),
		)
	}

	if !item.IsAvailable() {
		return errs.NewItemUnavailableError(item.ID(), "switched off")
	}

	now := kernel.TimeOfDayAt(at.In(r.Location()))
	if !category.IsOpenAt(now) {
		return errs.NewItemUnavailableError(
			item.ID(),
			fmt.Sprintf("%s is served %s, now %s", category.Name(), category.Window(), now),
		)
	}
	return nil
}
