package identity

import (
	"errors"
	"time"
	"unicode/utf8"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/guard"
)

const (
	MaxRestaurantNameLength = 50
	MinAddressLength        = 5
	MaxAddressLength        = 100
)

var ErrRestaurantIsNotConstructed = errors.New("Restaurant must be created via NewRestaurant constructor")

// Restaurant receives orders and owns a menu. Unlike customers, a restaurant
// must carry a street address.
type Restaurant struct {
	id        kernel.UUID
	contact   kernel.Contact
	createdAt time.Time
	guard     guard.ConstructorGuard
}

func NewRestaurant(id kernel.UUID, contact kernel.Contact, createdAt time.Time) (*Restaurant, error) {
	if err := errors.Join(id.Validate(), contact.Validate()); err != nil {
		return nil, err
	}
	if n := utf8.RuneCountInString(contact.Name()); n > MaxRestaurantNameLength {
		return nil, errs.NewValueIsOutOfRangeError("restaurant name length", n, 1, MaxRestaurantNameLength)
	}
	if n := utf8.RuneCountInString(contact.Address()); n < MinAddressLength || n > MaxAddressLength {
		return nil, errs.NewValueIsOutOfRangeErrorWithCause(
			"address length", n, MinAddressLength, MaxAddressLength,
			errors.New("restaurant address is required"),
		)
	}
	return &Restaurant{id: id, contact: contact, createdAt: createdAt, guard: guard.NewConstructorGuard()}, nil
}

func (r *Restaurant) Validate() error {
	if r == nil {
		return ErrRestaurantIsNotConstructed
	}
	return r.guard.Validate(ErrRestaurantIsNotConstructed)
}

func (r *Restaurant) ID() kernel.UUID         { return r.id }
func (r *Restaurant) Contact() kernel.Contact { return r.contact }
func (r *Restaurant) CreatedAt() time.Time    { return r.createdAt }
