package commands

import (
	"errors"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/guard"
)

var ErrRegisterRestaurantCommandIsNotConstructed = errors.New(
	"RegisterRestaurantCommand must be created via NewRegisterRestaurantCommand constructor",
)

type RegisterRestaurantCommand struct {
	contact kernel.Contact
	guard   guard.ConstructorGuard
}

func NewRegisterRestaurantCommand(name, email, mobile, address string) (RegisterRestaurantCommand, error) {
	contact, err := kernel.NewContact(name, email, mobile, address)
	if err != nil {
		return RegisterRestaurantCommand{}, err
	}
	return RegisterRestaurantCommand{contact: contact, guard: guard.NewConstructorGuard()}, nil
}

func (c RegisterRestaurantCommand) Validate() error {
	return c.guard.Validate(ErrRegisterRestaurantCommandIsNotConstructed)
}

func (c RegisterRestaurantCommand) Contact() kernel.Contact { return c.contact }
