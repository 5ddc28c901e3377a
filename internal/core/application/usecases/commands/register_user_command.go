package commands

import (
	"errors"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/guard"
)

var ErrRegisterUserCommandIsNotConstructed = errors.New(
	"RegisterUserCommand must be created via NewRegisterUserCommand constructor",
)

type RegisterUserCommand struct {
	contact kernel.Contact
	guard   guard.ConstructorGuard
}

func NewRegisterUserCommand(name, email, mobile, address string) (RegisterUserCommand, error) {
	contact, err := kernel.NewContact(name, email, mobile, address)
	if err != nil {
		return RegisterUserCommand{}, err
	}
	return RegisterUserCommand{contact: contact, guard: guard.NewConstructorGuard()}, nil
}

func (c RegisterUserCommand) Validate() error {
	return c.guard.Validate(ErrRegisterUserCommandIsNotConstructed)
}

func (c RegisterUserCommand) Contact() kernel.Contact { return c.contact }
