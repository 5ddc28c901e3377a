package commands

import (
	"errors"
	"strings"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/guard"
)

var ErrRegisterPartnerCommandIsNotConstructed = errors.New(
	"RegisterPartnerCommand must be created via NewRegisterPartnerCommand constructor",
)

type RegisterPartnerCommand struct {
	contact kernel.Contact
	vehicle string
	guard   guard.ConstructorGuard
}

// NewRegisterPartnerCommand accepts an empty vehicle; the partner then gets
// the default vehicle.
func NewRegisterPartnerCommand(name, email, mobile, address, vehicle string) (RegisterPartnerCommand, error) {
	contact, err := kernel.NewContact(name, email, mobile, address)
	if err != nil {
		return RegisterPartnerCommand{}, err
	}
	return RegisterPartnerCommand{
		contact: contact,
		vehicle: strings.TrimSpace(vehicle),
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c RegisterPartnerCommand) Validate() error {
	return c.guard.Validate(ErrRegisterPartnerCommandIsNotConstructed)
}

func (c RegisterPartnerCommand) Contact() kernel.Contact { return c.contact }
func (c RegisterPartnerCommand) Vehicle() string         { return c.vehicle }
