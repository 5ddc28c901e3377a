package commands

import (
	"errors"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/guard"
)

var ErrAssignPartnerCommandIsNotConstructed = errors.New(
	"AssignPartnerCommand must be created via NewAssignPartnerCommand constructor",
)

// AssignPartnerCommand binds a specific delivery partner to an order.
//
// Example:
//
//	cmd, err := NewAssignPartnerCommand(orderID, partnerID)
//	if err != nil {
//	    return err
//	}
//	o, err := handler.Handle(ctx, cmd)
//	if errors.Is(err, errs.ErrPartnerUnavailable) {
//	    // partner is on another delivery; the order is unchanged
//	}
type AssignPartnerCommand struct {
	orderID   kernel.UUID
	partnerID kernel.UUID

	guard guard.ConstructorGuard
}

func NewAssignPartnerCommand(orderID, partnerID kernel.UUID) (AssignPartnerCommand, error) {
	if err := errors.Join(orderID.Validate(), partnerID.Validate()); err != nil {
		return AssignPartnerCommand{}, err
	}
	return AssignPartnerCommand{
		orderID:   orderID,
		partnerID: partnerID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c AssignPartnerCommand) Validate() error {
	return c.guard.Validate(ErrAssignPartnerCommandIsNotConstructed)
}

func (c AssignPartnerCommand) OrderID() kernel.UUID   { return c.orderID }
func (c AssignPartnerCommand) PartnerID() kernel.UUID { return c.partnerID }
