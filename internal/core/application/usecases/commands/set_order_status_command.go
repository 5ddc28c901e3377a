package commands

import (
	"errors"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/pkg/guard"
)

var ErrSetOrderStatusCommandIsNotConstructed = errors.New(
	"SetOrderStatusCommand must be created via NewSetOrderStatusCommand constructor",
)

// SetOrderStatusCommand moves an order along its lifecycle.
type SetOrderStatusCommand struct {
	orderID kernel.UUID
	status  order.Status

	guard guard.ConstructorGuard
}

func NewSetOrderStatusCommand(orderID kernel.UUID, status order.Status) (SetOrderStatusCommand, error) {
	if err := errors.Join(orderID.Validate(), status.Validate()); err != nil {
		return SetOrderStatusCommand{}, err
	}
	return SetOrderStatusCommand{
		orderID: orderID,
		status:  status,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c SetOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrSetOrderStatusCommandIsNotConstructed)
}

func (c SetOrderStatusCommand) OrderID() kernel.UUID { return c.orderID }
func (c SetOrderStatusCommand) Status() order.Status { return c.status }
