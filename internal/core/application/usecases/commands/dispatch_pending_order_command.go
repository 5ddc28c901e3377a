package commands

import (
	"errors"

	"fooddelivery/internal/pkg/guard"
)

var ErrDispatchPendingOrderCommandIsNotConstructed = errors.New(
	"DispatchPendingOrderCommand must be created via NewDispatchPendingOrderCommand constructor",
)

// DispatchPendingOrderCommand assigns the oldest PREPARING order that has no
// delivery partner to the longest registered available partner.
type DispatchPendingOrderCommand struct {
	guard guard.ConstructorGuard
}

func NewDispatchPendingOrderCommand() DispatchPendingOrderCommand {
	return DispatchPendingOrderCommand{
		guard: guard.NewConstructorGuard(),
	}
}

func (c DispatchPendingOrderCommand) Validate() error {
	return c.guard.Validate(ErrDispatchPendingOrderCommandIsNotConstructed)
}
