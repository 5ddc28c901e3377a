package commands

import (
	"context"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/domain/services"
	"fooddelivery/internal/core/ports"
)

// AssignPartnerCommandHandler binds a partner to an order. The order row is
// locked first and the partner row second; dispatch uses the same order so
// the two never deadlock. The partner flag is written as a compare-and-swap,
// so of two concurrent assignments of one partner only one commits.
type AssignPartnerCommandHandler struct {
	uowFactory DeliveryUoWFactory
	dispatcher services.OrderDispatcher
	clock      ports.Clock
}

func NewAssignPartnerCommandHandler(uowFactory DeliveryUoWFactory, clock ports.Clock) AssignPartnerCommandHandler {
	if clock == nil {
		clock = ports.SystemClock
	}
	return AssignPartnerCommandHandler{
		uowFactory: uowFactory,
		dispatcher: services.NewOrderDispatcher(),
		clock:      clock,
	}
}

func (h AssignPartnerCommandHandler) Handle(ctx context.Context, command AssignPartnerCommand) (*order.Order, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	o, err := uow.OrderRepository().GetForUpdate(ctx, command.OrderID())
	if err != nil {
		return nil, err
	}

	if err = h.assign(ctx, uow, o, command.PartnerID()); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return o, nil
}

// assign runs inside the caller's transaction with o already locked.
func (h AssignPartnerCommandHandler) assign(ctx context.Context, uow DeliveryUoW, o *order.Order, partnerID kernel.UUID) error {
	partnerRepo := uow.PartnerRepository()

	p, err := partnerRepo.GetForUpdate(ctx, partnerID)
	if err != nil {
		return err
	}

	if err = h.dispatcher.Assign(o, p, h.clock.Now()); err != nil {
		return err
	}

	if err = partnerRepo.SaveAvailability(ctx, p); err != nil {
		return err
	}

	return uow.OrderRepository().Update(ctx, o)
}
