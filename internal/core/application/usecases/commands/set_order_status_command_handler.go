package commands

import (
	"context"

	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/domain/model/partner"
	"fooddelivery/internal/core/domain/services"
	"fooddelivery/internal/core/ports"
)

// SetOrderStatusCommandHandler applies a status change. Delivering an order
// releases its delivery partner in the same transaction.
type SetOrderStatusCommandHandler struct {
	uowFactory DeliveryUoWFactory
	dispatcher services.OrderDispatcher
	clock      ports.Clock
}

func NewSetOrderStatusCommandHandler(uowFactory DeliveryUoWFactory, clock ports.Clock) SetOrderStatusCommandHandler {
	if clock == nil {
		clock = ports.SystemClock
	}
	return SetOrderStatusCommandHandler{
		uowFactory: uowFactory,
		dispatcher: services.NewOrderDispatcher(),
		clock:      clock,
	}
}

func (h SetOrderStatusCommandHandler) Handle(ctx context.Context, command SetOrderStatusCommand) (*order.Order, error) {
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

	orderRepo := uow.OrderRepository()
	partnerRepo := uow.PartnerRepository()

	o, err := orderRepo.GetForUpdate(ctx, command.OrderID())
	if err != nil {
		return nil, err
	}

	now := h.clock.Now()
	var released *partner.Partner

	if command.Status() == order.Delivered {
		if id := o.Partner(); id != nil {
			if released, err = partnerRepo.GetForUpdate(ctx, *id); err != nil {
				return nil, err
			}
		}
		err = h.dispatcher.Deliver(o, released, now)
	} else {
		err = o.SetStatus(command.Status(), now)
	}
	if err != nil {
		return nil, err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return nil, err
	}

	if released != nil {
		if err = partnerRepo.SaveAvailability(ctx, released); err != nil {
			return nil, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return o, nil
}
