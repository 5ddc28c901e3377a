package commands

import (
	"context"
	"errors"

	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/domain/services"
	"fooddelivery/internal/core/ports"
	"fooddelivery/internal/pkg/errs"
)

// dispatchCandidates bounds how many available partners are considered.
const dispatchCandidates = 20

var (
	ErrNoOrderAwaitingDispatch = errors.New("no order awaiting dispatch")
	ErrNoAvailablePartner      = errors.New("no available delivery partner")
)

// DispatchPendingOrderCommandHandler picks work for the dispatch job and
// hands it to the same assignment path as AssignPartnerCommandHandler.
//
// Example:
//
//	err := handler.Handle(ctx, NewDispatchPendingOrderCommand())
//	switch {
//	case errors.Is(err, ErrNoOrderAwaitingDispatch), errors.Is(err, ErrNoAvailablePartner):
//	    // nothing to do this tick
//	case err != nil:
//	    logger.Error("dispatch failed", "error", err)
//	}
type DispatchPendingOrderCommandHandler struct {
	uowFactory DeliveryUoWFactory
	assigner   AssignPartnerCommandHandler
	dispatcher services.OrderDispatcher
}

func NewDispatchPendingOrderCommandHandler(
	uowFactory DeliveryUoWFactory,
	clock ports.Clock,
) DispatchPendingOrderCommandHandler {
	return DispatchPendingOrderCommandHandler{
		uowFactory: uowFactory,
		assigner:   NewAssignPartnerCommandHandler(uowFactory, clock),
		dispatcher: services.NewOrderDispatcher(),
	}
}

func (h DispatchPendingOrderCommandHandler) Handle(
	ctx context.Context,
	command DispatchPendingOrderCommand,
) (*order.Order, error) {
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

	o, err := uow.OrderRepository().GetFirstAwaitingDispatch(ctx)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil, ErrNoOrderAwaitingDispatch
	}
	if err != nil {
		return nil, err
	}

	candidates, err := uow.PartnerRepository().GetAllAvailable(ctx, dispatchCandidates)
	if err != nil {
		return nil, err
	}

	picked, err := h.dispatcher.PickPartner(candidates)
	if errors.Is(err, services.ErrPartnerNotFound) {
		return nil, ErrNoAvailablePartner
	}
	if err != nil {
		return nil, err
	}

	if err = h.assigner.assign(ctx, uow, o, picked.ID()); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return o, nil
}
