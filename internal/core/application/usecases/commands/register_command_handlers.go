package commands

import (
	"context"

	"fooddelivery/internal/core/domain/model/identity"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/partner"
	"fooddelivery/internal/core/ports"
)

// RegisterUserCommandHandler stores a new customer. A duplicate email
// surfaces as *errs.ConflictError from the repository.
type RegisterUserCommandHandler struct {
	uowFactory IdentityUoWFactory
	clock      ports.Clock
}

func NewRegisterUserCommandHandler(uowFactory IdentityUoWFactory, clock ports.Clock) RegisterUserCommandHandler {
	if clock == nil {
		clock = ports.SystemClock
	}
	return RegisterUserCommandHandler{uowFactory: uowFactory, clock: clock}
}

func (h RegisterUserCommandHandler) Handle(ctx context.Context, command RegisterUserCommand) (*identity.User, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	u, err := identity.NewUser(kernel.NewUUID(), command.Contact(), h.clock.Now())
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.UserRepository().Add(ctx, u); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return u, nil
}

type RegisterRestaurantCommandHandler struct {
	uowFactory IdentityUoWFactory
	clock      ports.Clock
}

func NewRegisterRestaurantCommandHandler(
	uowFactory IdentityUoWFactory,
	clock ports.Clock,
) RegisterRestaurantCommandHandler {
	if clock == nil {
		clock = ports.SystemClock
	}
	return RegisterRestaurantCommandHandler{uowFactory: uowFactory, clock: clock}
}

func (h RegisterRestaurantCommandHandler) Handle(
	ctx context.Context,
	command RegisterRestaurantCommand,
) (*identity.Restaurant, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	r, err := identity.NewRestaurant(kernel.NewUUID(), command.Contact(), h.clock.Now())
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.RestaurantRepository().Add(ctx, r); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return r, nil
}

// RegisterPartnerCommandHandler stores a new, available delivery partner.
// Email and mobile are both unique.
type RegisterPartnerCommandHandler struct {
	uowFactory PartnerUoWFactory
	clock      ports.Clock
}

func NewRegisterPartnerCommandHandler(uowFactory PartnerUoWFactory, clock ports.Clock) RegisterPartnerCommandHandler {
	if clock == nil {
		clock = ports.SystemClock
	}
	return RegisterPartnerCommandHandler{uowFactory: uowFactory, clock: clock}
}

func (h RegisterPartnerCommandHandler) Handle(
	ctx context.Context,
	command RegisterPartnerCommand,
) (*partner.Partner, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	p, err := partner.NewPartner(kernel.NewUUID(), command.Contact(), command.Vehicle(), h.clock.Now())
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.PartnerRepository().Add(ctx, p); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return p, nil
}
