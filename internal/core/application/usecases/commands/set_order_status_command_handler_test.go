package commands_test

import (
	"testing"
	"time"

	"fooddelivery/internal/core/application/usecases/commands"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/domain/model/partner"
	"fooddelivery/internal/core/domain/services"
	"fooddelivery/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNewSetOrderStatusCommand(t *testing.T) {
	_, err := commands.NewSetOrderStatusCommand(kernel.UUID{}, order.Preparing)
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)

	_, err = commands.NewSetOrderStatusCommand(kernel.NewUUID(), order.Unknown)
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)

	cmd, err := commands.NewSetOrderStatusCommand(kernel.NewUUID(), order.Cancelled)
	require.NoError(t, err)
	assert.Equal(t, order.Cancelled, cmd.Status())
}

func TestSetOrderStatusCommandHandler_Handle(t *testing.T) {
	later := morning.Add(20 * time.Minute)

	setup := func() (*MockUoW, *MockDeliveryUoWFactory, *MockOrderRepository, *MockPartnerRepository) {
		uow := new(MockUoW)
		orders := new(MockOrderRepository)
		partners := new(MockPartnerRepository)
		factory := new(MockDeliveryUoWFactory)
		factory.On("Create").Return(uow).Once()
		uow.On("Begin", mock.Anything).Return(nil).Once()
		uow.On("OrderRepository").Return(orders).Once()
		uow.On("PartnerRepository").Return(partners).Once()
		uow.On("Rollback", mock.Anything).Return(nil).Once()
		return uow, factory, orders, partners
	}

	t.Run("moves a placed order to preparing", func(t *testing.T) {
		ctx := t.Context()
		uow, factory, orders, partners := setup()
		o := newPlacedOrder(t)
		mock.InOrder(
			orders.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once(),
			orders.On("Update", ctx, o).Return(nil).Once(),
			uow.On("Commit", ctx).Return(nil).Once(),
		)

		cmd, err := commands.NewSetOrderStatusCommand(o.ID(), order.Preparing)
		require.NoError(t, err)

		got, err := commands.NewSetOrderStatusCommandHandler(factory, clockAt(later)).Handle(ctx, cmd)
		require.NoError(t, err)

		assert.Equal(t, order.Preparing, got.Status())
		require.NotNil(t, got.Timestamps().PreparingAt)
		assert.Equal(t, later, *got.Timestamps().PreparingAt)
		assert.Len(t, got.DomainEvents(), 1)
		uow.AssertExpectations(t)
		orders.AssertExpectations(t)
		partners.AssertExpectations(t)
	})

	t.Run("delivering releases the bound partner", func(t *testing.T) {
		ctx := t.Context()
		uow, factory, orders, partners := setup()
		o := newPlacedOrder(t)
		p := newPartner(t, "ravi")
		require.NoError(t, services.NewOrderDispatcher().Assign(o, p, morning))
		require.False(t, p.IsAvailable())

		mock.InOrder(
			orders.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once(),
			partners.On("GetForUpdate", ctx, p.ID()).Return(p, nil).Once(),
			orders.On("Update", ctx, o).Return(nil).Once(),
			partners.On("SaveAvailability", ctx, mock.MatchedBy(func(saved *partner.Partner) bool {
				return saved.ID().IsEqual(p.ID()) && saved.IsAvailable()
			})).Return(nil).Once(),
			uow.On("Commit", ctx).Return(nil).Once(),
		)

		cmd, err := commands.NewSetOrderStatusCommand(o.ID(), order.Delivered)
		require.NoError(t, err)

		got, err := commands.NewSetOrderStatusCommandHandler(factory, clockAt(later)).Handle(ctx, cmd)
		require.NoError(t, err)

		assert.Equal(t, order.Delivered, got.Status())
		assert.True(t, p.IsAvailable())
		uow.AssertExpectations(t)
		orders.AssertExpectations(t)
		partners.AssertExpectations(t)
	})

	t.Run("delivering an unassigned order touches no partner", func(t *testing.T) {
		ctx := t.Context()
		uow, factory, orders, partners := setup()
		o := newPlacedOrder(t)
		require.NoError(t, o.SetStatus(order.Preparing, morning))
		require.NoError(t, o.SetStatus(order.OutForDelivery, morning))

		orders.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once()
		orders.On("Update", ctx, o).Return(nil).Once()
		uow.On("Commit", ctx).Return(nil).Once()

		cmd, err := commands.NewSetOrderStatusCommand(o.ID(), order.Delivered)
		require.NoError(t, err)

		got, err := commands.NewSetOrderStatusCommandHandler(factory, clockAt(later)).Handle(ctx, cmd)
		require.NoError(t, err)

		assert.Equal(t, order.Delivered, got.Status())
		partners.AssertNotCalled(t, "GetForUpdate", mock.Anything, mock.Anything)
		partners.AssertNotCalled(t, "SaveAvailability", mock.Anything, mock.Anything)
		uow.AssertExpectations(t)
		orders.AssertExpectations(t)
	})

	t.Run("terminal order rejects any change", func(t *testing.T) {
		ctx := t.Context()
		uow, factory, orders, _ := setup()
		o := newPlacedOrder(t)
		require.NoError(t, o.SetStatus(order.Cancelled, morning))

		orders.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once()

		cmd, err := commands.NewSetOrderStatusCommand(o.ID(), order.Preparing)
		require.NoError(t, err)

		got, err := commands.NewSetOrderStatusCommandHandler(factory, clockAt(later)).Handle(ctx, cmd)

		assert.Nil(t, got)
		assert.ErrorIs(t, err, errs.ErrInvalidTransition)
		orders.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
		uow.AssertNotCalled(t, "Commit", mock.Anything)
		uow.AssertExpectations(t)
	})

	t.Run("unknown order", func(t *testing.T) {
		ctx := t.Context()
		uow, factory, orders, _ := setup()
		id := kernel.NewUUID()
		orders.On("GetForUpdate", ctx, id).Return(nil, errs.NewObjectNotFoundError("order", id)).Once()

		cmd, err := commands.NewSetOrderStatusCommand(id, order.Preparing)
		require.NoError(t, err)

		_, err = commands.NewSetOrderStatusCommandHandler(factory, clockAt(later)).Handle(ctx, cmd)

		assert.ErrorIs(t, err, errs.ErrObjectNotFound)
		uow.AssertExpectations(t)
	})
}
