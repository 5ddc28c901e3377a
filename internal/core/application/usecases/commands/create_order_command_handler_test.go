package commands_test

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"fooddelivery/internal/core/application/usecases/commands"
	"fooddelivery/internal/core/domain/model/catalog"
	"fooddelivery/internal/core/domain/model/identity"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/domain/services"
	"fooddelivery/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type createOrderFixture struct {
	user       *identity.User
	restaurant *identity.Restaurant
	category   *catalog.Category
	idli       *catalog.MenuItem
	dosa       *catalog.MenuItem

	uow         *MockUoW
	factory     *MockOrderUoWFactory
	orders      *MockOrderRepository
	users       *MockUserRepository
	restaurants *MockRestaurantRepository
	categories  *MockCategoryRepository
	items       *MockMenuItemRepository
	attachments *MockAttachmentStore
	idempotency *MockIdempotencyStore
	logs        *bytes.Buffer
}

func newCreateOrderFixture(t *testing.T) *createOrderFixture {
	t.Helper()
	f := &createOrderFixture{
		user:        newUser(t),
		restaurant:  newRestaurant(t),
		uow:         new(MockUoW),
		factory:     new(MockOrderUoWFactory),
		orders:      new(MockOrderRepository),
		users:       new(MockUserRepository),
		restaurants: new(MockRestaurantRepository),
		categories:  new(MockCategoryRepository),
		items:       new(MockMenuItemRepository),
		attachments: new(MockAttachmentStore),
		idempotency: new(MockIdempotencyStore),
		logs:        new(bytes.Buffer),
	}
	f.category = newCategory(t, f.restaurant.ID(), "07:00", "11:00")
	f.idli = newMenuItem(t, f.category, "idli", "30")
	f.dosa = newMenuItem(t, f.category, "masala dosa", "55.50")
	return f
}

func (f *createOrderFixture) handler(at time.Time) commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(
		f.factory, f.attachments, f.idempotency, services.NewAvailabilityResolver(time.UTC), clockAt(at),
		slog.New(slog.NewTextHandler(f.logs, nil)),
	)
}

// placedOrder is an order the fixture user already placed under key.
func (f *createOrderFixture) placedOrder(t *testing.T, key string, quantity int) *order.Order {
	t.Helper()
	line, err := order.NewLine(kernel.NewUUID(), f.idli.ID(), quantity, f.idli.Price())
	require.NoError(t, err)
	o, err := order.NewOrder(kernel.NewUUID(), f.user.ID(), f.restaurant.ID(), []order.Line{line}, "", morning)
	require.NoError(t, err)
	require.NoError(t, o.AttachIdempotencyKey(key))
	o.ClearDomainEvents()
	return o
}

// expectPricing wires the read side of one transaction up to the point of
// pricing the lines.
func (f *createOrderFixture) expectPricing() {
	ctx := mock.Anything
	f.factory.On("Create").Return(f.uow).Once()
	f.uow.On("Begin", ctx).Return(nil).Once()
	f.uow.On("UserRepository").Return(f.users).Once()
	f.users.On("Get", ctx, f.user.ID()).Return(f.user, nil).Once()
	f.uow.On("RestaurantRepository").Return(f.restaurants).Once()
	f.restaurants.On("Get", ctx, f.restaurant.ID()).Return(f.restaurant, nil).Once()
	f.uow.On("MenuItemRepository").Return(f.items).Once()
	f.uow.On("CategoryRepository").Return(f.categories).Once()
	f.uow.On("Rollback", ctx).Return(nil).Once()
}

func (f *createOrderFixture) assertAll(t *testing.T) {
	t.Helper()
	f.factory.AssertExpectations(t)
	f.uow.AssertExpectations(t)
	f.orders.AssertExpectations(t)
	f.users.AssertExpectations(t)
	f.restaurants.AssertExpectations(t)
	f.categories.AssertExpectations(t)
	f.items.AssertExpectations(t)
	f.attachments.AssertExpectations(t)
	f.idempotency.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle(t *testing.T) {
	t.Run("places the order with snapshot prices", func(t *testing.T) {
		ctx := t.Context()
		f := newCreateOrderFixture(t)
		f.expectPricing()
		f.items.On("GetForUpdate", ctx, f.idli.ID()).Return(f.idli, nil).Once()
		f.items.On("GetForUpdate", ctx, f.dosa.ID()).Return(f.dosa, nil).Once()
		// both items share one category, which is read once
		f.categories.On("Get", ctx, f.category.ID()).Return(f.category, nil).Once()
		f.uow.On("OrderRepository").Return(f.orders).Once()
		f.orders.On("Add", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once()
		f.uow.On("Commit", ctx).Return(nil).Once()

		cmd, err := commands.NewCreateOrderCommand(f.user.ID(), f.restaurant.ID(), []commands.LineRequest{
			{MenuItemID: f.idli.ID(), Quantity: 3},
			{MenuItemID: f.dosa.ID(), Quantity: 2},
		}, nil, "")
		require.NoError(t, err)

		o, err := f.handler(morning).Handle(ctx, cmd)
		require.NoError(t, err)

		assert.Equal(t, order.Placed, o.Status())
		assert.Equal(t, f.user.ID(), o.UserID())
		assert.Equal(t, f.restaurant.ID(), o.RestaurantID())
		assert.True(t, decimal.RequireFromString("201").Equal(o.TotalAmount()), o.TotalAmount().String())
		require.Len(t, o.Lines(), 2)
		assert.True(t, decimal.NewFromInt(30).Equal(o.Lines()[0].UnitPrice()))
		assert.Equal(t, morning, o.CreatedAt())
		assert.Nil(t, o.Partner())
		f.assertAll(t)
	})

	t.Run("item outside its window aborts the order", func(t *testing.T) {
		ctx := t.Context()
		f := newCreateOrderFixture(t)
		f.expectPricing()
		f.items.On("GetForUpdate", ctx, f.idli.ID()).Return(f.idli, nil).Once()
		f.categories.On("Get", ctx, f.category.ID()).Return(f.category, nil).Once()

		cmd, err := commands.NewCreateOrderCommand(f.user.ID(), f.restaurant.ID(),
			[]commands.LineRequest{{MenuItemID: f.idli.ID(), Quantity: 1}}, nil, "")
		require.NoError(t, err)

		noon := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
		o, err := f.handler(noon).Handle(ctx, cmd)

		assert.Nil(t, o)
		assert.ErrorIs(t, err, errs.ErrItemUnavailable)
		f.uow.AssertNotCalled(t, "Commit", mock.Anything)
		f.assertAll(t)
	})

	t.Run("switched off item aborts the order", func(t *testing.T) {
		ctx := t.Context()
		f := newCreateOrderFixture(t)
		f.dosa.SetAvailable(false)
		f.expectPricing()
		f.items.On("GetForUpdate", ctx, f.idli.ID()).Return(f.idli, nil).Once()
		f.items.On("GetForUpdate", ctx, f.dosa.ID()).Return(f.dosa, nil).Once()
		f.categories.On("Get", ctx, f.category.ID()).Return(f.category, nil).Once()

		cmd, err := commands.NewCreateOrderCommand(f.user.ID(), f.restaurant.ID(), []commands.LineRequest{
			{MenuItemID: f.idli.ID(), Quantity: 1},
			{MenuItemID: f.dosa.ID(), Quantity: 1},
		}, nil, "")
		require.NoError(t, err)

		_, err = f.handler(morning).Handle(ctx, cmd)

		assert.ErrorIs(t, err, errs.ErrItemUnavailable)
		f.orders.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
		f.assertAll(t)
	})

	t.Run("item of another restaurant is rejected", func(t *testing.T) {
		ctx := t.Context()
		f := newCreateOrderFixture(t)
		foreign := newMenuItem(t, newCategory(t, kernel.NewUUID(), "00:00", "23:59"), "vada", "20")
		f.expectPricing()
		f.items.On("GetForUpdate", ctx, foreign.ID()).Return(foreign, nil).Once()

		cmd, err := commands.NewCreateOrderCommand(f.user.ID(), f.restaurant.ID(),
			[]commands.LineRequest{{MenuItemID: foreign.ID(), Quantity: 1}}, nil, "")
		require.NoError(t, err)

		_, err = f.handler(morning).Handle(ctx, cmd)

		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
		f.categories.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
		f.assertAll(t)
	})

	t.Run("unknown user", func(t *testing.T) {
		ctx := t.Context()
		f := newCreateOrderFixture(t)
		missing := errs.NewObjectNotFoundError("user", f.user.ID())
		f.factory.On("Create").Return(f.uow).Once()
		f.uow.On("Begin", ctx).Return(nil).Once()
		f.uow.On("UserRepository").Return(f.users).Once()
		f.users.On("Get", ctx, f.user.ID()).Return(nil, missing).Once()
		f.uow.On("Rollback", ctx).Return(nil).Once()

		cmd, err := commands.NewCreateOrderCommand(f.user.ID(), f.restaurant.ID(),
			[]commands.LineRequest{{MenuItemID: f.idli.ID(), Quantity: 1}}, nil, "")
		require.NoError(t, err)

		_, err = f.handler(morning).Handle(ctx, cmd)

		assert.ErrorIs(t, err, errs.ErrObjectNotFound)
		f.assertAll(t)
	})

	t.Run("payment proof is stored and referenced", func(t *testing.T) {
		ctx := t.Context()
		f := newCreateOrderFixture(t)
		content := strings.NewReader("png bytes")
		f.attachments.On("Store", ctx, "upi.png", content).Return("2024/03/upi-1.png", nil).Once()
		f.expectPricing()
		f.items.On("GetForUpdate", ctx, f.idli.ID()).Return(f.idli, nil).Once()
		f.categories.On("Get", ctx, f.category.ID()).Return(f.category, nil).Once()
		f.uow.On("OrderRepository").Return(f.orders).Once()
		f.orders.On("Add", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once()
		f.uow.On("Commit", ctx).Return(nil).Once()

		cmd, err := commands.NewCreateOrderCommand(f.user.ID(), f.restaurant.ID(),
			[]commands.LineRequest{{MenuItemID: f.idli.ID(), Quantity: 1}},
			&commands.PaymentProof{Filename: "upi.png", Content: content}, "")
		require.NoError(t, err)

		o, err := f.handler(morning).Handle(ctx, cmd)
		require.NoError(t, err)

		assert.Equal(t, "2024/03/upi-1.png", o.PaymentProof())
		f.assertAll(t)
	})

	t.Run("payment proof is discarded when the order fails", func(t *testing.T) {
		ctx := t.Context()
		f := newCreateOrderFixture(t)
		content := strings.NewReader("png bytes")
		f.attachments.On("Store", ctx, "upi.png", content).Return("upi-1.png", nil).Once()
		f.attachments.On("Delete", ctx, "upi-1.png").Return(nil).Once()
		f.expectPricing()
		f.items.On("GetForUpdate", ctx, f.idli.ID()).Return(f.idli, nil).Once()
		f.categories.On("Get", ctx, f.category.ID()).Return(f.category, nil).Once()
		f.uow.On("OrderRepository").Return(f.orders).Once()
		f.orders.On("Add", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once()
		f.uow.On("Commit", ctx).Return(errors.New("connection reset")).Once()

		cmd, err := commands.NewCreateOrderCommand(f.user.ID(), f.restaurant.ID(),
			[]commands.LineRequest{{MenuItemID: f.idli.ID(), Quantity: 1}},
			&commands.PaymentProof{Filename: "upi.png", Content: content}, "")
		require.NoError(t, err)

		o, err := f.handler(morning).Handle(ctx, cmd)

		assert.Nil(t, o)
		assert.EqualError(t, err, "connection reset")
		f.assertAll(t)
	})

	t.Run("payment proof storage failure", func(t *testing.T) {
		ctx := t.Context()
		f := newCreateOrderFixture(t)
		content := strings.NewReader("png bytes")
		f.attachments.On("Store", ctx, "upi.png", content).Return("", errors.New("disk full")).Once()

		cmd, err := commands.NewCreateOrderCommand(f.user.ID(), f.restaurant.ID(),
			[]commands.LineRequest{{MenuItemID: f.idli.ID(), Quantity: 1}},
			&commands.PaymentProof{Filename: "upi.png", Content: content}, "")
		require.NoError(t, err)

		_, err = f.handler(morning).Handle(ctx, cmd)

		assert.EqualError(t, err, "disk full")
		f.factory.AssertNotCalled(t, "Create")
		f.assertAll(t)
	})

	t.Run("repeated key returns the remembered order", func(t *testing.T) {
		ctx := t.Context()
		f := newCreateOrderFixture(t)
		existing := f.placedOrder(t, "key-1", 1)
		f.factory.On("Create").Return(f.uow).Once()
		f.uow.On("OrderRepository").Return(f.orders).Once()
		f.idempotency.On("Lookup", ctx, f.user.ID(), "key-1").Return(existing.ID(), true, nil).Once()
		f.orders.On("Get", ctx, existing.ID()).Return(existing, nil).Once()

		cmd, err := commands.NewCreateOrderCommand(f.user.ID(), f.restaurant.ID(),
			[]commands.LineRequest{{MenuItemID: f.idli.ID(), Quantity: 1}}, nil, "key-1")
		require.NoError(t, err)

		o, err := f.handler(morning).Handle(ctx, cmd)
		require.NoError(t, err)

		assert.Same(t, existing, o)
		f.uow.AssertNotCalled(t, "Begin", mock.Anything)
		f.assertAll(t)
	})

	t.Run("repeated key falls back to the database", func(t *testing.T) {
		ctx := t.Context()
		f := newCreateOrderFixture(t)
		existing := f.placedOrder(t, "key-1", 1)
		f.factory.On("Create").Return(f.uow).Once()
		f.uow.On("OrderRepository").Return(f.orders).Once()
		f.idempotency.On("Lookup", ctx, f.user.ID(), "key-1").
			Return(kernel.UUID{}, false, errors.New("redis down")).Once()
		f.orders.On("GetByIdempotencyKey", ctx, f.user.ID(), "key-1").Return(existing, nil).Once()

		cmd, err := commands.NewCreateOrderCommand(f.user.ID(), f.restaurant.ID(),
			[]commands.LineRequest{{MenuItemID: f.idli.ID(), Quantity: 1}}, nil, "key-1")
		require.NoError(t, err)

		o, err := f.handler(morning).Handle(ctx, cmd)
		require.NoError(t, err)

		assert.Same(t, existing, o)
		assert.Contains(t, f.logs.String(), "idempotency lookup failed")
		f.assertAll(t)
	})

	t.Run("remembered order of another customer is ignored", func(t *testing.T) {
		ctx := t.Context()
		f := newCreateOrderFixture(t)
		foreign := newPlacedOrder(t)
		own := f.placedOrder(t, "key-1", 1)
		f.factory.On("Create").Return(f.uow).Once()
		f.uow.On("OrderRepository").Return(f.orders).Once()
		f.idempotency.On("Lookup", ctx, f.user.ID(), "key-1").Return(foreign.ID(), true, nil).Once()
		f.orders.On("Get", ctx, foreign.ID()).Return(foreign, nil).Once()
		f.orders.On("GetByIdempotencyKey", ctx, f.user.ID(), "key-1").Return(own, nil).Once()

		cmd, err := commands.NewCreateOrderCommand(f.user.ID(), f.restaurant.ID(),
			[]commands.LineRequest{{MenuItemID: f.idli.ID(), Quantity: 1}}, nil, "key-1")
		require.NoError(t, err)

		o, err := f.handler(morning).Handle(ctx, cmd)
		require.NoError(t, err)

		assert.Same(t, own, o)
		f.assertAll(t)
	})

	t.Run("repeated key with a different payload is a conflict", func(t *testing.T) {
		otherRestaurant := newRestaurant(t)
		tests := []struct {
			name  string
			cmd   func(f *createOrderFixture) (commands.CreateOrderCommand, error)
			cause string
		}{
			{
				name: "restaurant",
				cmd: func(f *createOrderFixture) (commands.CreateOrderCommand, error) {
					return commands.NewCreateOrderCommand(f.user.ID(), otherRestaurant.ID(),
						[]commands.LineRequest{{MenuItemID: f.idli.ID(), Quantity: 2}}, nil, "key-1")
				},
				cause: "restaurant",
			},
			{
				name: "quantity",
				cmd: func(f *createOrderFixture) (commands.CreateOrderCommand, error) {
					return commands.NewCreateOrderCommand(f.user.ID(), f.restaurant.ID(),
						[]commands.LineRequest{{MenuItemID: f.idli.ID(), Quantity: 3}}, nil, "key-1")
				},
				cause: "different lines",
			},
			{
				name: "menu item",
				cmd: func(f *createOrderFixture) (commands.CreateOrderCommand, error) {
					return commands.NewCreateOrderCommand(f.user.ID(), f.restaurant.ID(),
						[]commands.LineRequest{{MenuItemID: f.dosa.ID(), Quantity: 2}}, nil, "key-1")
				},
				cause: "different lines",
			},
			{
				name: "extra line",
				cmd: func(f *createOrderFixture) (commands.CreateOrderCommand, error) {
					return commands.NewCreateOrderCommand(f.user.ID(), f.restaurant.ID(), []commands.LineRequest{
						{MenuItemID: f.idli.ID(), Quantity: 2},
						{MenuItemID: f.dosa.ID(), Quantity: 1},
					}, nil, "key-1")
				},
				cause: "different lines",
			},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				ctx := t.Context()
				f := newCreateOrderFixture(t)
				existing := f.placedOrder(t, "key-1", 2)
				f.factory.On("Create").Return(f.uow).Once()
				f.uow.On("OrderRepository").Return(f.orders).Once()
				f.idempotency.On("Lookup", ctx, f.user.ID(), "key-1").Return(existing.ID(), true, nil).Once()
				f.orders.On("Get", ctx, existing.ID()).Return(existing, nil).Once()

				cmd, err := tt.cmd(f)
				require.NoError(t, err)

				o, err := f.handler(morning).Handle(ctx, cmd)

				require.ErrorIs(t, err, errs.ErrConflict)
				assert.Equal(t, errs.KindConflict, errs.KindOf(err))
				assert.Contains(t, err.Error(), "idempotency key")
				assert.Contains(t, err.Error(), tt.cause)
				assert.Nil(t, o)
				f.uow.AssertNotCalled(t, "Begin", mock.Anything)
				f.assertAll(t)
			})
		}
	})

	t.Run("same lines in another order replay the order", func(t *testing.T) {
		ctx := t.Context()
		f := newCreateOrderFixture(t)
		idli, err := order.NewLine(kernel.NewUUID(), f.idli.ID(), 2, f.idli.Price())
		require.NoError(t, err)
		dosa, err := order.NewLine(kernel.NewUUID(), f.dosa.ID(), 1, f.dosa.Price())
		require.NoError(t, err)
		existing, err := order.NewOrder(kernel.NewUUID(), f.user.ID(), f.restaurant.ID(),
			[]order.Line{idli, dosa}, "", morning)
		require.NoError(t, err)
		f.factory.On("Create").Return(f.uow).Once()
		f.uow.On("OrderRepository").Return(f.orders).Once()
		f.idempotency.On("Lookup", ctx, f.user.ID(), "key-1").Return(existing.ID(), true, nil).Once()
		f.orders.On("Get", ctx, existing.ID()).Return(existing, nil).Once()

		cmd, err := commands.NewCreateOrderCommand(f.user.ID(), f.restaurant.ID(), []commands.LineRequest{
			{MenuItemID: f.dosa.ID(), Quantity: 1},
			{MenuItemID: f.idli.ID(), Quantity: 2},
		}, nil, "key-1")
		require.NoError(t, err)

		o, err := f.handler(morning).Handle(ctx, cmd)
		require.NoError(t, err)
		assert.Same(t, existing, o)
		f.assertAll(t)
	})

	t.Run("new key is stored with the order", func(t *testing.T) {
		ctx := t.Context()
		f := newCreateOrderFixture(t)
		f.factory.On("Create").Return(f.uow).Once()
		f.uow.On("OrderRepository").Return(f.orders).Once()
		f.idempotency.On("Lookup", ctx, f.user.ID(), "key-2").Return(kernel.UUID{}, false, nil).Once()
		f.orders.On("GetByIdempotencyKey", ctx, f.user.ID(), "key-2").
			Return(nil, errs.NewObjectNotFoundError("idempotency key", "key-2")).Once()

		f.expectPricing()
		f.items.On("GetForUpdate", ctx, f.idli.ID()).Return(f.idli, nil).Once()
		f.categories.On("Get", ctx, f.category.ID()).Return(f.category, nil).Once()
		f.uow.On("OrderRepository").Return(f.orders).Once()
		f.orders.On("Add", ctx, mock.MatchedBy(func(o *order.Order) bool {
			return o.IdempotencyKey() == "key-2"
		})).Return(nil).Once()
		f.uow.On("Commit", ctx).Return(nil).Once()
		f.idempotency.On("Remember", ctx, f.user.ID(), "key-2", mock.AnythingOfType("kernel.UUID")).
			Return(nil).Once()

		cmd, err := commands.NewCreateOrderCommand(f.user.ID(), f.restaurant.ID(),
			[]commands.LineRequest{{MenuItemID: f.idli.ID(), Quantity: 1}}, nil, "key-2")
		require.NoError(t, err)

		o, err := f.handler(morning).Handle(ctx, cmd)
		require.NoError(t, err)

		assert.Equal(t, "key-2", o.IdempotencyKey())
		assert.Empty(t, f.logs.String())
		f.assertAll(t)
	})

	t.Run("failing to remember the key is logged", func(t *testing.T) {
		ctx := t.Context()
		f := newCreateOrderFixture(t)
		f.factory.On("Create").Return(f.uow).Once()
		f.uow.On("OrderRepository").Return(f.orders).Once()
		f.idempotency.On("Lookup", ctx, f.user.ID(), "key-2").Return(kernel.UUID{}, false, nil).Once()
		f.orders.On("GetByIdempotencyKey", ctx, f.user.ID(), "key-2").
			Return(nil, errs.NewObjectNotFoundError("idempotency key", "key-2")).Once()

		f.expectPricing()
		f.items.On("GetForUpdate", ctx, f.idli.ID()).Return(f.idli, nil).Once()
		f.categories.On("Get", ctx, f.category.ID()).Return(f.category, nil).Once()
		f.uow.On("OrderRepository").Return(f.orders).Once()
		f.orders.On("Add", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once()
		f.uow.On("Commit", ctx).Return(nil).Once()
		f.idempotency.On("Remember", ctx, f.user.ID(), "key-2", mock.AnythingOfType("kernel.UUID")).
			Return(errors.New("redis down")).Once()

		cmd, err := commands.NewCreateOrderCommand(f.user.ID(), f.restaurant.ID(),
			[]commands.LineRequest{{MenuItemID: f.idli.ID(), Quantity: 1}}, nil, "key-2")
		require.NoError(t, err)

		o, err := f.handler(morning).Handle(ctx, cmd)
		require.NoError(t, err)

		logs := f.logs.String()
		assert.Contains(t, logs, "level=WARN")
		assert.Contains(t, logs, "failed to remember idempotency key")
		assert.Contains(t, logs, "redis down")
		assert.Contains(t, logs, o.ID().String())
		f.assertAll(t)
	})

	t.Run("not constructed command", func(t *testing.T) {
		f := newCreateOrderFixture(t)
		_, err := f.handler(morning).Handle(t.Context(), commands.CreateOrderCommand{})
		assert.ErrorIs(t, err, commands.ErrCreateOrderCommandIsNotConstructed)
		f.assertAll(t)
	})
}
