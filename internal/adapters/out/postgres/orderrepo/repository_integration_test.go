package orderrepo_test

import (
	"context"
	"testing"
	"time"

	"fooddelivery/internal/adapters/out/postgres/identityrepo"
	"fooddelivery/internal/adapters/out/postgres/orderrepo"
	"fooddelivery/internal/adapters/out/postgres/pgtest"
	"fooddelivery/internal/core/domain/model/catalog"
	"fooddelivery/internal/core/domain/model/identity"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"gorm.io/gorm"
)

type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate interface{}) {
	m.Called(id, aggregate)
}

type OrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	tracker   *MockAggregateTracker
	repo      *orderrepo.GormOrderRepository
	world     pgtest.World
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupSuite() {
	container, db, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.container = container
	suite.db = db
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	ctx := context.Background()
	suite.Require().NoError(pgtest.Truncate(suite.db))

	world, err := pgtest.Seed(ctx, suite.db)
	suite.Require().NoError(err)
	suite.world = world

	suite.tracker = &MockAggregateTracker{}
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything).Return()
	suite.repo = orderrepo.NewGormOrderRepository(suite.db, suite.tracker)
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

var placedAt = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

func (suite *OrderRepositoryIntegrationTestSuite) newOrder(items ...*catalog.MenuItem) *order.Order {
	lines := make([]order.Line, 0, len(items))
	for i, item := range items {
		line, err := order.NewLine(kernel.NewUUID(), item.ID(), i+1, item.Price())
		suite.Require().NoError(err)
		lines = append(lines, line)
	}
	o, err := order.NewOrder(kernel.NewUUID(), suite.world.User.ID(), suite.world.Restaurant.ID(), lines, "", placedAt)
	suite.Require().NoError(err)
	return o
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_PersistsOrderWithLines() {
	ctx := context.Background()
	o := suite.newOrder(suite.world.Idli, suite.world.Dosa)

	suite.Require().NoError(suite.repo.Add(ctx, o))
	suite.tracker.AssertCalled(suite.T(), "TrackAggregate", o.ID(), o)

	got, err := suite.repo.Get(ctx, o.ID())
	suite.Require().NoError(err)

	suite.Equal(order.Placed, got.Status())
	suite.True(decimal.RequireFromString("141").Equal(got.TotalAmount()), got.TotalAmount().String())
	suite.Require().Len(got.Lines(), 2)
	suite.Equal(suite.world.Idli.ID(), got.Lines()[0].MenuItemID())
	suite.Equal(1, got.Lines()[0].Quantity())
	suite.Equal(suite.world.Dosa.ID(), got.Lines()[1].MenuItemID())
	suite.True(decimal.RequireFromString("55.50").Equal(got.Lines()[1].UnitPrice()))
	suite.True(placedAt.Equal(got.CreatedAt()))
	suite.Nil(got.Partner())
	suite.Empty(got.DomainEvents())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_UnknownMenuItemViolatesForeignKey() {
	ctx := context.Background()
	line, err := order.NewLine(kernel.NewUUID(), kernel.NewUUID(), 1, decimal.NewFromInt(10))
	suite.Require().NoError(err)
	o, err := order.NewOrder(kernel.NewUUID(), suite.world.User.ID(), suite.world.Restaurant.ID(),
		[]order.Line{line}, "", placedAt)
	suite.Require().NoError(err)

	err = suite.db.Transaction(func(tx *gorm.DB) error {
		return orderrepo.NewGormOrderRepository(tx, suite.tracker).Add(ctx, o)
	})

	suite.Require().Error(err)
	var count int64
	suite.Require().NoError(suite.db.Model(&orderrepo.OrderDTO{}).Count(&count).Error)
	suite.Zero(count)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_DuplicateIdempotencyKeyIsConflict() {
	ctx := context.Background()
	first := suite.newOrder(suite.world.Idli)
	suite.Require().NoError(first.AttachIdempotencyKey("checkout-42"))
	suite.Require().NoError(suite.repo.Add(ctx, first))

	second := suite.newOrder(suite.world.Idli)
	suite.Require().NoError(second.AttachIdempotencyKey("checkout-42"))
	err := suite.repo.Add(ctx, second)

	suite.Require().ErrorIs(err, errs.ErrConflict)
	suite.Contains(err.Error(), "idempotency key")

	got, err := suite.repo.GetByIdempotencyKey(ctx, suite.world.User.ID(), "checkout-42")
	suite.Require().NoError(err)
	suite.Equal(first.ID(), got.ID())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestIdempotencyKeyIsScopedToTheUser() {
	ctx := context.Background()
	contact, err := kernel.NewContact("ravi", "ravi@example.com", "9000000009", "4 Brigade Road")
	suite.Require().NoError(err)
	ravi, err := identity.NewUser(kernel.NewUUID(), contact, placedAt)
	suite.Require().NoError(err)
	suite.Require().NoError(identityrepo.NewGormUserRepository(suite.db).Add(ctx, ravi))

	ashaOrder := suite.newOrder(suite.world.Idli)
	suite.Require().NoError(ashaOrder.AttachIdempotencyKey("checkout-1"))
	suite.Require().NoError(suite.repo.Add(ctx, ashaOrder))

	line, err := order.NewLine(kernel.NewUUID(), suite.world.Dosa.ID(), 2, suite.world.Dosa.Price())
	suite.Require().NoError(err)
	raviOrder, err := order.NewOrder(kernel.NewUUID(), ravi.ID(), suite.world.Restaurant.ID(),
		[]order.Line{line}, "", placedAt)
	suite.Require().NoError(err)

	_, err = suite.repo.GetByIdempotencyKey(ctx, ravi.ID(), "checkout-1")
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)

	suite.Require().NoError(raviOrder.AttachIdempotencyKey("checkout-1"))
	suite.Require().NoError(suite.repo.Add(ctx, raviOrder))

	got, err := suite.repo.GetByIdempotencyKey(ctx, suite.world.User.ID(), "checkout-1")
	suite.Require().NoError(err)
	suite.Equal(ashaOrder.ID(), got.ID())

	got, err = suite.repo.GetByIdempotencyKey(ctx, ravi.ID(), "checkout-1")
	suite.Require().NoError(err)
	suite.Equal(raviOrder.ID(), got.ID())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_UnknownOrder() {
	_, err := suite.repo.Get(context.Background(), kernel.NewUUID())
	suite.ErrorIs(err, errs.ErrObjectNotFound)

	_, err = suite.repo.GetByIdempotencyKey(context.Background(), suite.world.User.ID(), "never-used")
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_WritesStatusPartnerAndTimestamps() {
	ctx := context.Background()
	o := suite.newOrder(suite.world.Idli)
	suite.Require().NoError(suite.repo.Add(ctx, o))

	suite.Require().NoError(o.SetStatus(order.Preparing, placedAt.Add(5*time.Minute)))
	suite.Require().NoError(o.AssignPartner(suite.world.Veteran.ID(), placedAt.Add(15*time.Minute)))
	suite.Require().NoError(suite.repo.Update(ctx, o))

	got, err := suite.repo.Get(ctx, o.ID())
	suite.Require().NoError(err)

	suite.Equal(order.OutForDelivery, got.Status())
	suite.Require().NotNil(got.Partner())
	suite.Equal(suite.world.Veteran.ID(), *got.Partner())
	suite.Require().NotNil(got.Timestamps().PreparingAt)
	suite.True(placedAt.Add(5 * time.Minute).Equal(*got.Timestamps().PreparingAt))
	suite.Require().NotNil(got.Timestamps().OutForDeliveryAt)
	suite.Nil(got.Timestamps().DeliveredAt)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_UnknownOrder() {
	o := suite.newOrder(suite.world.Idli)
	err := suite.repo.Update(context.Background(), o)
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_KeepsSnapshotPrice() {
	ctx := context.Background()
	o := suite.newOrder(suite.world.Idli)
	suite.Require().NoError(suite.repo.Add(ctx, o))

	suite.Require().NoError(suite.db.Exec("UPDATE menu_items SET price = 99 WHERE id = ?",
		suite.world.Idli.ID().Raw()).Error)
	suite.Require().NoError(o.SetStatus(order.Preparing, placedAt))
	suite.Require().NoError(suite.repo.Update(ctx, o))

	got, err := suite.repo.Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.True(decimal.NewFromInt(30).Equal(got.Lines()[0].UnitPrice()))
	suite.True(decimal.NewFromInt(30).Equal(got.TotalAmount()))
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetFirstAwaitingDispatch() {
	ctx := context.Background()

	placed := suite.newOrder(suite.world.Idli)
	suite.Require().NoError(suite.repo.Add(ctx, placed))

	_, err := suite.repo.GetFirstAwaitingDispatch(ctx)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)

	older := suite.newOrder(suite.world.Idli)
	newer := suite.newOrder(suite.world.Dosa)
	suite.Require().NoError(suite.repo.Add(ctx, newer))
	suite.Require().NoError(suite.repo.Add(ctx, older))
	suite.Require().NoError(suite.db.Model(&orderrepo.OrderDTO{}).
		Where("id = ?", newer.ID().Raw()).
		Updates(map[string]any{"status": "PREPARING", "created_at": placedAt.Add(time.Minute)}).Error)
	suite.Require().NoError(suite.db.Model(&orderrepo.OrderDTO{}).
		Where("id = ?", older.ID().Raw()).
		Update("status", "PREPARING").Error)

	err = suite.db.Transaction(func(tx *gorm.DB) error {
		got, getErr := orderrepo.NewGormOrderRepository(tx, suite.tracker).GetFirstAwaitingDispatch(ctx)
		suite.Require().NoError(getErr)
		suite.Equal(older.ID(), got.ID())

		// a second dispatcher skips the locked row
		return suite.db.Transaction(func(other *gorm.DB) error {
			next, nextErr := orderrepo.NewGormOrderRepository(other, suite.tracker).GetFirstAwaitingDispatch(ctx)
			suite.Require().NoError(nextErr)
			suite.Equal(newer.ID(), next.ID())
			return nil
		})
	})
	suite.Require().NoError(err)
}

func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}
