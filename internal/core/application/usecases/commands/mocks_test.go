package commands_test

import (
	"context"
	"io"
	"testing"
	"time"

	"fooddelivery/internal/core/application/usecases/commands"
	"fooddelivery/internal/core/domain/model/catalog"
	"fooddelivery/internal/core/domain/model/identity"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/domain/model/partner"
	"fooddelivery/internal/core/ports"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	return orderResult(m.Called(ctx, id))
}

func (m *MockOrderRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	return orderResult(m.Called(ctx, id))
}

func (m *MockOrderRepository) GetByIdempotencyKey(
	ctx context.Context,
	userID kernel.UUID,
	key string,
) (*order.Order, error) {
	return orderResult(m.Called(ctx, userID, key))
}

func (m *MockOrderRepository) GetFirstAwaitingDispatch(ctx context.Context) (*order.Order, error) {
	return orderResult(m.Called(ctx))
}

func orderResult(args mock.Arguments) (*order.Order, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

type MockPartnerRepository struct{ mock.Mock }

func (m *MockPartnerRepository) Add(ctx context.Context, p *partner.Partner) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockPartnerRepository) Get(ctx context.Context, id kernel.UUID) (*partner.Partner, error) {
	return partnerResult(m.Called(ctx, id))
}

func (m *MockPartnerRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*partner.Partner, error) {
	return partnerResult(m.Called(ctx, id))
}

func (m *MockPartnerRepository) SaveAvailability(ctx context.Context, p *partner.Partner) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockPartnerRepository) GetAllAvailable(ctx context.Context, limit int) ([]*partner.Partner, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*partner.Partner), args.Error(1)
}

func partnerResult(args mock.Arguments) (*partner.Partner, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Partner), args.Error(1)
}

type MockCategoryRepository struct{ mock.Mock }

func (m *MockCategoryRepository) Add(ctx context.Context, c *catalog.Category) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockCategoryRepository) Update(ctx context.Context, c *catalog.Category) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockCategoryRepository) Get(ctx context.Context, id kernel.UUID) (*catalog.Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Category), args.Error(1)
}

type MockMenuItemRepository struct{ mock.Mock }

func (m *MockMenuItemRepository) Add(ctx context.Context, item *catalog.MenuItem) error {
	return m.Called(ctx, item).Error(0)
}

func (m *MockMenuItemRepository) Update(ctx context.Context, item *catalog.MenuItem) error {
	return m.Called(ctx, item).Error(0)
}

func (m *MockMenuItemRepository) Get(ctx context.Context, id kernel.UUID) (*catalog.MenuItem, error) {
	return menuItemResult(m.Called(ctx, id))
}

func (m *MockMenuItemRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*catalog.MenuItem, error) {
	return menuItemResult(m.Called(ctx, id))
}

func menuItemResult(args mock.Arguments) (*catalog.MenuItem, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.MenuItem), args.Error(1)
}

type MockUserRepository struct{ mock.Mock }

func (m *MockUserRepository) Add(ctx context.Context, u *identity.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *MockUserRepository) Get(ctx context.Context, id kernel.UUID) (*identity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

type MockRestaurantRepository struct{ mock.Mock }

func (m *MockRestaurantRepository) Add(ctx context.Context, r *identity.Restaurant) error {
	return m.Called(ctx, r).Error(0)
}

func (m *MockRestaurantRepository) Get(ctx context.Context, id kernel.UUID) (*identity.Restaurant, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Restaurant), args.Error(1)
}

// MockUoW satisfies every unit of work facet.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error    { return m.Called(ctx).Error(0) }
func (m *MockUoW) Commit(ctx context.Context) error   { return m.Called(ctx).Error(0) }
func (m *MockUoW) Rollback(ctx context.Context) error { return m.Called(ctx).Error(0) }

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	return m.Called().Get(0).(ports.OrderRepository)
}

func (m *MockUoW) PartnerRepository() ports.PartnerRepository {
	return m.Called().Get(0).(ports.PartnerRepository)
}

func (m *MockUoW) CategoryRepository() ports.CategoryRepository {
	return m.Called().Get(0).(ports.CategoryRepository)
}

func (m *MockUoW) MenuItemRepository() ports.MenuItemRepository {
	return m.Called().Get(0).(ports.MenuItemRepository)
}

func (m *MockUoW) UserRepository() ports.UserRepository {
	return m.Called().Get(0).(ports.UserRepository)
}

func (m *MockUoW) RestaurantRepository() ports.RestaurantRepository {
	return m.Called().Get(0).(ports.RestaurantRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	return m.Called().Get(0).(commands.OrderUoW)
}

type MockDeliveryUoWFactory struct{ mock.Mock }

func (m *MockDeliveryUoWFactory) Create() commands.DeliveryUoW {
	return m.Called().Get(0).(commands.DeliveryUoW)
}

type MockIdentityUoWFactory struct{ mock.Mock }

func (m *MockIdentityUoWFactory) Create() commands.IdentityUoW {
	return m.Called().Get(0).(commands.IdentityUoW)
}

type MockPartnerUoWFactory struct{ mock.Mock }

func (m *MockPartnerUoWFactory) Create() commands.PartnerUoW {
	return m.Called().Get(0).(commands.PartnerUoW)
}

type MockCatalogUoWFactory struct{ mock.Mock }

func (m *MockCatalogUoWFactory) Create() commands.CatalogUoW {
	return m.Called().Get(0).(commands.CatalogUoW)
}

type MockAttachmentStore struct{ mock.Mock }

func (m *MockAttachmentStore) Store(ctx context.Context, filename string, content io.Reader) (string, error) {
	args := m.Called(ctx, filename, content)
	return args.String(0), args.Error(1)
}

func (m *MockAttachmentStore) Delete(ctx context.Context, reference string) error {
	return m.Called(ctx, reference).Error(0)
}

type MockIdempotencyStore struct{ mock.Mock }

func (m *MockIdempotencyStore) Lookup(ctx context.Context, userID kernel.UUID, key string) (kernel.UUID, bool, error) {
	args := m.Called(ctx, userID, key)
	return args.Get(0).(kernel.UUID), args.Bool(1), args.Error(2)
}

func (m *MockIdempotencyStore) Remember(ctx context.Context, userID kernel.UUID, key string, orderID kernel.UUID) error {
	return m.Called(ctx, userID, key, orderID).Error(0)
}

// fixtures

var morning = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

func clockAt(t time.Time) ports.Clock {
	return ports.ClockFunc(func() time.Time { return t })
}

func newContact(t *testing.T, name string) kernel.Contact {
	t.Helper()
	c, err := kernel.NewContact(name, name+"@example.com", "900"+name, "12 MG Road")
	require.NoError(t, err)
	return c
}

func newUser(t *testing.T) *identity.User {
	t.Helper()
	u, err := identity.NewUser(kernel.NewUUID(), newContact(t, "asha"), morning)
	require.NoError(t, err)
	return u
}

func newRestaurant(t *testing.T) *identity.Restaurant {
	t.Helper()
	r, err := identity.NewRestaurant(kernel.NewUUID(), newContact(t, "udupi"), morning)
	require.NoError(t, err)
	return r
}

func newCategory(t *testing.T, restaurantID kernel.UUID, start, end string) *catalog.Category {
	t.Helper()
	w, err := kernel.ParseTimeWindow(start, end)
	require.NoError(t, err)
	c, err := catalog.NewCategory(kernel.NewUUID(), restaurantID, "breakfast", w)
	require.NoError(t, err)
	return c
}

func newMenuItem(t *testing.T, category *catalog.Category, name, price string) *catalog.MenuItem {
	t.Helper()
	item, err := catalog.NewMenuItem(
		kernel.NewUUID(), category.RestaurantID(), category.ID(), name, decimal.RequireFromString(price),
	)
	require.NoError(t, err)
	return item
}

func newPartner(t *testing.T, name string) *partner.Partner {
	t.Helper()
	p, err := partner.NewPartner(kernel.NewUUID(), newContact(t, name), "Bike", morning)
	require.NoError(t, err)
	return p
}

func newPlacedOrder(t *testing.T) *order.Order {
	t.Helper()
	line, err := order.NewLine(kernel.NewUUID(), kernel.NewUUID(), 3, decimal.NewFromInt(30))
	require.NoError(t, err)
	o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), []order.Line{line}, "", morning)
	require.NoError(t, err)
	o.ClearDomainEvents()
	return o
}
