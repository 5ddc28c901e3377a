package ports

import (
	"context"
)

// UnitOfWorkFactory creates new UnitOfWork instances for each request/command.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork represents a business transaction boundary. Repositories it
// returns after Begin share the transaction. Domain events recorded by
// aggregates stored through it are published only after Commit succeeds.
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error

	OrderRepository() OrderRepository
	PartnerRepository() PartnerRepository
	CategoryRepository() CategoryRepository
	MenuItemRepository() MenuItemRepository
	UserRepository() UserRepository
	RestaurantRepository() RestaurantRepository
}
