// Package postgres provides the GORM based unit of work and the schema
// migration for the order engine.
//
// A unit of work wraps one database transaction. Repositories obtained from
// it after Begin run inside that transaction; before Begin they use the
// plain connection, which is how read-only lookups are done.
//
//	uow := factory.Create()
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() { _ = uow.Rollback(ctx) }()
//
//	if err := uow.OrderRepository().Add(ctx, o); err != nil {
//	    return err
//	}
//	return uow.Commit(ctx)
//
// Repositories register every order they write with the unit of work. After
// a successful commit the domain events of those orders are handed to the
// configured OrderEventPublisher. Publishing is best effort: a failure is
// logged and never undoes the committed transaction.
package postgres

import (
	"context"
	"log/slog"

	"fooddelivery/internal/adapters/out/postgres/catalogrepo"
	"fooddelivery/internal/adapters/out/postgres/identityrepo"
	"fooddelivery/internal/adapters/out/postgres/orderrepo"
	"fooddelivery/internal/adapters/out/postgres/partnerrepo"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/ports"

	"gorm.io/gorm"
)

// trackedAggregate represents an aggregate modified during the unit of work.
type trackedAggregate struct {
	ID        kernel.UUID
	Aggregate any
}

// GormUnitOfWorkFactory creates UnitOfWork instances sharing one connection
// pool, event publisher and logger.
type GormUnitOfWorkFactory struct {
	db        *gorm.DB
	publisher ports.OrderEventPublisher
	logger    *slog.Logger
}

// NewGormUnitOfWorkFactory creates a factory. publisher and logger may be nil;
// events are then dropped and nothing is logged.
func NewGormUnitOfWorkFactory(
	db *gorm.DB,
	publisher ports.OrderEventPublisher,
	logger *slog.Logger,
) *GormUnitOfWorkFactory {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &GormUnitOfWorkFactory{
		db:        db,
		publisher: publisher,
		logger:    logger.With("component", "unit_of_work"),
	}
}

// Create produces a new unit of work with its own transaction state.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:                f.db,
		publisher:         f.publisher,
		logger:            f.logger,
		trackedAggregates: make([]trackedAggregate, 0),
	}
}

// GormUnitOfWork coordinates one database transaction and remembers the
// aggregates written in it.
type GormUnitOfWork struct {
	db                *gorm.DB
	tx                *gorm.DB
	publisher         ports.OrderEventPublisher
	logger            *slog.Logger
	trackedAggregates []trackedAggregate
}

// Begin starts the transaction. Calling Begin twice keeps the first one.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	uow.tx = uow.db.WithContext(ctx).Begin()
	if uow.tx.Error != nil {
		err := uow.tx.Error
		uow.tx = nil
		return err
	}

	return nil
}

// Commit finalizes the transaction and then publishes the domain events of
// the orders written in it.
func (uow *GormUnitOfWork) Commit(ctx context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	if err != nil {
		uow.trackedAggregates = uow.trackedAggregates[:0]
		return err
	}

	uow.publishEvents(ctx)
	return nil
}

// Rollback discards the transaction. It reports gorm.ErrInvalidTransaction
// when nothing is open, which is the normal case after Commit.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	uow.trackedAggregates = uow.trackedAggregates[:0]
	return err
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}

func (uow *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	return orderrepo.NewGormOrderRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) PartnerRepository() ports.PartnerRepository {
	return partnerrepo.NewGormPartnerRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) CategoryRepository() ports.CategoryRepository {
	return catalogrepo.NewGormCategoryRepository(uow.conn())
}

func (uow *GormUnitOfWork) MenuItemRepository() ports.MenuItemRepository {
	return catalogrepo.NewGormMenuItemRepository(uow.conn())
}

func (uow *GormUnitOfWork) UserRepository() ports.UserRepository {
	return identityrepo.NewGormUserRepository(uow.conn())
}

func (uow *GormUnitOfWork) RestaurantRepository() ports.RestaurantRepository {
	return identityrepo.NewGormRestaurantRepository(uow.conn())
}

// TrackAggregate registers an aggregate written within this unit of work.
// Repositories call it after every successful Add or Update.
func (uow *GormUnitOfWork) TrackAggregate(id kernel.UUID, aggregate any) {
	uow.trackedAggregates = append(uow.trackedAggregates, trackedAggregate{
		ID:        id,
		Aggregate: aggregate,
	})
}

func (uow *GormUnitOfWork) publishEvents(ctx context.Context) {
	tracked := uow.trackedAggregates
	uow.trackedAggregates = make([]trackedAggregate, 0)

	var events []order.Event
	seen := make(map[*order.Order]struct{})
	for _, t := range tracked {
		o, ok := t.Aggregate.(*order.Order)
		if !ok {
			continue
		}
		if _, dup := seen[o]; dup {
			continue
		}
		seen[o] = struct{}{}
		events = append(events, o.DomainEvents()...)
		o.ClearDomainEvents()
	}

	if len(events) == 0 || uow.publisher == nil {
		return
	}

	if err := uow.publisher.Publish(ctx, events...); err != nil {
		uow.logger.ErrorContext(ctx, "failed to publish order events",
			"count", len(events),
			"error", err,
		)
	}
}
