// Package pgtest starts a throwaway Postgres for integration tests and
// seeds a small restaurant world into it.
package pgtest

import (
	"context"
	"time"

	postgres_adapter "fooddelivery/internal/adapters/out/postgres"
	"fooddelivery/internal/adapters/out/postgres/catalogrepo"
	"fooddelivery/internal/adapters/out/postgres/identityrepo"
	"fooddelivery/internal/adapters/out/postgres/partnerrepo"
	"fooddelivery/internal/core/domain/model/catalog"
	"fooddelivery/internal/core/domain/model/identity"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/partner"

	"github.com/shopspring/decimal"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Start runs a postgres:15-alpine container and returns a migrated gorm
// connection to it.
func Start(ctx context.Context) (*postgres.PostgresContainer, *gorm.DB, error) {
	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	if err != nil {
		return nil, nil, err
	}

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, nil, err
	}

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, nil, err
	}

	if err = postgres_adapter.Migrate(db); err != nil {
		_ = container.Terminate(ctx)
		return nil, nil, err
	}

	return container, db, nil
}

// Truncate empties every table.
func Truncate(db *gorm.DB) error {
	return db.Exec(`TRUNCATE TABLE order_lines, orders, menu_items, categories,
		delivery_partners, restaurants, users CASCADE`).Error
}

// World is the seeded data set: one customer, one restaurant with a
// breakfast category open 07:00-11:00 holding two items, and two available
// partners registered a day apart.
type World struct {
	User       *identity.User
	Restaurant *identity.Restaurant
	Breakfast  *catalog.Category
	Idli       *catalog.MenuItem
	Dosa       *catalog.MenuItem
	Veteran    *partner.Partner
	Rookie     *partner.Partner
}

// Epoch is the creation time of seeded rows.
var Epoch = time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

type noopTracker struct{}

func (noopTracker) TrackAggregate(kernel.UUID, any) {}

// Seed writes a World.
func Seed(ctx context.Context, db *gorm.DB) (World, error) {
	var w World
	var err error

	contact := func(name, mobile string) kernel.Contact {
		c, cErr := kernel.NewContact(name, name+"@example.com", mobile, "12 MG Road, Bengaluru")
		if cErr != nil {
			panic(cErr)
		}
		return c
	}

	if w.User, err = identity.NewUser(kernel.NewUUID(), contact("asha", "9000000001"), Epoch); err != nil {
		return w, err
	}
	if w.Restaurant, err = identity.NewRestaurant(kernel.NewUUID(), contact("udupi", "9000000002"), Epoch); err != nil {
		return w, err
	}

	window, err := kernel.ParseTimeWindow("07:00", "11:00")
	if err != nil {
		return w, err
	}
	if w.Breakfast, err = catalog.NewCategory(kernel.NewUUID(), w.Restaurant.ID(), "Breakfast", window); err != nil {
		return w, err
	}
	if w.Idli, err = catalog.NewMenuItem(
		kernel.NewUUID(), w.Restaurant.ID(), w.Breakfast.ID(), "Idli", decimal.NewFromInt(30),
	); err != nil {
		return w, err
	}
	if w.Dosa, err = catalog.NewMenuItem(
		kernel.NewUUID(), w.Restaurant.ID(), w.Breakfast.ID(), "Masala Dosa", decimal.RequireFromString("55.50"),
	); err != nil {
		return w, err
	}

	if w.Veteran, err = partner.NewPartner(kernel.NewUUID(), contact("veteran", "9000000003"), "", Epoch); err != nil {
		return w, err
	}
	if w.Rookie, err = partner.NewPartner(
		kernel.NewUUID(), contact("rookie", "9000000004"), "Scooter", Epoch.Add(24*time.Hour),
	); err != nil {
		return w, err
	}

	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		users := identityrepo.NewGormUserRepository(tx)
		restaurants := identityrepo.NewGormRestaurantRepository(tx)
		categories := catalogrepo.NewGormCategoryRepository(tx)
		items := catalogrepo.NewGormMenuItemRepository(tx)
		partners := partnerrepo.NewGormPartnerRepository(tx, noopTracker{})

		for _, step := range []func() error{
			func() error { return users.Add(ctx, w.User) },
			func() error { return restaurants.Add(ctx, w.Restaurant) },
			func() error { return categories.Add(ctx, w.Breakfast) },
			func() error { return items.Add(ctx, w.Idli) },
			func() error { return items.Add(ctx, w.Dosa) },
			func() error { return partners.Add(ctx, w.Veteran) },
			func() error { return partners.Add(ctx, w.Rookie) },
		} {
			if stepErr := step(); stepErr != nil {
				return stepErr
			}
		}
		return nil
	})
	return w, err
}
