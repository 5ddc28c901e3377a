// Package commands contains the operations that change state. Every command
// is a constructor-validated value handled by a handler that runs inside one
// unit of work: an error anywhere rolls the whole transaction back.
package commands

import (
	"context"

	"fooddelivery/internal/core/ports"
)

// Unit of Work facets. Each handler asks only for the repositories it uses.
type (
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	PartnerRepoFactory interface {
		PartnerRepository() ports.PartnerRepository
	}

	CatalogRepoFactory interface {
		CategoryRepository() ports.CategoryRepository
		MenuItemRepository() ports.MenuItemRepository
	}

	IdentityRepoFactory interface {
		UserRepository() ports.UserRepository
		RestaurantRepository() ports.RestaurantRepository
	}

	// DeliveryUoW covers orders and delivery partners: status changes,
	// assignment and dispatch.
	DeliveryUoW interface {
		TxManager
		OrderRepoFactory
		PartnerRepoFactory
	}

	DeliveryUoWFactory interface {
		Create() DeliveryUoW
	}

	PartnerUoW interface {
		TxManager
		PartnerRepoFactory
	}

	PartnerUoWFactory interface {
		Create() PartnerUoW
	}

	IdentityUoW interface {
		TxManager
		IdentityRepoFactory
	}

	IdentityUoWFactory interface {
		Create() IdentityUoW
	}

	// CatalogUoW covers menu management, which checks restaurant ownership.
	CatalogUoW interface {
		TxManager
		CatalogRepoFactory
		IdentityRepoFactory
	}

	CatalogUoWFactory interface {
		Create() CatalogUoW
	}

	// OrderUoW is what order creation needs: it reads customers, restaurants
	// and the menu and writes the order.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   item, err := uow.MenuItemRepository().GetForUpdate(ctx, itemID)
	//   // ... build the order
	//   err = uow.OrderRepository().Add(ctx, o)
	//
	//   err = uow.Commit(ctx)
	OrderUoW interface {
		TxManager
		OrderRepoFactory
		CatalogRepoFactory
		IdentityRepoFactory
	}

	OrderUoWFactory interface {
		Create() OrderUoW
	}
)
