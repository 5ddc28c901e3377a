package ports

import (
	"context"

	"fooddelivery/internal/core/domain/model/catalog"
	"fooddelivery/internal/core/domain/model/kernel"
)

type CategoryRepository interface {
	// Add returns *errs.ConflictError when the restaurant already has a
	// category with the same normalized name.
	Add(ctx context.Context, aggregate *catalog.Category) error
	Update(ctx context.Context, aggregate *catalog.Category) error
	Get(ctx context.Context, id kernel.UUID) (*catalog.Category, error)
}

type MenuItemRepository interface {
	Add(ctx context.Context, aggregate *catalog.MenuItem) error
	Update(ctx context.Context, aggregate *catalog.MenuItem) error
	Get(ctx context.Context, id kernel.UUID) (*catalog.MenuItem, error)

	// GetForUpdate locks the menu item row so a concurrent price or
	// availability change waits for the order that reads it.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*catalog.MenuItem, error)
}
