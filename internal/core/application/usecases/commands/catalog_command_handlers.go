package commands

import (
	"context"
	"fmt"

	"fooddelivery/internal/core/domain/model/catalog"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"
)

// AddCategoryCommandHandler creates a category for an existing restaurant.
// The (restaurant, name) pair is unique; a duplicate is reported by the
// repository as *errs.ConflictError.
type AddCategoryCommandHandler struct {
	uowFactory CatalogUoWFactory
}

func NewAddCategoryCommandHandler(uowFactory CatalogUoWFactory) AddCategoryCommandHandler {
	return AddCategoryCommandHandler{uowFactory: uowFactory}
}

func (h AddCategoryCommandHandler) Handle(ctx context.Context, command AddCategoryCommand) (*catalog.Category, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if _, err := uow.RestaurantRepository().Get(ctx, command.RestaurantID()); err != nil {
		return nil, err
	}

	c, err := catalog.NewCategory(kernel.NewUUID(), command.RestaurantID(), command.Name(), command.Window())
	if err != nil {
		return nil, err
	}

	if err = uow.CategoryRepository().Add(ctx, c); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return c, nil
}

type UpdateCategoryWindowCommandHandler struct {
	uowFactory CatalogUoWFactory
}

func NewUpdateCategoryWindowCommandHandler(uowFactory CatalogUoWFactory) UpdateCategoryWindowCommandHandler {
	return UpdateCategoryWindowCommandHandler{uowFactory: uowFactory}
}

func (h UpdateCategoryWindowCommandHandler) Handle(
	ctx context.Context,
	command UpdateCategoryWindowCommand,
) (*catalog.Category, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.CategoryRepository()
	c, err := repo.Get(ctx, command.CategoryID())
	if err != nil {
		return nil, err
	}
	if !c.RestaurantID().IsEqual(command.RestaurantID()) {
		return nil, errs.NewObjectNotFoundError("category", command.CategoryID())
	}

	if err = c.ChangeWindow(command.Window()); err != nil {
		return nil, err
	}

	if err = repo.Update(ctx, c); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return c, nil
}

// AddMenuItemCommandHandler files a new item under one of the restaurant's
// own categories.
type AddMenuItemCommandHandler struct {
	uowFactory CatalogUoWFactory
}

func NewAddMenuItemCommandHandler(uowFactory CatalogUoWFactory) AddMenuItemCommandHandler {
	return AddMenuItemCommandHandler{uowFactory: uowFactory}
}

func (h AddMenuItemCommandHandler) Handle(ctx context.Context, command AddMenuItemCommand) (*catalog.MenuItem, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if _, err := uow.RestaurantRepository().Get(ctx, command.RestaurantID()); err != nil {
		return nil, err
	}

	category, err := uow.CategoryRepository().Get(ctx, command.CategoryID())
	if err != nil {
		return nil, err
	}
	if !category.RestaurantID().IsEqual(command.RestaurantID()) {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"category",
			fmt.Errorf("category %s belongs to another restaurant", category.ID()),
		)
	}

	item, err := catalog.NewMenuItem(
		kernel.NewUUID(),
		command.RestaurantID(),
		command.CategoryID(),
		command.Name(),
		command.Price(),
	)
	if err != nil {
		return nil, err
	}

	if err = uow.MenuItemRepository().Add(ctx, item); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return item, nil
}

// UpdateMenuItemCommandHandler changes price and availability. It locks the
// item row, so it waits for any order that is snapshotting the old price.
type UpdateMenuItemCommandHandler struct {
	uowFactory CatalogUoWFactory
}

func NewUpdateMenuItemCommandHandler(uowFactory CatalogUoWFactory) UpdateMenuItemCommandHandler {
	return UpdateMenuItemCommandHandler{uowFactory: uowFactory}
}

func (h UpdateMenuItemCommandHandler) Handle(
	ctx context.Context,
	command UpdateMenuItemCommand,
) (*catalog.MenuItem, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.MenuItemRepository()
	item, err := repo.GetForUpdate(ctx, command.MenuItemID())
	if err != nil {
		return nil, err
	}
	if !item.BelongsTo(command.RestaurantID()) {
		return nil, errs.NewObjectNotFoundError("menu item", command.MenuItemID())
	}

	if price := command.Price(); price != nil {
		if err = item.ChangePrice(*price); err != nil {
			return nil, err
		}
	}
	if available := command.Available(); available != nil {
		item.SetAvailable(*available)
	}

	if err = repo.Update(ctx, item); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return item, nil
}
