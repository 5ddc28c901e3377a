package catalogrepo

import (
	"context"
	"errors"

	"fooddelivery/internal/adapters/out/postgres/pgerrs"
	"fooddelivery/internal/core/domain/model/catalog"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormCategoryRepository implements CategoryRepository using GORM.
type GormCategoryRepository struct {
	db *gorm.DB
}

func NewGormCategoryRepository(db *gorm.DB) *GormCategoryRepository {
	return &GormCategoryRepository{db: db}
}

func (r *GormCategoryRepository) Add(ctx context.Context, aggregate *catalog.Category) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := categoryFromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return pgerrs.Conflict(err, "category", nil, pgerrs.Field{Name: "name", Value: dto.Name})
	}
	return nil
}

// Update writes the category window. Name and owner never change.
func (r *GormCategoryRepository) Update(ctx context.Context, aggregate *catalog.Category) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := categoryFromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&CategoryDTO{}).
		Where("id = ?", dto.ID).
		Updates(map[string]any{
			"start_time": dto.StartTime,
			"end_time":   dto.EndTime,
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("category", aggregate.ID().String())
	}
	return nil
}

func (r *GormCategoryRepository) Get(ctx context.Context, id kernel.UUID) (*catalog.Category, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto CategoryDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Raw()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("category", id.String())
		}
		return nil, err
	}

	return categoryToDomain(dto)
}

// GormMenuItemRepository implements MenuItemRepository using GORM.
type GormMenuItemRepository struct {
	db *gorm.DB
}

func NewGormMenuItemRepository(db *gorm.DB) *GormMenuItemRepository {
	return &GormMenuItemRepository{db: db}
}

func (r *GormMenuItemRepository) Add(ctx context.Context, aggregate *catalog.MenuItem) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := menuItemFromDomain(aggregate)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// Update writes price and availability.
func (r *GormMenuItemRepository) Update(ctx context.Context, aggregate *catalog.MenuItem) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := menuItemFromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&MenuItemDTO{}).
		Where("id = ?", dto.ID).
		Updates(map[string]any{
			"price":        dto.Price,
			"is_available": dto.IsAvailable,
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("menu item", aggregate.ID().String())
	}
	return nil
}

func (r *GormMenuItemRepository) Get(ctx context.Context, id kernel.UUID) (*catalog.MenuItem, error) {
	return r.get(r.db.WithContext(ctx), id)
}

func (r *GormMenuItemRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*catalog.MenuItem, error) {
	return r.get(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

func (r *GormMenuItemRepository) get(db *gorm.DB, id kernel.UUID) (*catalog.MenuItem, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto MenuItemDTO
	if err := db.First(&dto, "id = ?", id.Raw()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("menu item", id.String())
		}
		return nil, err
	}

	return menuItemToDomain(dto)
}
