// Package catalogrepo persists restaurant menus: categories with their
// daily ordering window and the menu items filed under them.
package catalogrepo

import (
	"time"

	"fooddelivery/internal/core/domain/model/catalog"
	"fooddelivery/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// CategoryDTO stores the window as two TIME columns. start_time > end_time
// is a window that crosses midnight.
type CategoryDTO struct {
	ID           uuid.UUID      `gorm:"type:uuid;primaryKey"`
	RestaurantID uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_categories_restaurant_name,priority:1"`
	Name         string         `gorm:"type:varchar(100);not null;uniqueIndex:idx_categories_restaurant_name,priority:2"`
	StartTime    datatypes.Time `gorm:"not null"`
	EndTime      datatypes.Time `gorm:"not null"`
}

func (CategoryDTO) TableName() string {
	return "categories"
}

type MenuItemDTO struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey"`
	RestaurantID uuid.UUID       `gorm:"type:uuid;not null;index"`
	CategoryID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	Name         string          `gorm:"type:varchar(100);not null"`
	Price        decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	IsAvailable  bool            `gorm:"not null"`
}

func (MenuItemDTO) TableName() string {
	return "menu_items"
}

func timeFromDomain(t kernel.TimeOfDay) datatypes.Time {
	return datatypes.NewTime(t.Hour(), t.Minute(), t.Second(), 0)
}

func timeToDomain(t datatypes.Time) (kernel.TimeOfDay, error) {
	return kernel.TimeOfDayFromSeconds(int(time.Duration(t) / time.Second))
}

func categoryFromDomain(c *catalog.Category) CategoryDTO {
	return CategoryDTO{
		ID:           c.ID().Raw(),
		RestaurantID: c.RestaurantID().Raw(),
		Name:         c.Name(),
		StartTime:    timeFromDomain(c.Window().Start()),
		EndTime:      timeFromDomain(c.Window().End()),
	}
}

func categoryToDomain(dto CategoryDTO) (*catalog.Category, error) {
	id, err := kernel.UUIDFromRaw(dto.ID)
	if err != nil {
		return nil, err
	}
	restaurantID, err := kernel.UUIDFromRaw(dto.RestaurantID)
	if err != nil {
		return nil, err
	}

	start, err := timeToDomain(dto.StartTime)
	if err != nil {
		return nil, err
	}
	end, err := timeToDomain(dto.EndTime)
	if err != nil {
		return nil, err
	}
	window, err := kernel.NewTimeWindow(start, end)
	if err != nil {
		return nil, err
	}

	return catalog.NewCategory(id, restaurantID, dto.Name, window)
}

func menuItemFromDomain(m *catalog.MenuItem) MenuItemDTO {
	return MenuItemDTO{
		ID:           m.ID().Raw(),
		RestaurantID: m.RestaurantID().Raw(),
		CategoryID:   m.CategoryID().Raw(),
		Name:         m.Name(),
		Price:        m.Price(),
		IsAvailable:  m.IsAvailable(),
	}
}

func menuItemToDomain(dto MenuItemDTO) (*catalog.MenuItem, error) {
	id, err := kernel.UUIDFromRaw(dto.ID)
	if err != nil {
		return nil, err
	}
	restaurantID, err := kernel.UUIDFromRaw(dto.RestaurantID)
	if err != nil {
		return nil, err
	}
	categoryID, err := kernel.UUIDFromRaw(dto.CategoryID)
	if err != nil {
		return nil, err
	}

	return catalog.RestoreMenuItem(id, restaurantID, categoryID, dto.Name, dto.Price, dto.IsAvailable)
}
