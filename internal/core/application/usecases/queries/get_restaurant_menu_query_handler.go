package queries

import (
	"context"
	"database/sql"

	"fooddelivery/internal/core/domain/model/catalog"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/services"
	"fooddelivery/internal/core/ports"
	"fooddelivery/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type GetRestaurantMenuQueryHandler struct {
	db       *gorm.DB
	resolver services.AvailabilityResolver
	clock    ports.Clock
}

func NewGetRestaurantMenuQueryHandler(
	db *gorm.DB,
	resolver services.AvailabilityResolver,
	clock ports.Clock,
) GetRestaurantMenuQueryHandler {
	if clock == nil {
		clock = ports.SystemClock
	}
	return GetRestaurantMenuQueryHandler{db: db, resolver: resolver, clock: clock}
}

// Handle returns the categories ordered by name, each with its items ordered
// by name. Categories without items are included.
func (h GetRestaurantMenuQueryHandler) Handle(
	ctx context.Context,
	query GetRestaurantMenuQuery,
) (GetRestaurantMenuQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetRestaurantMenuQueryResponse{}, err
	}

	db := h.db.WithContext(ctx)
	restaurantID := query.RestaurantID()

	var exists bool
	if err := db.Raw(
		"SELECT EXISTS (SELECT 1 FROM restaurants WHERE id = ?)", restaurantID.Raw(),
	).Scan(&exists).Error; err != nil {
		return GetRestaurantMenuQueryResponse{}, err
	}
	if !exists {
		return GetRestaurantMenuQueryResponse{}, errs.NewObjectNotFoundError("restaurant", restaurantID.String())
	}

	rows, err := db.Raw(`
		SELECT
			c.id,
			c.name,
			EXTRACT(EPOCH FROM c.start_time)::int,
			EXTRACT(EPOCH FROM c.end_time)::int,
			m.id,
			m.name,
			m.price,
			m.is_available
		FROM categories c
		LEFT JOIN menu_items m ON m.category_id = c.id
		WHERE c.restaurant_id = ?
		ORDER BY c.name, m.name, m.id
	`, restaurantID.Raw()).Rows()
	if err != nil {
		return GetRestaurantMenuQueryResponse{}, err
	}
	defer rows.Close()

	now := h.clock.Now()
	response := GetRestaurantMenuQueryResponse{RestaurantID: restaurantID, Categories: make([]MenuCategoryView, 0)}
	var current *catalog.Category

	for rows.Next() {
		var (
			categoryID    uuid.UUID
			categoryName  string
			start, end    int
			itemID        uuid.NullUUID
			itemName      sql.NullString
			price         decimal.NullDecimal
			itemAvailable sql.NullBool
		)

		if err = rows.Scan(
			&categoryID, &categoryName, &start, &end,
			&itemID, &itemName, &price, &itemAvailable,
		); err != nil {
			return GetRestaurantMenuQueryResponse{}, err
		}

		if current == nil || current.ID().Raw() != categoryID {
			if current, err = restoreCategory(categoryID, restaurantID, categoryName, start, end); err != nil {
				return GetRestaurantMenuQueryResponse{}, err
			}
			response.Categories = append(response.Categories, MenuCategoryView{
				ID:     current.ID(),
				Name:   current.Name(),
				Window: current.Window(),
				Items:  make([]MenuItemView, 0),
			})
		}

		if !itemID.Valid {
			continue
		}

		id, idErr := kernel.UUIDFromRaw(itemID.UUID)
		if idErr != nil {
			return GetRestaurantMenuQueryResponse{}, idErr
		}
		item, itemErr := catalog.RestoreMenuItem(
			id, restaurantID, current.ID(), itemName.String, price.Decimal, itemAvailable.Bool,
		)
		if itemErr != nil {
			return GetRestaurantMenuQueryResponse{}, itemErr
		}

		view := &response.Categories[len(response.Categories)-1]
		view.Items = append(view.Items, MenuItemView{
			ID:          item.ID(),
			Name:        item.Name(),
			Price:       item.Price(),
			IsAvailable: item.IsAvailable(),
			Orderable:   h.resolver.IsOrderable(item, current, now),
		})
	}

	if err = rows.Err(); err != nil {
		return GetRestaurantMenuQueryResponse{}, err
	}

	return response, nil
}

func restoreCategory(
	rawID uuid.UUID,
	restaurantID kernel.UUID,
	name string,
	start, end int,
) (*catalog.Category, error) {
	id, err := kernel.UUIDFromRaw(rawID)
	if err != nil {
		return nil, err
	}
	startTime, err := kernel.TimeOfDayFromSeconds(start)
	if err != nil {
		return nil, err
	}
	endTime, err := kernel.TimeOfDayFromSeconds(end)
	if err != nil {
		return nil, err
	}
	window, err := kernel.NewTimeWindow(startTime, endTime)
	if err != nil {
		return nil, err
	}
	return catalog.NewCategory(id, restaurantID, name, window)
}
