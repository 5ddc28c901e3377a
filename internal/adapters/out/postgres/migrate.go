package postgres

import (
	"fmt"

	"fooddelivery/internal/adapters/out/postgres/catalogrepo"
	"fooddelivery/internal/adapters/out/postgres/identityrepo"
	"fooddelivery/internal/adapters/out/postgres/orderrepo"
	"fooddelivery/internal/adapters/out/postgres/partnerrepo"

	"gorm.io/gorm"
)

// Models lists every table of the schema in dependency order.
func Models() []any {
	return []any{
		&identityrepo.UserDTO{},
		&identityrepo.RestaurantDTO{},
		&partnerrepo.PartnerDTO{},
		&catalogrepo.CategoryDTO{},
		&catalogrepo.MenuItemDTO{},
		&orderrepo.OrderDTO{},
		&orderrepo.OrderLineDTO{},
	}
}

type foreignKey struct {
	name       string
	table      string
	column     string
	references string
}

// foreignKeys span the repository packages, so gorm cannot derive them
// from associations.
var foreignKeys = []foreignKey{
	{"fk_categories_restaurant", "categories", "restaurant_id", "restaurants(id)"},
	{"fk_menu_items_restaurant", "menu_items", "restaurant_id", "restaurants(id)"},
	{"fk_menu_items_category", "menu_items", "category_id", "categories(id)"},
	{"fk_orders_user", "orders", "user_id", "users(id)"},
	{"fk_orders_restaurant", "orders", "restaurant_id", "restaurants(id)"},
	{"fk_orders_partner", "orders", "partner_id", "delivery_partners(id)"},
	{"fk_order_lines_menu_item", "order_lines", "menu_item_id", "menu_items(id)"},
}

// droppedIndexes were replaced by other indexes; AutoMigrate never drops.
var droppedIndexes = []string{
	"idx_orders_idempotency_key",
}

// Migrate creates or updates all tables and then adds the cross table
// foreign keys. It is safe to run on every start.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	for _, name := range droppedIndexes {
		if err := db.Exec(fmt.Sprintf("DROP INDEX IF EXISTS %s", name)).Error; err != nil {
			return fmt.Errorf("drop index %s: %w", name, err)
		}
	}

	for _, fk := range foreignKeys {
		stmt := fmt.Sprintf(`
			DO $$
			BEGIN
				IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = '%s') THEN
					ALTER TABLE %s ADD CONSTRAINT %s FOREIGN KEY (%s) REFERENCES %s;
				END IF;
			END $$;`,
			fk.name, fk.table, fk.name, fk.column, fk.references,
		)
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("add foreign key %s: %w", fk.name, err)
		}
	}

	return nil
}
