package migrations

import (
	"gorm.io/gorm"

	"github.com/shashiranjanraj/storefront/app/models"
	"github.com/shashiranjanraj/storefront/pkg/migration"
)

func init() {
	migration.Register("20260101000000_create_users_table", tableMigration{&models.User{}})
	migration.Register("20260101000001_create_products_table", tableMigration{&models.Product{}})
	migration.Register("20260101000002_create_cart_items_table", tableMigration{&models.CartItem{}})
	migration.Register("20260101000003_create_orders_table", tableMigration{&models.Order{}})
	migration.Register("20260101000004_create_order_items_table", tableMigration{&models.OrderItem{}})
}

// tableMigration creates one model's table, with its indexes and checks, and
// drops it on rollback.
type tableMigration struct {
	model any
}

func (m tableMigration) Up(db *gorm.DB) error {
	return db.AutoMigrate(m.model)
}

func (m tableMigration) Down(db *gorm.DB) error {
	return db.Migrator().DropTable(m.model)
}
