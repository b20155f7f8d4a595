package seeders

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/shashiranjanraj/storefront/app/models"
	"github.com/shashiranjanraj/storefront/app/repositories"
)

func init() {
	Register("users", seedUsers)
	Register("products", seedProducts)
}

// DemoUsers are the accounts `storefront token` is usually pointed at.
var DemoUsers = []models.User{
	{Name: "Demo Admin", Email: "admin@storefront.test", Role: models.RoleAdmin},
	{Name: "Demo Customer", Email: "customer@storefront.test", Role: models.RoleCustomer},
}

var demoProducts = []struct {
	name, slug, price string
	stock             int
}{
	{"Blue Mug", "blue-mug", "12.50", 40},
	{"Cast Iron Teapot", "cast-iron-teapot", "64.00", 8},
	{"Loose Leaf Sampler", "loose-leaf-sampler", "19.99", 25},
	{"Bamboo Tray", "bamboo-tray", "29.00", 12},
	{"Gift Card", "gift-card", "100.00", 1000},
}

func seedUsers(db *gorm.DB) error {
	users := repositories.NewUserRepository()
	for _, u := range DemoUsers {
		if err := users.Upsert(db, &u); err != nil {
			return err
		}
	}
	return nil
}

// seedProducts inserts the demo catalogue, leaving existing slugs alone.
func seedProducts(db *gorm.DB) error {
	for _, p := range demoProducts {
		row := models.Product{
			Name:   p.name,
			Slug:   p.slug,
			Price:  decimal.RequireFromString(p.price),
			Stock:  p.stock,
			Active: true,
		}
		err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "slug"}},
			DoNothing: true,
		}).Create(&row).Error
		if err != nil {
			return err
		}
	}
	return nil
}
