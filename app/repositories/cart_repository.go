package repositories

import (
	"gorm.io/gorm"

	"github.com/shashiranjanraj/storefront/app/models"
)

// CartRepository handles database operations for CartItem.
type CartRepository struct{}

func NewCartRepository() *CartRepository {
	return &CartRepository{}
}

// ListWithProducts returns every line of the user's cart in insertion order.
// Product is nil on lines whose product has been soft-deleted.
func (r *CartRepository) ListWithProducts(db *gorm.DB, userID uint) ([]models.CartItem, error) {
	var items []models.CartItem
	err := db.Preload("Product").
		Where("user_id = ?", userID).
		Order("id").
		Find(&items).Error
	return items, err
}

// Find returns the user's line with the given id.
func (r *CartRepository) Find(db *gorm.DB, userID, itemID uint) (models.CartItem, error) {
	var item models.CartItem
	err := db.Preload("Product").
		Where("id = ? AND user_id = ?", itemID, userID).
		First(&item).Error
	return item, err
}

// FindByProduct returns the user's line for productID.
func (r *CartRepository) FindByProduct(db *gorm.DB, userID, productID uint) (models.CartItem, error) {
	var item models.CartItem
	err := db.Where("user_id = ? AND product_id = ?", userID, productID).First(&item).Error
	return item, err
}

// Create persists a new line.
func (r *CartRepository) Create(db *gorm.DB, item *models.CartItem) error {
	return db.Omit("User", "Product").Create(item).Error
}

// SetQuantity overwrites the quantity of a line.
func (r *CartRepository) SetQuantity(db *gorm.DB, itemID uint, qty int) error {
	return db.Model(&models.CartItem{}).Where("id = ?", itemID).Update("quantity", qty).Error
}

// Delete removes one of the user's lines. A missing line is not an error.
func (r *CartRepository) Delete(db *gorm.DB, userID, itemID uint) error {
	return db.Where("id = ? AND user_id = ?", itemID, userID).Delete(&models.CartItem{}).Error
}

// Clear removes every line of the user's cart.
func (r *CartRepository) Clear(db *gorm.DB, userID uint) error {
	return db.Where("user_id = ?", userID).Delete(&models.CartItem{}).Error
}
