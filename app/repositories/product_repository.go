package repositories

import (
	"errors"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/storefront/app/models"
	"github.com/shashiranjanraj/storefront/pkg/orm"
)

// ErrStockConflict is returned when a conditional decrement matched no row:
// the product is gone or no longer has enough stock.
var ErrStockConflict = errors.New("repositories: stock decrement matched no rows")

// ProductRepository is the inventory ledger. Every method takes the handle
// to run on, so callers decide whether it joins a transaction.
type ProductRepository struct{}

func NewProductRepository() *ProductRepository {
	return &ProductRepository{}
}

// FindByID returns a live (not soft-deleted) product, active or not.
func (r *ProductRepository) FindByID(db *gorm.DB, id uint) (models.Product, error) {
	var p models.Product
	err := db.First(&p, id).Error
	return p, err
}

// FindActiveByID returns the product only if it is live and active.
func (r *ProductRepository) FindActiveByID(db *gorm.DB, id uint) (models.Product, error) {
	var p models.Product
	err := db.Where("active = ?", true).First(&p, id).Error
	return p, err
}

// FindActiveBySlug looks up an active product by its URL slug.
func (r *ProductRepository) FindActiveBySlug(db *gorm.DB, slug string) (models.Product, error) {
	var p models.Product
	err := db.Where("slug = ? AND active = ?", slug, true).First(&p).Error
	return p, err
}

// ListActive returns one page of active products, newest first.
func (r *ProductRepository) ListActive(db *gorm.DB, p orm.Pagination) ([]models.Product, int64, error) {
	q := db.Model(&models.Product{}).Where("active = ?", true)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var ps []models.Product
	err := q.Order("created_at desc, id desc").Scopes(orm.Paginate(p)).Find(&ps).Error
	return ps, total, err
}

// Create persists a new product.
func (r *ProductRepository) Create(db *gorm.DB, p *models.Product) error {
	return db.Create(p).Error
}

// Save persists every field of an existing product.
func (r *ProductRepository) Save(db *gorm.DB, p *models.Product) error {
	return db.Save(p).Error
}

// DecrementStock runs the single conditional write
//
//	UPDATE products SET stock = stock - q WHERE id = ? AND stock >= q
//
// and returns ErrStockConflict when it affects no row. Stock can therefore
// never go below zero, however many placements race on the same product.
func (r *ProductRepository) DecrementStock(db *gorm.DB, id uint, qty int) error {
	res := db.Model(&models.Product{}).
		Where("id = ? AND stock >= ?", id, qty).
		Update("stock", gorm.Expr("stock - ?", qty))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrStockConflict
	}
	return nil
}

// IncrementStock returns qty units to a product, including a soft-deleted one.
func (r *ProductRepository) IncrementStock(db *gorm.DB, id uint, qty int) error {
	return db.Unscoped().Model(&models.Product{}).
		Where("id = ?", id).
		Update("stock", gorm.Expr("stock + ?", qty)).Error
}
