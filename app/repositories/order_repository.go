package repositories

import (
	"gorm.io/gorm"

	"github.com/shashiranjanraj/storefront/app/models"
	"github.com/shashiranjanraj/storefront/pkg/orm"
)

// OrderRepository persists the order aggregate.
type OrderRepository struct{}

func NewOrderRepository() *OrderRepository {
	return &OrderRepository{}
}

// Create inserts the order header only; items are added with CreateItem.
// A colliding order number surfaces as gorm.ErrDuplicatedKey.
func (r *OrderRepository) Create(db *gorm.DB, o *models.Order) error {
	return db.Omit("User", "Items").Create(o).Error
}

// CreateItem inserts one order line.
func (r *OrderRepository) CreateItem(db *gorm.DB, item *models.OrderItem) error {
	return db.Omit("Product").Create(item).Error
}

// Find loads an order with its items. A non-nil ownerID restricts the lookup
// to that user's orders.
func (r *OrderRepository) Find(db *gorm.DB, id uint, ownerID *uint) (models.Order, error) {
	var o models.Order
	q := db.Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("id") })
	if ownerID != nil {
		q = q.Where("user_id = ?", *ownerID)
	}
	err := q.First(&o, id).Error
	return o, err
}

// List returns a page of orders with items, newest first. A non-nil ownerID
// restricts the listing to that user.
func (r *OrderRepository) List(db *gorm.DB, ownerID *uint, p orm.Pagination) ([]models.Order, int64, error) {
	q := db.Model(&models.Order{})
	if ownerID != nil {
		q = q.Where("user_id = ?", *ownerID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var orders []models.Order
	err := q.Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("id") }).
		Order("created_at desc, id desc").
		Scopes(orm.Paginate(p)).
		Find(&orders).Error
	return orders, total, err
}

// MarkCancelled flips a cancellable order to cancelled and reports whether
// this call won. Two concurrent cancels cannot both see 1.
func (r *OrderRepository) MarkCancelled(db *gorm.DB, id uint) (bool, error) {
	res := db.Model(&models.Order{}).
		Where("id = ? AND status IN ?", id, []models.OrderStatus{models.StatusPending, models.StatusProcessing}).
		Update("status", models.StatusCancelled)
	return res.RowsAffected == 1, res.Error
}

// UpdateStatus writes status and/or payment status. The status write is
// conditional on the current value so a concurrent change is not overwritten.
func (r *OrderRepository) UpdateStatus(db *gorm.DB, id uint, from models.OrderStatus, status *models.OrderStatus, payment *models.PaymentStatus) (bool, error) {
	fields := map[string]any{}
	if status != nil {
		fields["status"] = *status
	}
	if payment != nil {
		fields["payment_status"] = *payment
	}
	if len(fields) == 0 {
		return true, nil
	}

	res := db.Model(&models.Order{}).Where("id = ? AND status = ?", id, from).Updates(fields)
	return res.RowsAffected == 1, res.Error
}
