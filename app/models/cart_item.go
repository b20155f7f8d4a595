package models

import "time"

// CartItem is one (product, quantity) line of a user's cart. A user holds at
// most one line per product.
type CartItem struct {
	ID        uint      `gorm:"primaryKey"                                             json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_cart_user_product"             json:"userId"`
	ProductID uint      `gorm:"not null;uniqueIndex:idx_cart_user_product;index"       json:"productId"`
	Quantity  int       `gorm:"not null;check:chk_cart_items_quantity,quantity >= 1"   json:"quantity"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	User    *User    `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Product *Product `gorm:"constraint:OnDelete:CASCADE" json:"product,omitempty"`
}
