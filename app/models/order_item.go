package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderItem snapshots a product at purchase time. ProductID is nulled if the
// product row is later removed; the snapshot fields stay.
type OrderItem struct {
	ID           uint            `gorm:"primaryKey"                  json:"id"`
	OrderID      uint            `gorm:"not null;index"              json:"orderId"`
	ProductID    *uint           `gorm:"index"                       json:"productId"`
	ProductName  string          `gorm:"size:255;not null"           json:"productName"`
	ProductImage string          `gorm:"size:512"                    json:"productImage"`
	UnitPrice    decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"unitPrice"`
	Quantity     int             `gorm:"not null"                    json:"quantity"`
	Total        decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"total"`
	CreatedAt    time.Time       `json:"createdAt"`

	Product *Product `gorm:"constraint:OnDelete:SET NULL" json:"-"`
}
