package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Product is a catalogue entry and the inventory ledger row for its stock.
// A soft-deleted or inactive product is treated as missing everywhere except
// IncrementStock, which still restores stock on cancellation.
type Product struct {
	ID          uint            `gorm:"primaryKey"                                       json:"id"`
	Name        string          `gorm:"size:255;not null"                                json:"name"`
	Slug        string          `gorm:"size:255;not null;uniqueIndex"                    json:"slug"`
	Description string          `gorm:"type:text"                                        json:"description"`
	Image       string          `gorm:"size:512"                                         json:"image"`
	Price       decimal.Decimal `gorm:"type:decimal(12,2);not null"                      json:"price"`
	Stock       int             `gorm:"not null;default:0;check:chk_products_stock,stock >= 0" json:"stock"`
	Active      bool            `gorm:"not null"                                         json:"active"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
	DeletedAt   gorm.DeletedAt  `gorm:"index" json:"-"`
}
