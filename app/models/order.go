package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	StatusPending    OrderStatus = "pending"
	StatusProcessing OrderStatus = "processing"
	StatusShipped    OrderStatus = "shipped"
	StatusDelivered  OrderStatus = "delivered"
	StatusCancelled  OrderStatus = "cancelled"
	StatusRefunded   OrderStatus = "refunded"
)

// fulfilment is the forward-only happy path.
var fulfilment = map[OrderStatus]int{
	StatusPending:    0,
	StatusProcessing: 1,
	StatusShipped:    2,
	StatusDelivered:  3,
}

func (s OrderStatus) Valid() bool {
	switch s {
	case StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled, StatusRefunded:
		return true
	}
	return false
}

// Cancellable reports whether stock can still be returned by cancelling.
func (s OrderStatus) Cancellable() bool {
	return s == StatusPending || s == StatusProcessing
}

// CanTransitionTo reports whether s → next is allowed:
// forward along pending → processing → shipped → delivered (steps may be
// skipped), pending|processing → cancelled, and any other state →
// refunded, including a cancelled order whose payment is returned.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	if s == next {
		return false
	}
	switch next {
	case StatusCancelled:
		return s.Cancellable()
	case StatusRefunded:
		return true
	}

	from, ok := fulfilment[s]
	if !ok {
		return false
	}
	to, ok := fulfilment[next]
	return ok && to > from
}

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
	PaymentRefunded  PaymentStatus = "refunded"
)

func (p PaymentStatus) Valid() bool {
	switch p {
	case PaymentPending, PaymentCompleted, PaymentFailed, PaymentRefunded:
		return true
	}
	return false
}

// Address is the shipping address captured at checkout.
type Address struct {
	Name       string `gorm:"size:255" json:"name"       validate:"required,max=255"`
	Email      string `gorm:"size:255" json:"email"      validate:"required,email"`
	Phone      string `gorm:"size:50"  json:"phone"      validate:"required,max=50"`
	Street     string `gorm:"size:255" json:"street"     validate:"required,max=255"`
	City       string `gorm:"size:100" json:"city"       validate:"required,max=100"`
	State      string `gorm:"size:100" json:"state"      validate:"omitempty,max=100"`
	PostalCode string `gorm:"size:20"  json:"postalCode" validate:"required,max=20"`
	Country    string `gorm:"size:100" json:"country"    validate:"required,max=100"`
}

// Order is the header of an order aggregate. Orders are never deleted.
type Order struct {
	ID              uint            `gorm:"primaryKey"                      json:"id"`
	UserID          *uint           `gorm:"index"                           json:"userId"`
	OrderNumber     string          `gorm:"size:40;not null;uniqueIndex"    json:"orderNumber"`
	Status          OrderStatus     `gorm:"size:20;not null;index"          json:"status"`
	PaymentStatus   PaymentStatus   `gorm:"size:20;not null"                json:"paymentStatus"`
	PaymentMethod   string          `gorm:"size:50;not null"                json:"paymentMethod"`
	Subtotal        decimal.Decimal `gorm:"type:decimal(12,2);not null"     json:"subtotal"`
	Tax             decimal.Decimal `gorm:"type:decimal(12,2);not null"     json:"tax"`
	Shipping        decimal.Decimal `gorm:"type:decimal(12,2);not null"     json:"shipping"`
	Discount        decimal.Decimal `gorm:"type:decimal(12,2);not null"     json:"discount"`
	Total           decimal.Decimal `gorm:"type:decimal(12,2);not null"     json:"total"`
	ShippingAddress Address         `gorm:"embedded;embeddedPrefix:shipping_" json:"shippingAddress"`
	Notes           string          `gorm:"type:text"                       json:"notes,omitempty"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`

	User  *User       `gorm:"constraint:OnDelete:SET NULL" json:"-"`
	Items []OrderItem `gorm:"constraint:OnDelete:CASCADE"  json:"items"`
}
