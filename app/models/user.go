package models

import "time"

const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

// User is the single canonical account table. Credentials live with the
// identity provider; this row only anchors carts and orders.
type User struct {
	ID        uint      `gorm:"primaryKey"                    json:"id"`
	Name      string    `gorm:"size:255;not null"             json:"name"`
	Email     string    `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Role      string    `gorm:"size:20;not null"              json:"role"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
