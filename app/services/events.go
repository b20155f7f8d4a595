package services

import "github.com/shashiranjanraj/storefront/app/models"

// Domain events fired after the owning transaction commits.
const (
	EventOrderPlaced        = "order.placed"
	EventOrderCancelled     = "order.cancelled"
	EventOrderStatusChanged = "order.status_changed"
)

// OrderEvent is the payload of every order.* event.
type OrderEvent struct {
	Name           string
	Order          models.Order
	PreviousStatus models.OrderStatus
}

// ProductIDs lists the distinct live product references of the order.
func (e OrderEvent) ProductIDs() []uint {
	seen := make(map[uint]bool, len(e.Order.Items))
	ids := make([]uint, 0, len(e.Order.Items))
	for _, it := range e.Order.Items {
		if it.ProductID == nil || seen[*it.ProductID] {
			continue
		}
		seen[*it.ProductID] = true
		ids = append(ids, *it.ProductID)
	}
	return ids
}
