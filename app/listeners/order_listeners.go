// Package listeners reacts to order events once their transaction has
// committed. Nothing here can fail a request: errors are logged and dropped.
package listeners

import (
	"context"
	"time"

	"github.com/shashiranjanraj/storefront/app/models"
	"github.com/shashiranjanraj/storefront/app/services"
	"github.com/shashiranjanraj/storefront/pkg/event"
	"github.com/shashiranjanraj/storefront/pkg/logger"
	"github.com/shashiranjanraj/storefront/pkg/publisher"
)

// Invalidator evicts cached catalogue entries; *services.CatalogService satisfies it.
type Invalidator interface {
	InvalidateProducts(ctx context.Context, ids []uint) error
}

// OrderMessage is the JSON body published for every order event.
type OrderMessage struct {
	Type           string               `json:"type"`
	OrderID        uint                 `json:"orderId"`
	OrderNumber    string               `json:"orderNumber"`
	UserID         *uint                `json:"userId"`
	Status         models.OrderStatus   `json:"status"`
	PreviousStatus models.OrderStatus   `json:"previousStatus,omitempty"`
	PaymentStatus  models.PaymentStatus `json:"paymentStatus"`
	Total          string               `json:"total"`
	Items          []MessageItem        `json:"items"`
	OccurredAt     time.Time            `json:"occurredAt"`
}

type MessageItem struct {
	ProductID *uint `json:"productId"`
	Quantity  int   `json:"quantity"`
}

var now = time.Now

// Register wires the cache and publisher listeners onto d.
func Register(d *event.Dispatcher, catalog Invalidator, pub publisher.Publisher) {
	for _, name := range []string{services.EventOrderPlaced, services.EventOrderCancelled, services.EventOrderStatusChanged} {
		d.Listen(name, invalidate(catalog))
		d.Listen(name, publish(pub))
	}
}

func invalidate(catalog Invalidator) event.Handler {
	return func(ctx context.Context, payload any) {
		e, ok := payload.(services.OrderEvent)
		if !ok {
			return
		}
		if err := catalog.InvalidateProducts(ctx, e.ProductIDs()); err != nil {
			logger.WithCtx(ctx).Warn("listeners: cache invalidation failed", "event", e.Name, "order_number", e.Order.OrderNumber, "error", err)
		}
	}
}

func publish(pub publisher.Publisher) event.Handler {
	return func(ctx context.Context, payload any) {
		e, ok := payload.(services.OrderEvent)
		if !ok {
			return
		}
		if err := pub.Publish(ctx, e.Order.OrderNumber, NewOrderMessage(e)); err != nil {
			logger.WithCtx(ctx).Error("listeners: publish failed", "event", e.Name, "order_number", e.Order.OrderNumber, "error", err)
		}
	}
}

// NewOrderMessage flattens an event into its wire form.
func NewOrderMessage(e services.OrderEvent) OrderMessage {
	items := make([]MessageItem, 0, len(e.Order.Items))
	for _, it := range e.Order.Items {
		items = append(items, MessageItem{ProductID: it.ProductID, Quantity: it.Quantity})
	}
	return OrderMessage{
		Type:           e.Name,
		OrderID:        e.Order.ID,
		OrderNumber:    e.Order.OrderNumber,
		UserID:         e.Order.UserID,
		Status:         e.Order.Status,
		PreviousStatus: e.PreviousStatus,
		PaymentStatus:  e.Order.PaymentStatus,
		Total:          e.Order.Total.StringFixed(2),
		Items:          items,
		OccurredAt:     now().UTC(),
	}
}
