package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/shashiranjanraj/storefront/app/models"
	"github.com/shashiranjanraj/storefront/app/repositories"
	"github.com/shashiranjanraj/storefront/pkg/auth"
	"github.com/shashiranjanraj/storefront/pkg/database"
	"github.com/shashiranjanraj/storefront/pkg/event"
	"github.com/shashiranjanraj/storefront/pkg/logger"
	"github.com/shashiranjanraj/storefront/pkg/metrics"
	"github.com/shashiranjanraj/storefront/pkg/orm"
)

const maxOrderNumberAttempts = 5

// PlaceOrderInput is the checkout request body.
type PlaceOrderInput struct {
	ShippingAddress models.Address `json:"shippingAddress"`
	PaymentMethod   string         `json:"paymentMethod" validate:"required,max=50"`
	Notes           string         `json:"notes"         validate:"max=2000"`
}

// UpdateStatusInput is the admin status change body; at least one field is set.
type UpdateStatusInput struct {
	Status        *models.OrderStatus   `json:"status"`
	PaymentStatus *models.PaymentStatus `json:"paymentStatus"`
}

type OrderService struct {
	db       *database.Database
	carts    *repositories.CartRepository
	products *repositories.ProductRepository
	orders   *repositories.OrderRepository
	events   *event.Dispatcher

	newOrderNumber func() string
}

func NewOrderService(
	db *database.Database,
	carts *repositories.CartRepository,
	products *repositories.ProductRepository,
	orders *repositories.OrderRepository,
	events *event.Dispatcher,
) *OrderService {
	return &OrderService{
		db:             db,
		carts:          carts,
		products:       products,
		orders:         orders,
		events:         events,
		newOrderNumber: NewOrderNumber,
	}
}

// ─── Placement ────────────────────────────────────────────────────────────────

// PlaceOrder turns the user's cart into a pending order. Validation, the
// order and item inserts, the conditional stock decrements and the cart
// clear all run in one transaction; any failure leaves no trace.
func (s *OrderService) PlaceOrder(ctx context.Context, userID uint, in PlaceOrderInput) (models.Order, error) {
	log := logger.WithCtx(ctx)

	if err := validateInput(in); err != nil {
		return models.Order{}, err
	}

	var order models.Order
	err := s.db.Transaction(ctx, func(tx *gorm.DB) error {
		lines, err := s.carts.ListWithProducts(tx, userID)
		if err != nil {
			return err
		}
		if len(lines) == 0 {
			return ErrEmptyCart
		}

		// Every line is checked before the first write.
		lineTotals := make([]decimal.Decimal, len(lines))
		for i, l := range lines {
			if l.Product == nil || !l.Product.Active {
				return fmt.Errorf("%w (product #%d)", ErrProductMissing, l.ProductID)
			}
			if l.Product.Stock < l.Quantity {
				return insufficient(*l.Product)
			}
			lineTotals[i] = LineTotal(l.Product.Price, l.Quantity)
		}

		totals := Price(lineTotals)
		order = models.Order{
			UserID:          &userID,
			Status:          models.StatusPending,
			PaymentStatus:   models.PaymentPending,
			PaymentMethod:   in.PaymentMethod,
			Subtotal:        totals.Subtotal,
			Tax:             totals.Tax,
			Shipping:        totals.Shipping,
			Discount:        totals.Discount,
			Total:           totals.Total,
			ShippingAddress: in.ShippingAddress,
			Notes:           in.Notes,
		}
		if err := s.insertWithUniqueNumber(ctx, tx, &order); err != nil {
			return err
		}

		order.Items = make([]models.OrderItem, 0, len(lines))
		for i, l := range lines {
			pid := l.Product.ID
			item := models.OrderItem{
				OrderID:      order.ID,
				ProductID:    &pid,
				ProductName:  l.Product.Name,
				ProductImage: l.Product.Image,
				UnitPrice:    l.Product.Price,
				Quantity:     l.Quantity,
				Total:        lineTotals[i],
			}
			if err := s.orders.CreateItem(tx, &item); err != nil {
				return err
			}

			// Another checkout may have taken the stock since the read above.
			if err := s.products.DecrementStock(tx, pid, l.Quantity); err != nil {
				if errors.Is(err, repositories.ErrStockConflict) {
					return fmt.Errorf("%w for %s", ErrInsufficientStock, l.Product.Name)
				}
				return err
			}
			order.Items = append(order.Items, item)
		}

		return s.carts.Clear(tx, userID)
	})
	if err != nil {
		reason := placementFailureReason(err)
		metrics.OrderPlacementFailures.WithLabelValues(reason).Inc()
		if reason == "internal" {
			log.Error("order placement failed", "user_id", userID, "error", err)
		} else {
			log.Warn("order rejected", "user_id", userID, "reason", reason, "error", err)
		}
		return models.Order{}, err
	}

	metrics.OrdersPlaced.Inc()
	metrics.OrderValue.Observe(order.Total.InexactFloat64())
	log.Info("order placed", "order_number", order.OrderNumber, "user_id", userID, "total", order.Total.StringFixed(2))

	s.events.Fire(ctx, EventOrderPlaced, OrderEvent{Name: EventOrderPlaced, Order: order})
	return order, nil
}

// insertWithUniqueNumber inserts the header under a fresh order number,
// retrying inside a savepoint when the unique index reports a collision.
func (s *OrderService) insertWithUniqueNumber(ctx context.Context, tx *gorm.DB, order *models.Order) error {
	for attempt := 1; attempt <= maxOrderNumberAttempts; attempt++ {
		order.ID = 0
		order.OrderNumber = s.newOrderNumber()

		err := tx.Transaction(func(sp *gorm.DB) error {
			return s.orders.Create(sp, order)
		})
		if err == nil {
			return nil
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return err
		}
		logger.WithCtx(ctx).Warn("order number collision, retrying", "order_number", order.OrderNumber, "attempt", attempt)
	}
	return fmt.Errorf("order number still colliding after %d attempts", maxOrderNumberAttempts)
}

func placementFailureReason(err error) string {
	switch {
	case errors.Is(err, ErrValidation):
		return "validation"
	case errors.Is(err, ErrEmptyCart):
		return "empty_cart"
	case errors.Is(err, ErrProductMissing):
		return "product_missing"
	case errors.Is(err, ErrInsufficientStock):
		return "insufficient_stock"
	default:
		return "internal"
	}
}

// ─── Cancellation ─────────────────────────────────────────────────────────────

// CancelOrder cancels a pending or processing order and returns its stock.
// Customers may only cancel their own orders; admins may cancel any.
func (s *OrderService) CancelOrder(ctx context.Context, actor auth.Identity, orderID uint) (models.Order, error) {
	var order models.Order
	err := s.db.Transaction(ctx, func(tx *gorm.DB) error {
		var err error
		order, err = s.cancelInTx(tx, orderID, ownerScope(actor))
		return err
	})
	if err != nil {
		return models.Order{}, s.logOrderError(ctx, "order cancellation failed", orderID, err)
	}

	s.afterCancel(ctx, order)
	return order, nil
}

// cancelInTx flips the status first: the conditional update is the claim, so
// of two concurrent cancels only the winner restores stock.
func (s *OrderService) cancelInTx(tx *gorm.DB, orderID uint, owner *uint) (models.Order, error) {
	order, err := s.orders.Find(tx, orderID, owner)
	if err != nil {
		return models.Order{}, notFound("order", err)
	}
	if !order.Status.Cancellable() {
		return models.Order{}, fmt.Errorf("%w: cannot cancel an order that is %s", ErrInvalidState, order.Status)
	}

	won, err := s.orders.MarkCancelled(tx, order.ID)
	if err != nil {
		return models.Order{}, err
	}
	if !won {
		return models.Order{}, fmt.Errorf("%w: order was changed concurrently", ErrInvalidState)
	}

	for _, it := range order.Items {
		if it.ProductID == nil {
			continue
		}
		if err := s.products.IncrementStock(tx, *it.ProductID, it.Quantity); err != nil {
			return models.Order{}, err
		}
	}

	order.Status = models.StatusCancelled
	return order, nil
}

func (s *OrderService) afterCancel(ctx context.Context, order models.Order) {
	metrics.OrdersCancelled.Inc()
	logger.WithCtx(ctx).Info("order cancelled", "order_number", order.OrderNumber)
	s.events.Fire(ctx, EventOrderCancelled, OrderEvent{Name: EventOrderCancelled, Order: order})
}

// ─── Queries ──────────────────────────────────────────────────────────────────

// ListOrders pages through orders newest first. Admins see every order,
// customers only their own.
func (s *OrderService) ListOrders(ctx context.Context, actor auth.Identity, page, limit int) (orm.Page[models.Order], error) {
	p := orm.NewPagination(page, limit)

	orders, total, err := s.orders.List(s.db.Conn(ctx), ownerScope(actor), p)
	if err != nil {
		return orm.Page[models.Order]{}, err
	}
	return orm.NewPage(orders, p.WithTotal(total)), nil
}

// GetOrder returns one order with items. Another customer's order is NotFound.
func (s *OrderService) GetOrder(ctx context.Context, actor auth.Identity, orderID uint) (models.Order, error) {
	order, err := s.orders.Find(s.db.Conn(ctx), orderID, ownerScope(actor))
	if err != nil {
		return models.Order{}, notFound("order", err)
	}
	return order, nil
}

// ─── Admin status update ──────────────────────────────────────────────────────

// UpdateStatus applies an admin status and/or payment-status change. Status
// changes follow the order state machine; cancelled goes through the
// cancellation flow so stock is restored. Re-sending the current status is a
// no-op for that field.
func (s *OrderService) UpdateStatus(ctx context.Context, orderID uint, in UpdateStatusInput) (models.Order, error) {
	if in.Status == nil && in.PaymentStatus == nil {
		return models.Order{}, validationError("status or paymentStatus is required")
	}
	if in.Status != nil && !in.Status.Valid() {
		return models.Order{}, validationError("unknown status %q", *in.Status)
	}
	if in.PaymentStatus != nil && !in.PaymentStatus.Valid() {
		return models.Order{}, validationError("unknown paymentStatus %q", *in.PaymentStatus)
	}

	var (
		order       models.Order
		previous    models.OrderStatus
		prevPayment models.PaymentStatus
		cancelled   bool
	)
	err := s.db.Transaction(ctx, func(tx *gorm.DB) error {
		current, err := s.orders.Find(tx, orderID, nil)
		if err != nil {
			return notFound("order", err)
		}
		previous, prevPayment = current.Status, current.PaymentStatus

		status := in.Status
		if status != nil && *status == current.Status {
			status = nil
		}
		if status != nil && !current.Status.CanTransitionTo(*status) {
			return fmt.Errorf("%w: cannot move order from %s to %s", ErrInvalidState, current.Status, *status)
		}

		if status != nil && *status == models.StatusCancelled {
			if _, err := s.cancelInTx(tx, orderID, nil); err != nil {
				return err
			}
			cancelled = true
			current.Status = models.StatusCancelled
			status = nil
		}

		won, err := s.orders.UpdateStatus(tx, orderID, current.Status, status, in.PaymentStatus)
		if err != nil {
			return err
		}
		if !won {
			return fmt.Errorf("%w: order was changed concurrently", ErrInvalidState)
		}

		order, err = s.orders.Find(tx, orderID, nil)
		return err
	})
	if err != nil {
		return models.Order{}, s.logOrderError(ctx, "order status update failed", orderID, err)
	}

	if cancelled {
		s.afterCancel(ctx, order)
	}
	if order.Status != previous {
		logger.WithCtx(ctx).Info("order status changed", "order_number", order.OrderNumber, "from", previous, "to", order.Status)
	}
	if order.Status != previous || order.PaymentStatus != prevPayment {
		s.events.Fire(ctx, EventOrderStatusChanged, OrderEvent{Name: EventOrderStatusChanged, Order: order, PreviousStatus: previous})
	}
	return order, nil
}

// ownerScope is nil for admins, who see every order.
func ownerScope(actor auth.Identity) *uint {
	if actor.IsAdmin() {
		return nil
	}
	id := actor.UserID
	return &id
}

func (s *OrderService) logOrderError(ctx context.Context, msg string, orderID uint, err error) error {
	switch {
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrInvalidState), errors.Is(err, ErrValidation):
		logger.WithCtx(ctx).Warn(msg, "order_id", orderID, "error", err)
	default:
		logger.WithCtx(ctx).Error(msg, "order_id", orderID, "error", err)
	}
	return err
}
