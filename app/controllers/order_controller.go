package controllers

import (
	"github.com/shashiranjanraj/storefront/app/services"
	"github.com/shashiranjanraj/storefront/pkg/ctx"
	"github.com/shashiranjanraj/storefront/pkg/orm"
)

type OrderController struct {
	orders *services.OrderService
}

func NewOrderController(orders *services.OrderService) *OrderController {
	return &OrderController{orders: orders}
}

// Index handles GET /api/orders?page&limit.
func (oc *OrderController) Index(c *ctx.Context) {
	id, ok := c.Identity()
	if !ok {
		return
	}

	page, err := oc.orders.ListOrders(c.Context(), id,
		c.QueryInt("page", orm.DefaultPage), c.QueryInt("limit", orm.DefaultLimit))
	if err != nil {
		respondError(c, err)
		return
	}
	c.Success(page)
}

// Show handles GET /api/orders/{id}.
func (oc *OrderController) Show(c *ctx.Context) {
	id, ok := c.Identity()
	if !ok {
		return
	}
	orderID, ok := c.ParamUint("id")
	if !ok {
		return
	}

	order, err := oc.orders.GetOrder(c.Context(), id, orderID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Success(order)
}

// Store handles POST /api/orders.
func (oc *OrderController) Store(c *ctx.Context) {
	id, ok := c.Identity()
	if !ok {
		return
	}

	var in services.PlaceOrderInput
	if !c.BindJSON(&in) {
		return
	}

	order, err := oc.orders.PlaceOrder(c.Context(), id.UserID, in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Created(order)
}

// Cancel handles POST /api/orders/{id}/cancel.
func (oc *OrderController) Cancel(c *ctx.Context) {
	id, ok := c.Identity()
	if !ok {
		return
	}
	orderID, ok := c.ParamUint("id")
	if !ok {
		return
	}

	order, err := oc.orders.CancelOrder(c.Context(), id, orderID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Success(order)
}

// UpdateStatus handles PUT /api/orders/{id}/status (admin).
func (oc *OrderController) UpdateStatus(c *ctx.Context) {
	orderID, ok := c.ParamUint("id")
	if !ok {
		return
	}

	var in services.UpdateStatusInput
	if !c.BindJSON(&in) {
		return
	}

	order, err := oc.orders.UpdateStatus(c.Context(), orderID, in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Success(order)
}
