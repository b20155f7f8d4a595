package controllers

import (
	"github.com/shashiranjanraj/storefront/app/services"
	"github.com/shashiranjanraj/storefront/pkg/ctx"
)

type AddCartItemInput struct {
	ProductID uint `json:"productId" validate:"required"`
	Quantity  *int `json:"quantity"  validate:"omitempty,min=1"`
}

type UpdateCartItemInput struct {
	Quantity int `json:"quantity" validate:"required,min=1"`
}

type CartController struct {
	carts *services.CartService
}

func NewCartController(carts *services.CartService) *CartController {
	return &CartController{carts: carts}
}

// Show handles GET /api/cart.
func (cc *CartController) Show(c *ctx.Context) {
	id, ok := c.Identity()
	if !ok {
		return
	}

	cart, err := cc.carts.GetCart(c.Context(), id.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Success(cart)
}

// Add handles POST /api/cart/add. Quantity defaults to 1.
func (cc *CartController) Add(c *ctx.Context) {
	id, ok := c.Identity()
	if !ok {
		return
	}

	var in AddCartItemInput
	if !c.BindJSON(&in) {
		return
	}
	qty := 1
	if in.Quantity != nil {
		qty = *in.Quantity
	}

	item, err := cc.carts.AddItem(c.Context(), id.UserID, in.ProductID, qty)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Success(item)
}

// Update handles PUT /api/cart/{itemId}.
func (cc *CartController) Update(c *ctx.Context) {
	id, ok := c.Identity()
	if !ok {
		return
	}
	itemID, ok := c.ParamUint("itemId")
	if !ok {
		return
	}

	var in UpdateCartItemInput
	if !c.BindJSON(&in) {
		return
	}

	item, err := cc.carts.UpdateItem(c.Context(), id.UserID, itemID, in.Quantity)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Success(item)
}

// Remove handles DELETE /api/cart/{itemId}.
func (cc *CartController) Remove(c *ctx.Context) {
	id, ok := c.Identity()
	if !ok {
		return
	}
	itemID, ok := c.ParamUint("itemId")
	if !ok {
		return
	}

	if err := cc.carts.RemoveItem(c.Context(), id.UserID, itemID); err != nil {
		respondError(c, err)
		return
	}
	c.Message("Item removed from cart")
}

// Clear handles DELETE /api/cart.
func (cc *CartController) Clear(c *ctx.Context) {
	id, ok := c.Identity()
	if !ok {
		return
	}

	if err := cc.carts.ClearCart(c.Context(), id.UserID); err != nil {
		respondError(c, err)
		return
	}
	c.Message("Cart cleared")
}
