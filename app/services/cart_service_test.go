package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/storefront/app/models"
)

func TestCart_AddMergesSameProduct(t *testing.T) {
	h := newHarness(t)
	u := h.user("a@example.com")
	p := h.product("p", "2.50", 5)

	first, err := h.carts.AddItem(h.ctx, u.UserID, p.ID, 2)
	require.NoError(t, err)
	second, err := h.carts.AddItem(h.ctx, u.UserID, p.ID, 3)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 5, second.Quantity)
	assert.EqualValues(t, 1, h.count(&models.CartItem{}))

	_, err = h.carts.AddItem(h.ctx, u.UserID, p.ID, 1)
	require.ErrorIs(t, err, ErrInsufficientStock)
	assert.Contains(t, err.Error(), "available: 5")
}

func TestCart_AddRejects(t *testing.T) {
	h := newHarness(t)
	u := h.user("b@example.com")
	p := h.product("p", "1.00", 2)
	hidden := h.product("hidden", "1.00", 2)
	require.NoError(t, h.db.Conn(h.ctx).Model(&hidden).Update("active", false).Error)

	_, err := h.carts.AddItem(h.ctx, u.UserID, p.ID, 0)
	require.ErrorIs(t, err, ErrValidation)

	_, err = h.carts.AddItem(h.ctx, u.UserID, 777, 1)
	require.ErrorIs(t, err, ErrNotFound)

	_, err = h.carts.AddItem(h.ctx, u.UserID, hidden.ID, 1)
	require.ErrorIs(t, err, ErrNotFound)

	_, err = h.carts.AddItem(h.ctx, u.UserID, p.ID, 3)
	require.ErrorIs(t, err, ErrInsufficientStock)
	assert.Zero(t, h.count(&models.CartItem{}))
}

func TestCart_GetSkipsUnavailableProducts(t *testing.T) {
	h := newHarness(t)
	u := h.user("c@example.com")
	p := h.product("p", "20.00", 5)
	q := h.product("q", "100.00", 1)
	gone := h.product("gone", "3.00", 4)
	h.addToCart(u.UserID, p.ID, 2)
	h.addToCart(u.UserID, q.ID, 1)
	h.addToCart(u.UserID, gone.ID, 1)
	require.NoError(t, h.db.Conn(h.ctx).Delete(&models.Product{}, gone.ID).Error)

	cart, err := h.carts.GetCart(h.ctx, u.UserID)
	require.NoError(t, err)
	require.Len(t, cart.Items, 2)
	assert.Equal(t, "140.00", cart.Subtotal.StringFixed(2))
	assert.Equal(t, 3, cart.ItemCount)
	assert.Equal(t, "40.00", cart.Items[0].LineTotal.StringFixed(2))
	assert.Equal(t, "p", cart.Items[0].Product.Name)

	empty, err := h.carts.GetCart(h.ctx, h.user("d@example.com").UserID)
	require.NoError(t, err)
	assert.NotNil(t, empty.Items)
	assert.Empty(t, empty.Items)
	assert.Equal(t, "0.00", empty.Subtotal.StringFixed(2))
}

func TestCart_UpdateItem(t *testing.T) {
	h := newHarness(t)
	u := h.user("e@example.com")
	other := h.user("f@example.com")
	p := h.product("p", "1.00", 4)
	line, err := h.carts.AddItem(h.ctx, u.UserID, p.ID, 1)
	require.NoError(t, err)

	got, err := h.carts.UpdateItem(h.ctx, u.UserID, line.ID, 4)
	require.NoError(t, err)
	assert.Equal(t, 4, got.Quantity)

	_, err = h.carts.UpdateItem(h.ctx, u.UserID, line.ID, 5)
	require.ErrorIs(t, err, ErrInsufficientStock)

	_, err = h.carts.UpdateItem(h.ctx, u.UserID, line.ID, 0)
	require.ErrorIs(t, err, ErrValidation)

	_, err = h.carts.UpdateItem(h.ctx, other.UserID, line.ID, 1)
	require.ErrorIs(t, err, ErrNotFound)

	cart, err := h.carts.GetCart(h.ctx, u.UserID)
	require.NoError(t, err)
	assert.Equal(t, 4, cart.ItemCount)
}

func TestCart_RemoveAndClearAreIdempotent(t *testing.T) {
	h := newHarness(t)
	u := h.user("g@example.com")
	other := h.user("h@example.com")
	p := h.product("p", "1.00", 9)
	q := h.product("q", "1.00", 9)
	line, err := h.carts.AddItem(h.ctx, u.UserID, p.ID, 1)
	require.NoError(t, err)
	h.addToCart(u.UserID, q.ID, 1)
	h.addToCart(other.UserID, p.ID, 1)

	require.NoError(t, h.carts.RemoveItem(h.ctx, other.UserID, line.ID))
	assert.EqualValues(t, 3, h.count(&models.CartItem{}))

	require.NoError(t, h.carts.RemoveItem(h.ctx, u.UserID, line.ID))
	require.NoError(t, h.carts.RemoveItem(h.ctx, u.UserID, line.ID))
	assert.EqualValues(t, 2, h.count(&models.CartItem{}))

	require.NoError(t, h.carts.ClearCart(h.ctx, u.UserID))
	require.NoError(t, h.carts.ClearCart(h.ctx, u.UserID))
	assert.EqualValues(t, 1, h.count(&models.CartItem{}))
}
