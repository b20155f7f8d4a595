package services

import (
	"context"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/storefront/app/models"
	"github.com/shashiranjanraj/storefront/app/repositories"
	"github.com/shashiranjanraj/storefront/pkg/auth"
	"github.com/shashiranjanraj/storefront/pkg/cache"
	"github.com/shashiranjanraj/storefront/pkg/database"
	"github.com/shashiranjanraj/storefront/pkg/event"
)

type harness struct {
	t       *testing.T
	ctx     context.Context
	db      *database.Database
	events  *event.Dispatcher
	cache   *cache.MemoryStore
	carts   *CartService
	orders  *OrderService
	catalog *CatalogService
}

var dsnName = strings.NewReplacer("/", "_", " ", "_", "#", "_")

func newHarness(t *testing.T) *harness {
	t.Helper()

	db, err := database.Open("sqlite", "file:"+dsnName.Replace(t.Name())+"?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	ctx := context.Background()
	require.NoError(t, db.Conn(ctx).AutoMigrate(
		&models.User{}, &models.Product{}, &models.CartItem{}, &models.Order{}, &models.OrderItem{},
	))

	productRepo := repositories.NewProductRepository()
	cartRepo := repositories.NewCartRepository()
	orderRepo := repositories.NewOrderRepository()
	events := event.New()
	store := cache.NewMemory()

	return &harness{
		t:       t,
		ctx:     ctx,
		db:      db,
		events:  events,
		cache:   store,
		carts:   NewCartService(db, cartRepo, productRepo),
		orders:  NewOrderService(db, cartRepo, productRepo, orderRepo, events),
		catalog: NewCatalogService(db, productRepo, store),
	}
}

func (h *harness) user(email string) auth.Identity {
	h.t.Helper()
	u := models.User{Name: email, Email: email, Role: models.RoleCustomer}
	require.NoError(h.t, h.db.Conn(h.ctx).Create(&u).Error)
	return auth.Identity{UserID: u.ID, Role: auth.RoleCustomer}
}

func (h *harness) product(slug, price string, stock int) models.Product {
	h.t.Helper()
	p := models.Product{
		Name:   slug,
		Slug:   slug,
		Price:  decimal.RequireFromString(price),
		Stock:  stock,
		Active: true,
	}
	require.NoError(h.t, h.db.Conn(h.ctx).Create(&p).Error)
	return p
}

func (h *harness) stock(id uint) int {
	h.t.Helper()
	var p models.Product
	require.NoError(h.t, h.db.Conn(h.ctx).Unscoped().First(&p, id).Error)
	return p.Stock
}

func (h *harness) count(model any) int64 {
	h.t.Helper()
	var n int64
	require.NoError(h.t, h.db.Conn(h.ctx).Model(model).Count(&n).Error)
	return n
}

func (h *harness) addToCart(userID, productID uint, qty int) {
	h.t.Helper()
	_, err := h.carts.AddItem(h.ctx, userID, productID, qty)
	require.NoError(h.t, err)
}

var admin = auth.Identity{UserID: 9999, Role: auth.RoleAdmin}

func checkout() PlaceOrderInput {
	return PlaceOrderInput{
		ShippingAddress: models.Address{
			Name:       "Ada Lovelace",
			Email:      "ada@example.com",
			Phone:      "+44 20 7946 0000",
			Street:     "12 St James's Square",
			City:       "London",
			PostalCode: "SW1Y 4JH",
			Country:    "GB",
		},
		PaymentMethod: "card",
	}
}
