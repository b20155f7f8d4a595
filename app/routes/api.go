package routes

import (
	"github.com/shashiranjanraj/storefront/app/controllers"
	"github.com/shashiranjanraj/storefront/app/services"
	"github.com/shashiranjanraj/storefront/pkg/ctx"
	"github.com/shashiranjanraj/storefront/pkg/middleware"
	"github.com/shashiranjanraj/storefront/pkg/rbac"
	"github.com/shashiranjanraj/storefront/pkg/router"
)

// Services is everything the API routes dispatch to.
type Services struct {
	Carts   *services.CartService
	Orders  *services.OrderService
	Catalog *services.CatalogService
	DB      controllers.Pinger
}

func RegisterAPI(r *router.Router, s Services) {
	cart := controllers.NewCartController(s.Carts)
	orders := controllers.NewOrderController(s.Orders)
	products := controllers.NewProductController(s.Catalog)
	health := controllers.NewHealthController(s.DB)

	r.Get("/health", "health", ctx.Wrap(health.Show))

	api := r.Group("/api")
	api.Get("/products", "products.index", ctx.Wrap(products.Index))
	api.Get("/products/{slug}", "products.show", ctx.Wrap(products.Show))

	protected := api.Group("", middleware.Authenticate)

	protected.Get("/cart", "cart.show", ctx.Wrap(cart.Show))
	protected.Post("/cart/add", "cart.add", ctx.Wrap(cart.Add))
	protected.Put("/cart/{itemId}", "cart.update", ctx.Wrap(cart.Update))
	protected.Delete("/cart/{itemId}", "cart.remove", ctx.Wrap(cart.Remove))
	protected.Delete("/cart", "cart.clear", ctx.Wrap(cart.Clear))

	protected.Get("/orders", "orders.index", ctx.Wrap(orders.Index))
	protected.Get("/orders/{id}", "orders.show", ctx.Wrap(orders.Show))
	protected.Post("/orders", "orders.store", ctx.Wrap(orders.Store))
	protected.Post("/orders/{id}/cancel", "orders.cancel", ctx.Wrap(orders.Cancel))

	admin := protected.Group("", rbac.Admin())
	admin.Put("/orders/{id}/status", "orders.status", ctx.Wrap(orders.UpdateStatus))
	admin.Post("/products", "products.store", ctx.Wrap(products.Store))
	admin.Put("/products/{id}", "products.update", ctx.Wrap(products.Update))
}
