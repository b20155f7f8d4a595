// Package kernel assembles the storefront HTTP stack: global middleware,
// services, event listeners and routes over the resources the entry point
// opened.
package kernel

import (
	"net/http"

	"github.com/shashiranjanraj/storefront/app/listeners"
	"github.com/shashiranjanraj/storefront/app/repositories"
	"github.com/shashiranjanraj/storefront/app/routes"
	"github.com/shashiranjanraj/storefront/app/services"
	"github.com/shashiranjanraj/storefront/config"
	"github.com/shashiranjanraj/storefront/pkg/cache"
	"github.com/shashiranjanraj/storefront/pkg/database"
	"github.com/shashiranjanraj/storefront/pkg/event"
	"github.com/shashiranjanraj/storefront/pkg/metrics"
	"github.com/shashiranjanraj/storefront/pkg/middleware"
	"github.com/shashiranjanraj/storefront/pkg/publisher"
	"github.com/shashiranjanraj/storefront/pkg/reqid"
	"github.com/shashiranjanraj/storefront/pkg/router"
)

// Deps are the long-lived resources owned by the caller.
type Deps struct {
	DB        *database.Database
	Cache     cache.Store
	Publisher publisher.Publisher
}

type HTTPKernel struct {
	router *router.Router
}

// NewHTTPKernel builds the router. Nil Cache and Publisher fall back to the
// in-memory store and the no-op publisher.
func NewHTTPKernel(d Deps) *HTTPKernel {
	if d.Cache == nil {
		d.Cache = cache.NewMemory()
	}
	if d.Publisher == nil {
		d.Publisher = publisher.Nop{}
	}

	r := router.New()

	// Global middleware stack (outermost → innermost):
	//  1. Prometheus metrics, outermost for total latency
	//  2. Recovery
	//  3. Request ID, before anything logs
	//  4. Logger
	//  5. CORS
	//  6. Rate limiter
	r.Use(metrics.Middleware())
	r.Use(middleware.Recovery)
	r.Use(reqid.Middleware())
	r.Use(middleware.Logger)
	r.Use(middleware.CORS(middleware.DefaultCORSOptions()))
	r.Use(middleware.RateLimit(config.RateLimitPerMinute()))

	r.Get("/metrics", "metrics", metrics.Handler())

	products := repositories.NewProductRepository()
	carts := repositories.NewCartRepository()
	orders := repositories.NewOrderRepository()

	events := event.New()
	catalog := services.NewCatalogService(d.DB, products, d.Cache)
	listeners.Register(events, catalog, d.Publisher)

	routes.RegisterAPI(r, routes.Services{
		Carts:   services.NewCartService(d.DB, carts, products),
		Orders:  services.NewOrderService(d.DB, carts, products, orders, events),
		Catalog: catalog,
		DB:      d.DB,
	})

	return &HTTPKernel{router: r}
}

func (k *HTTPKernel) Handler() http.Handler { return k.router.Handler() }

// Routes lists every registered route, for `storefront route:list`.
func (k *HTTPKernel) Routes() []router.RouteInfo { return k.router.Routes() }
