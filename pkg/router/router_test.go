package router_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/storefront/pkg/router"
)

func noop(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusNoContent) }

func TestGroup_NamedRoutesAndURL(t *testing.T) {
	r := router.New()
	api := r.Group("/api")
	cart := api.Group("cart")
	cart.Get("/", "cart.show", noop)
	cart.Put("/{itemId}", "cart.update", noop)
	cart.Delete("/{itemId}", "cart.remove", noop)

	path, ok := r.Path("cart.update")
	require.True(t, ok)
	assert.Equal(t, "/api/cart/{itemId}", path)

	url, err := r.URL("cart.remove", map[string]string{"itemId": "9"})
	require.NoError(t, err)
	assert.Equal(t, "/api/cart/9", url)

	_, err = r.URL("cart.remove", nil)
	assert.Error(t, err)

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/cart/9", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestGroup_MiddlewareAppliesInOrder(t *testing.T) {
	var trail []string
	mw := func(tag string) router.Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				trail = append(trail, tag)
				next.ServeHTTP(w, r)
			})
		}
	}

	r := router.New()
	r.Group("/api", mw("group")).Post("/orders", "orders.store", noop, mw("route"))

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/orders", nil))
	assert.Equal(t, []string{"group", "route"}, trail)
}

func TestRoutes_SortedTable(t *testing.T) {
	r := router.New()
	r.Post("/api/orders", "orders.store", noop)
	r.Get("/api/orders", "orders.index", noop)
	r.Get("/health", "", noop)

	assert.Equal(t, []router.RouteInfo{
		{Method: http.MethodGet, Path: "/api/orders", Name: "orders.index"},
		{Method: http.MethodPost, Path: "/api/orders", Name: "orders.store"},
		{Method: http.MethodGet, Path: "/health", Name: ""},
	}, r.Routes())
}

func TestNotFound_UsesEnvelope(t *testing.T) {
	r := router.New()
	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"success":false,"error":"Not found"}`, rec.Body.String())
}
