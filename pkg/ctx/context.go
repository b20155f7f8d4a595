// Package ctx provides a gin.Context-inspired request context for handlers.
//
// Instead of accepting (http.ResponseWriter, *http.Request), a handler
// receives a single *Context with helper methods:
//
//	func (oc *OrderController) Show(c *ctx.Context) {
//	    id, ok := c.ParamUint("id")
//	    if !ok {
//	        return // 400 already sent
//	    }
//	    c.Success(order)
//	}
//
//	// Register with ctx.Wrap:
//	api.Get("/orders/{id}", "orders.show", ctx.Wrap(oc.Show))
package ctx

import (
	"context"
	"net/http"
	"strconv"
	"sync"

	"github.com/go-chi/chi/v5"

	"github.com/shashiranjanraj/storefront/pkg/auth"
	"github.com/shashiranjanraj/storefront/pkg/bind"
	"github.com/shashiranjanraj/storefront/pkg/response"
	"github.com/shashiranjanraj/storefront/pkg/validate"
)

// HandlerFunc is the context-aware handler signature.
type HandlerFunc func(c *Context)

// Wrap converts a HandlerFunc to a standard http.HandlerFunc so it can be
// passed to any router method.
func Wrap(h HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := acquire(w, r)
		defer release(c)
		h(c)
	}
}

// ─── Context ──────────────────────────────────────────────────────────────────

// Context wraps a request/response pair and provides a small helper API.
type Context struct {
	W      http.ResponseWriter
	R      *http.Request
	status int // written status code (0 = not written yet)
}

// pool recycles Context objects to reduce GC pressure.
var pool = sync.Pool{
	New: func() any { return &Context{} },
}

func acquire(w http.ResponseWriter, r *http.Request) *Context {
	c := pool.Get().(*Context)
	c.W = w
	c.R = r
	c.status = 0
	return c
}

func release(c *Context) {
	c.W = nil
	c.R = nil
	pool.Put(c)
}

// ─── Request helpers ──────────────────────────────────────────────────────────

// Param returns a URL path parameter (e.g. "/orders/{id}" → c.Param("id")).
func (c *Context) Param(key string) string {
	return chi.URLParam(c.R, key)
}

// ParamUint parses a positive numeric path parameter. On failure it sends a
// 400 and returns false.
func (c *Context) ParamUint(key string) (uint, bool) {
	n, err := strconv.ParseUint(c.Param(key), 10, 64)
	if err != nil || n == 0 {
		c.Error(http.StatusBadRequest, "invalid "+key)
		return 0, false
	}
	return uint(n), true
}

// Query returns a query-string value. Returns "" if not present.
func (c *Context) Query(key string) string {
	return c.R.URL.Query().Get(key)
}

// QueryInt returns a query-string integer, or def if absent or malformed.
func (c *Context) QueryInt(key string, def int) int {
	n, err := strconv.Atoi(c.Query(key))
	if err != nil {
		return def
	}
	return n
}

// Context returns the underlying request context.
func (c *Context) Context() context.Context { return c.R.Context() }

// Identity returns the authenticated caller set by middleware.Authenticate.
// Sends a 401 and returns false when the request is anonymous.
func (c *Context) Identity() (auth.Identity, bool) {
	id, ok := auth.FromContext(c.R.Context())
	if !ok {
		c.Unauthorized()
		return auth.Identity{}, false
	}
	return id, true
}

// ─── Binding / Validation ─────────────────────────────────────────────────────

// BindJSON decodes the JSON body into dest and runs validation.
// Malformed JSON and validation failures both send a 400 envelope and return
// false. Returns true only when dest is valid and ready to use.
//
//	var in AddToCartInput
//	if !c.BindJSON(&in) {
//	    return // response already sent
//	}
func (c *Context) BindJSON(dest any) bool {
	errs, err := bind.JSON(c.R, dest)
	if err != nil {
		c.Error(http.StatusBadRequest, err.Error())
		return false
	}
	if validate.HasErrors(errs) {
		c.Error(http.StatusBadRequest, validate.Summary(errs))
		return false
	}
	return true
}

// ─── Response helpers ─────────────────────────────────────────────────────────

// JSON writes an envelope with the given status code.
func (c *Context) JSON(code int, body response.Envelope) {
	c.status = code
	response.JSON(c.W, code, body)
}

// Success sends a 200 envelope: {"success":true,"data":...}
func (c *Context) Success(data any) {
	c.JSON(http.StatusOK, response.Envelope{Success: true, Data: data})
}

// Created sends a 201 envelope.
func (c *Context) Created(data any) {
	c.JSON(http.StatusCreated, response.Envelope{Success: true, Data: data})
}

// Message sends a 200 envelope carrying only a message.
func (c *Context) Message(message string) {
	c.JSON(http.StatusOK, response.Envelope{Success: true, Message: message})
}

// Error sends a {"success":false,"error":...} envelope.
func (c *Context) Error(code int, message string) {
	c.JSON(code, response.Envelope{Success: false, Error: message})
}

// Unauthorized sends a 401.
func (c *Context) Unauthorized() {
	c.Error(http.StatusUnauthorized, "Unauthorized")
}

// WrittenStatus returns the HTTP status code that was written to the response,
// or 0 if no response has been written yet.
func (c *Context) WrittenStatus() int { return c.status }
