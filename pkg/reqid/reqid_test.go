package reqid_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/shashiranjanraj/storefront/pkg/reqid"
)

func serve(t *testing.T, inbound string) (header, seen string) {
	t.Helper()
	h := reqid.Middleware()(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		seen = reqid.FromCtx(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if inbound != "" {
		req.Header.Set(reqid.Header, inbound)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec.Header().Get(reqid.Header), seen
}

func TestMiddleware_GeneratesUUID(t *testing.T) {
	header, seen := serve(t, "")
	assert.Equal(t, header, seen)
	_, err := uuid.Parse(seen)
	assert.NoError(t, err)
}

func TestMiddleware_HonoursUpstreamID(t *testing.T) {
	header, seen := serve(t, "gw-123")
	assert.Equal(t, "gw-123", header)
	assert.Equal(t, "gw-123", seen)
}

func TestMiddleware_ReplacesOversizedID(t *testing.T) {
	_, seen := serve(t, strings.Repeat("x", 500))
	assert.NotEqual(t, strings.Repeat("x", 500), seen)
}
