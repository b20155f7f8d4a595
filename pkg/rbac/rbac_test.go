package rbac_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shashiranjanraj/storefront/pkg/auth"
	"github.com/shashiranjanraj/storefront/pkg/rbac"
)

func TestAdmin(t *testing.T) {
	h := rbac.Admin()(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	cases := []struct {
		name string
		id   *auth.Identity
		want int
	}{
		{"anonymous", nil, http.StatusUnauthorized},
		{"customer", &auth.Identity{UserID: 1, Role: auth.RoleCustomer}, http.StatusForbidden},
		{"admin", &auth.Identity{UserID: 2, Role: auth.RoleAdmin}, http.StatusNoContent},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPut, "/api/orders/1/status", nil)
			if tc.id != nil {
				req = req.WithContext(auth.WithIdentity(req.Context(), *tc.id))
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			assert.Equal(t, tc.want, rec.Code)
		})
	}
}
