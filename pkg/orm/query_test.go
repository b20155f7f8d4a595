package orm_test

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/storefront/pkg/orm"
)

func TestNewPagination_Defaults(t *testing.T) {
	cases := []struct {
		name        string
		page, limit int
		wantPage    int
		wantLimit   int
	}{
		{"zeros", 0, 0, 1, 10},
		{"negative", -3, -1, 1, 10},
		{"capped", 2, 500, 2, 100},
		{"explicit", 3, 25, 3, 25},
		{"page capped", math.MaxInt, 100, orm.MaxPage, 100},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := orm.NewPagination(tc.page, tc.limit)
			assert.Equal(t, tc.wantPage, p.Page)
			assert.Equal(t, tc.wantLimit, p.Limit)
		})
	}
}

func TestPagination_OffsetAndTotalPages(t *testing.T) {
	p := orm.NewPagination(3, 10).WithTotal(21)
	assert.Equal(t, 20, p.Offset())
	assert.Equal(t, 3, p.TotalPages)

	assert.Equal(t, 0, orm.NewPagination(1, 10).WithTotal(0).TotalPages)

	huge := orm.NewPagination(math.MaxInt, math.MaxInt)
	assert.Equal(t, (orm.MaxPage-1)*orm.MaxLimit, huge.Offset())
	assert.Positive(t, huge.Offset())
}

func TestNewPage_FlattensPagination(t *testing.T) {
	page := orm.NewPage[string](nil, orm.NewPagination(1, 10).WithTotal(0))

	raw, err := json.Marshal(page)
	require.NoError(t, err)
	assert.JSONEq(t, `{"items":[],"page":1,"limit":10,"total":0,"totalPages":0}`, string(raw))
}
