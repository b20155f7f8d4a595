package services

import (
	"regexp"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestPrice(t *testing.T) {
	cases := []struct {
		name                           string
		lines                          []decimal.Decimal
		subtotal, tax, shipping, total string
	}{
		{"scenario A free shipping", []decimal.Decimal{LineTotal(dec("20.00"), 2), LineTotal(dec("100.00"), 1)}, "140.00", "14.00", "0.00", "154.00"},
		{"scenario B flat shipping", []decimal.Decimal{LineTotal(dec("10.00"), 1)}, "10.00", "1.00", "10.00", "21.00"},
		{"exactly 100 still pays shipping", []decimal.Decimal{LineTotal(dec("50.00"), 2)}, "100.00", "10.00", "10.00", "120.00"},
		{"tax rounds half up", []decimal.Decimal{LineTotal(dec("0.05"), 1)}, "0.05", "0.01", "10.00", "10.06"},
		{"fractional prices", []decimal.Decimal{LineTotal(dec("19.99"), 3)}, "59.97", "6.00", "10.00", "75.97"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Price(tc.lines)
			assert.Equal(t, tc.subtotal, got.Subtotal.StringFixed(2))
			assert.Equal(t, tc.tax, got.Tax.StringFixed(2))
			assert.Equal(t, tc.shipping, got.Shipping.StringFixed(2))
			assert.Equal(t, "0.00", got.Discount.StringFixed(2))
			assert.Equal(t, tc.total, got.Total.StringFixed(2))
			assert.True(t, got.Total.Equal(got.Subtotal.Add(got.Tax).Add(got.Shipping).Sub(got.Discount)))
		})
	}
}

func TestOrderNumberFormat(t *testing.T) {
	re := regexp.MustCompile(`^ORD-[0-9A-Z]+-[0-9A-Z]{6}$`)

	n := NewOrderNumber()
	assert.Regexp(t, re, n)
	assert.NotEqual(t, n, NewOrderNumber())

	at := time.UnixMilli(1700000000000)
	assert.Equal(t, "ORD-LOYW3V28-00000Z", formatOrderNumber(at, "00000z"))
}
