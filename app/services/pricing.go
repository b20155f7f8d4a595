package services

import (
	"github.com/shopspring/decimal"
)

var (
	taxRate               = decimal.RequireFromString("0.10")
	freeShippingThreshold = decimal.NewFromInt(100)
	flatShipping          = decimal.NewFromInt(10)
)

// Totals are the monetary fields of an order, each rounded to 2 places.
type Totals struct {
	Subtotal decimal.Decimal
	Tax      decimal.Decimal
	Shipping decimal.Decimal
	Discount decimal.Decimal
	Total    decimal.Decimal
}

// LineTotal is unitPrice × quantity rounded to cents.
func LineTotal(unitPrice decimal.Decimal, quantity int) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt(int64(quantity))).Round(2)
}

// Price computes order totals from already-computed line totals:
// 10% tax, free shipping strictly above 100, otherwise a flat 10, and no
// discount in this flow.
func Price(lineTotals []decimal.Decimal) Totals {
	subtotal := decimal.Zero
	for _, lt := range lineTotals {
		subtotal = subtotal.Add(lt)
	}
	subtotal = subtotal.Round(2)

	shipping := flatShipping
	if subtotal.GreaterThan(freeShippingThreshold) {
		shipping = decimal.Zero
	}

	t := Totals{
		Subtotal: subtotal,
		Tax:      subtotal.Mul(taxRate).Round(2),
		Shipping: shipping,
		Discount: decimal.Zero,
	}
	t.Total = t.Subtotal.Add(t.Tax).Add(t.Shipping).Sub(t.Discount).Round(2)
	return t
}
