package services

import (
	"crypto/rand"
	"math/big"
	"strconv"
	"strings"
	"time"
)

const orderNumberSuffixLen = 6

var suffixSpace = new(big.Int).Exp(big.NewInt(36), big.NewInt(orderNumberSuffixLen), nil)

// NewOrderNumber returns "ORD-<base36 unix millis>-<6 base36 random chars>"
// in upper case, e.g. "ORD-MB3K1ZQ4-7H2XQA". Uniqueness is enforced by the
// orders.order_number unique index; PlaceOrder retries on collision.
func NewOrderNumber() string {
	return formatOrderNumber(time.Now(), randomSuffix())
}

func formatOrderNumber(now time.Time, suffix string) string {
	ts := strconv.FormatInt(now.UnixMilli(), 36)
	return strings.ToUpper("ORD-" + ts + "-" + suffix)
}

func randomSuffix() string {
	n, err := rand.Int(rand.Reader, suffixSpace)
	if err != nil {
		// crypto/rand does not fail on supported platforms; fall back to the clock.
		n = big.NewInt(time.Now().UnixNano())
		n.Mod(n, suffixSpace)
	}
	s := n.Text(36)
	if len(s) < orderNumberSuffixLen {
		s = strings.Repeat("0", orderNumberSuffixLen-len(s)) + s
	}
	return s
}
