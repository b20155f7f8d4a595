package models_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shashiranjanraj/storefront/app/models"
)

func TestOrderStatus_CanTransitionTo(t *testing.T) {
	cases := []struct {
		from, to models.OrderStatus
		want     bool
	}{
		{models.StatusPending, models.StatusProcessing, true},
		{models.StatusPending, models.StatusShipped, true},
		{models.StatusPending, models.StatusDelivered, true},
		{models.StatusProcessing, models.StatusShipped, true},
		{models.StatusShipped, models.StatusDelivered, true},
		{models.StatusShipped, models.StatusProcessing, false},
		{models.StatusDelivered, models.StatusShipped, false},
		{models.StatusPending, models.StatusPending, false},

		{models.StatusPending, models.StatusCancelled, true},
		{models.StatusProcessing, models.StatusCancelled, true},
		{models.StatusShipped, models.StatusCancelled, false},
		{models.StatusDelivered, models.StatusCancelled, false},

		{models.StatusPending, models.StatusRefunded, true},
		{models.StatusShipped, models.StatusRefunded, true},
		{models.StatusDelivered, models.StatusRefunded, true},
		{models.StatusCancelled, models.StatusRefunded, true},
		{models.StatusRefunded, models.StatusRefunded, false},

		{models.StatusCancelled, models.StatusPending, false},
		{models.StatusRefunded, models.StatusDelivered, false},
	}
	for _, tc := range cases {
		t.Run(string(tc.from)+"->"+string(tc.to), func(t *testing.T) {
			assert.Equal(t, tc.want, tc.from.CanTransitionTo(tc.to))
		})
	}
}

func TestEnumsValid(t *testing.T) {
	assert.True(t, models.StatusShipped.Valid())
	assert.False(t, models.OrderStatus("lost").Valid())
	assert.True(t, models.PaymentRefunded.Valid())
	assert.False(t, models.PaymentStatus("maybe").Valid())
}
