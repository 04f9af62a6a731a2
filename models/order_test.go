package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransitionDelivery_AllowedEdges(t *testing.T) {
	allowed := []struct{ from, to string }{
		{OrderStatusConfirmed, OrderStatusProcessing},
		{OrderStatusConfirmed, OrderStatusShipped},
		{OrderStatusProcessing, OrderStatusShipped},
		{OrderStatusShipped, OrderStatusDelivered},
		{OrderStatusShipped, OrderStatusReturned},
	}
	for _, e := range allowed {
		assert.True(t, CanTransitionDelivery(e.from, e.to), "%s → %s should be allowed", e.from, e.to)
	}
}

func TestCanTransitionDelivery_RejectedEdges(t *testing.T) {
	rejected := []struct{ from, to string }{
		{OrderStatusConfirmed, OrderStatusDelivered},
		{OrderStatusConfirmed, OrderStatusReturned},
		{OrderStatusProcessing, OrderStatusDelivered},
		{OrderStatusPending, OrderStatusProcessing},
		{OrderStatusPlaced, OrderStatusShipped},
		{OrderStatusDelivered, OrderStatusShipped},
		{OrderStatusShipped, OrderStatusConfirmed},
		{OrderStatusCancelled, OrderStatusProcessing},
	}
	for _, e := range rejected {
		assert.False(t, CanTransitionDelivery(e.from, e.to), "%s → %s should be rejected", e.from, e.to)
	}
}

func TestCancellable(t *testing.T) {
	assert.True(t, Cancellable(OrderStatusPending))
	assert.True(t, Cancellable(OrderStatusConfirmed))

	for _, s := range []string{
		OrderStatusPlaced,
		OrderStatusProcessing,
		OrderStatusShipped,
		OrderStatusDelivered,
		OrderStatusCancelled,
		OrderStatusReturned,
		OrderStatusRefunded,
	} {
		assert.False(t, Cancellable(s), "%s should not be cancellable", s)
	}
}
