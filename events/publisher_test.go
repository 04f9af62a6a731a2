package events

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewPublisher_NoBrokersReturnsNil(t *testing.T) {
	assert.Nil(t, NewPublisher(nil))
	assert.Nil(t, NewPublisher([]string{}))
}

func TestNilPublisherIsNoOp(t *testing.T) {
	var p *Publisher

	assert.NotPanics(t, func() {
		p.PublishStatus(OrderStatusEvent{
			OrderID:    "64f000000000000000000001",
			Status:     "confirmed",
			Total:      44.98,
			OccurredAt: time.Now(),
		})
		p.Close()
	})
}
