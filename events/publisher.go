package events

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/segmentio/kafka-go"
)

const TopicOrderStatus = "order-status"

// OrderStatusEvent is published on every order status change, keyed by order
// id so consumers see changes for one order in order.
type OrderStatusEvent struct {
	OrderID    string    `json:"orderId"`
	BuyerID    string    `json:"buyerId"`
	SellerID   string    `json:"sellerId"`
	Status     string    `json:"status"`
	Total      float64   `json:"total"`
	OccurredAt time.Time `json:"occurredAt"`
}

// Publisher writes order status events asynchronously. A nil *Publisher is a
// valid no-op, so callers never need to check whether kafka is configured.
type Publisher struct {
	w     *kafka.Writer
	inbox chan kafka.Message
	done  chan struct{}
}

// NewPublisher returns nil when no brokers are configured.
func NewPublisher(brokers []string) *Publisher {
	if len(brokers) == 0 {
		return nil
	}
	p := &Publisher{
		w: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        TopicOrderStatus,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireAll,
		},
		inbox: make(chan kafka.Message, 256),
		done:  make(chan struct{}),
	}
	go p.loop()
	return p
}

func (p *Publisher) loop() {
	defer close(p.done)
	for m := range p.inbox {
		if err := p.w.WriteMessages(context.Background(), m); err != nil {
			log.Println("⚠️ Failed to publish order event:", err)
		}
	}
	if err := p.w.Close(); err != nil {
		log.Println("⚠️ Failed to close kafka writer:", err)
	}
}

// PublishStatus enqueues an event. It never blocks the request path: a full
// inbox drops the event with a log line.
func (p *Publisher) PublishStatus(ev OrderStatusEvent) {
	if p == nil {
		return
	}
	value, err := json.Marshal(ev)
	if err != nil {
		log.Println("⚠️ Failed to encode order event:", err)
		return
	}
	msg := kafka.Message{
		Key:   []byte(ev.OrderID),
		Value: value,
		Time:  ev.OccurredAt,
	}
	select {
	case p.inbox <- msg:
	default:
		log.Println("⚠️ Order event queue full, dropping event for", ev.OrderID)
	}
}

// Close flushes pending events and waits for the writer goroutine.
func (p *Publisher) Close() {
	if p == nil {
		return
	}
	close(p.inbox)
	<-p.done
}
