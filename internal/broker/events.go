package broker

import (
	"context"
	"fmt"
	"time"

	"commerce-mesh/internal/models"
	"commerce-mesh/internal/util"
)

// EventPublisher handles publishing domain events
type EventPublisher struct {
	producer *Producer
}

// NewEventPublisher creates a new event publisher
func NewEventPublisher(producer *Producer) *EventPublisher {
	return &EventPublisher{producer: producer}
}

// PublishOrderCreated publishes an OrderCreated event. Messages are keyed by
// product id so events for the same product land on the same partition.
func (ep *EventPublisher) PublishOrderCreated(ctx context.Context, event *models.OrderCreatedEvent) error {
	start := time.Now()
	defer func() {
		util.EventPublishLatency.Observe(time.Since(start).Seconds())
	}()

	key := fmt.Sprintf("product-%s", event.ProductID)
	return ep.producer.PublishEvent(ctx, key, event)
}

// Bus builds consumers bound to a broker set. Subscriptions are registered
// explicitly during startup wiring rather than declared on handlers.
type Bus struct {
	brokers []string
}

// NewBus creates a new bus handle
func NewBus(brokers []string) *Bus {
	return &Bus{brokers: brokers}
}

// Subscribe binds a handler to a topic under a consumer group. The returned
// subscription is started by the caller.
func (b *Bus) Subscribe(topic, group string, handler MessageHandler) *Subscription {
	return &Subscription{
		consumer: NewConsumer(b.brokers, topic, group),
		handler:  handler,
	}
}

// Subscription is a running binding of one handler to one topic.
type Subscription struct {
	consumer *Consumer
	handler  MessageHandler
}

// Start blocks consuming messages until ctx is cancelled.
func (s *Subscription) Start(ctx context.Context) error {
	return s.consumer.StartConsuming(ctx, s.handler)
}

// Stop closes the underlying consumer.
func (s *Subscription) Stop() error {
	return s.consumer.Close()
}
