package models

import "time"

// OrderCreatedEvent is published once per created order and delivered
// at-least-once to the product service, which decrements stock. Consumers
// must tolerate duplicate delivery.
type OrderCreatedEvent struct {
	ID            string    `json:"id"`
	ProductID     string    `json:"productId"`
	Qty           int       `json:"qty"`
	TotalPrice    float64   `json:"totalPrice"`
	Status        string    `json:"status"`
	CorrelationID string    `json:"correlationId"`
	CreatedAt     time.Time `json:"createdAt"`
}

// NewOrderCreatedEvent builds the event payload from a persisted order.
func NewOrderCreatedEvent(order *Order) *OrderCreatedEvent {
	return &OrderCreatedEvent{
		ID:            order.ID,
		ProductID:     order.ProductID,
		Qty:           order.Qty,
		TotalPrice:    order.TotalPrice,
		Status:        order.Status,
		CorrelationID: order.CorrelationID,
		CreatedAt:     order.CreatedAt,
	}
}
