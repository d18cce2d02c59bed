package models

import "time"

// Product is owned by the product service. Qty never goes negative: the only
// mutation paths are explicit updates and the stock reconciler, both of which
// check the persisted value.
type Product struct {
	ID        string    `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Price     float64   `db:"price" json:"price"`
	Qty       int       `db:"qty" json:"qty"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// Order is owned by the order service.
type Order struct {
	ID            string    `db:"id" json:"id"`
	ProductID     string    `db:"product_id" json:"productId"`
	Qty           int       `db:"qty" json:"qty"`
	TotalPrice    float64   `db:"total_price" json:"totalPrice"`
	Status        string    `db:"status" json:"status"`
	CorrelationID string    `db:"correlation_id" json:"correlationId"`
	CreatedAt     time.Time `db:"created_at" json:"createdAt"`
}

// Order statuses
const (
	OrderStatusPending = "PENDING"
)

// ProductSummary is the aggregation view of a product, computed per request
// and never persisted.
type ProductSummary struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Price        float64 `json:"price"`
	CurrentStock int     `json:"currentStock"`
}

// OrderSummaryResponse is the BFF aggregate of a product and its orders.
// TotalOrders always equals len(Orders).
type OrderSummaryResponse struct {
	Product     ProductSummary `json:"product"`
	Orders      []Order        `json:"orders"`
	TotalOrders int            `json:"totalOrders"`
}
