package store

import (
	"context"

	"commerce-mesh/internal/models"
)

// CreateOrder inserts an order and fills in the generated id and timestamp.
func (s *Store) CreateOrder(ctx context.Context, order *models.Order) error {
	query := `
		INSERT INTO orders (product_id, qty, total_price, status, correlation_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`

	return s.db.QueryRowxContext(ctx, query,
		order.ProductID, order.Qty, order.TotalPrice, order.Status, order.CorrelationID).
		Scan(&order.ID, &order.CreatedAt)
}

// GetOrdersByProductID retrieves all orders referencing a product, oldest
// first. An unknown product yields an empty slice, not an error.
func (s *Store) GetOrdersByProductID(ctx context.Context, productID string) ([]models.Order, error) {
	orders := []models.Order{}
	err := s.db.SelectContext(ctx, &orders,
		"SELECT * FROM orders WHERE product_id = $1 ORDER BY created_at", productID)
	return orders, err
}
