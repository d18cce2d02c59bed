package service

import (
	"context"
	"errors"

	"commerce-mesh/internal/models"
	"commerce-mesh/internal/store"
	"commerce-mesh/internal/util"

	"go.uber.org/zap"
)

// InventoryStore is what the reconciler needs from persistence.
type InventoryStore interface {
	GetProductByID(ctx context.Context, id string) (*models.Product, error)
	DecrementStock(ctx context.Context, productID string, qty int) (bool, error)
}

// StockReconciler consumes order-created events and decrements product
// stock. Each event makes exactly one pass: terminal outcomes (applied,
// unknown product, insufficient stock) return nil so the message is
// acknowledged; only infrastructure errors propagate, leaving the message
// uncommitted for the bus to redeliver. Delivery is at-least-once and the
// decrement is not idempotent: a redelivered event decrements again.
type StockReconciler struct {
	store  InventoryStore
	logger *zap.Logger
}

// NewStockReconciler creates a new stock reconciler
func NewStockReconciler(store InventoryStore) *StockReconciler {
	return &StockReconciler{
		store:  store,
		logger: util.GetLogger(),
	}
}

// HandleOrderCreated applies one order-created event to inventory.
func (r *StockReconciler) HandleOrderCreated(ctx context.Context, event *models.OrderCreatedEvent) error {
	ctx, span := util.StartSpan(ctx, "StockReconciler.HandleOrderCreated")
	defer span.End()

	logger := r.logger.With(
		zap.String("correlation_id", event.CorrelationID),
		zap.String("order_id", event.ID),
		zap.String("product_id", event.ProductID))

	logger.Info("Received order.created event", zap.Int("qty", event.Qty))

	product, err := r.store.GetProductByID(ctx, event.ProductID)
	if errors.Is(err, store.ErrNotFound) {
		// The product FK is presumed immutable, so retrying cannot help.
		logger.Error("Product referenced by order event not found")
		util.StockEventsDroppedTotal.WithLabelValues("not_found").Inc()
		return nil
	}
	if err != nil {
		return err
	}

	if product.Qty < event.Qty {
		logger.Warn("Insufficient stock, order event not applied",
			zap.Int("available", product.Qty),
			zap.Int("requested", event.Qty))
		util.StockEventsDroppedTotal.WithLabelValues("insufficient_stock").Inc()
		return nil
	}

	applied, err := r.store.DecrementStock(ctx, event.ProductID, event.Qty)
	if err != nil {
		return err
	}
	if !applied {
		// A concurrent consumer drained the stock between the read and the
		// conditional update.
		logger.Warn("Insufficient stock, order event not applied",
			zap.Int("requested", event.Qty))
		util.StockEventsDroppedTotal.WithLabelValues("insufficient_stock").Inc()
		return nil
	}

	util.StockDecrementsTotal.Inc()
	logger.Info("Product quantity updated",
		zap.Int("old_qty", product.Qty),
		zap.Int("new_qty", product.Qty-event.Qty))
	return nil
}
