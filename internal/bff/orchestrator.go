package bff

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"commerce-mesh/internal/correlation"
	"commerce-mesh/internal/downstream"
	"commerce-mesh/internal/models"
	"commerce-mesh/internal/util"

	"go.uber.org/zap"
)

// Caller issues a single downstream HTTP call.
type Caller interface {
	Call(ctx context.Context, method, url string, body interface{}) downstream.Result
}

// Orchestrator composes downstream calls into client-facing responses. The
// three proxy operations mirror a single downstream response unchanged; the
// order summary is all-or-nothing across two calls.
type Orchestrator struct {
	client     Caller
	productURL string
	orderURL   string
	logger     *zap.Logger
}

// NewOrchestrator creates a new aggregation orchestrator
func NewOrchestrator(client Caller, productURL, orderURL string) *Orchestrator {
	return &Orchestrator{
		client:     client,
		productURL: productURL,
		orderURL:   orderURL,
		logger:     util.GetLogger(),
	}
}

// GetProduct proxies a product lookup.
func (o *Orchestrator) GetProduct(ctx context.Context, id string) downstream.Result {
	return o.client.Call(ctx, http.MethodGet, fmt.Sprintf("%s/products/%s", o.productURL, id), nil)
}

// CreateProduct proxies product creation.
func (o *Orchestrator) CreateProduct(ctx context.Context, body []byte) downstream.Result {
	return o.client.Call(ctx, http.MethodPost, fmt.Sprintf("%s/products", o.productURL), body)
}

// CreateOrder proxies order creation.
func (o *Orchestrator) CreateOrder(ctx context.Context, body []byte) downstream.Result {
	return o.client.Call(ctx, http.MethodPost, fmt.Sprintf("%s/orders", o.orderURL), body)
}

// GetOrderSummary fetches the product and its orders sequentially, both
// under the caller's correlation id, and merges them. If either call fails
// the failing result is returned as-is and no partial summary is assembled.
func (o *Orchestrator) GetOrderSummary(ctx context.Context, productID string) (*models.OrderSummaryResponse, *downstream.Result) {
	ctx, span := util.StartSpan(ctx, "Orchestrator.GetOrderSummary")
	defer span.End()

	logger := correlation.Logger(ctx, o.logger)

	productRes := o.client.Call(ctx, http.MethodGet,
		fmt.Sprintf("%s/products/%s", o.productURL, productID), nil)
	if !productRes.OK() {
		logger.Warn("Order summary aborted: product call failed",
			zap.String("product_id", productID),
			zap.Int("status", productRes.StatusCode))
		util.OrderSummariesTotal.WithLabelValues("product_failed").Inc()
		return nil, &productRes
	}

	ordersRes := o.client.Call(ctx, http.MethodGet,
		fmt.Sprintf("%s/orders/product/%s", o.orderURL, productID), nil)
	if !ordersRes.OK() {
		logger.Warn("Order summary aborted: orders call failed",
			zap.String("product_id", productID),
			zap.Int("status", ordersRes.StatusCode))
		util.OrderSummariesTotal.WithLabelValues("orders_failed").Inc()
		return nil, &ordersRes
	}

	var product models.Product
	if err := json.Unmarshal(productRes.Body, &product); err != nil {
		logger.Error("Order summary aborted: malformed product body", zap.Error(err))
		util.OrderSummariesTotal.WithLabelValues("malformed").Inc()
		return nil, &downstream.Result{StatusCode: http.StatusInternalServerError, Err: err}
	}

	orders := []models.Order{}
	if err := json.Unmarshal(ordersRes.Body, &orders); err != nil {
		logger.Error("Order summary aborted: malformed orders body", zap.Error(err))
		util.OrderSummariesTotal.WithLabelValues("malformed").Inc()
		return nil, &downstream.Result{StatusCode: http.StatusInternalServerError, Err: err}
	}

	util.OrderSummariesTotal.WithLabelValues("success").Inc()

	return &models.OrderSummaryResponse{
		Product: models.ProductSummary{
			ID:           product.ID,
			Name:         product.Name,
			Price:        product.Price,
			CurrentStock: product.Qty,
		},
		Orders:      orders,
		TotalOrders: len(orders),
	}, nil
}
