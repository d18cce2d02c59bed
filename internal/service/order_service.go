package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"commerce-mesh/internal/cache"
	"commerce-mesh/internal/correlation"
	"commerce-mesh/internal/downstream"
	"commerce-mesh/internal/models"
	"commerce-mesh/internal/util"

	"go.uber.org/zap"
)

// ErrProductNotFound is returned when an order references an unknown product.
var ErrProductNotFound = errors.New("product not found")

// Caller issues a single downstream HTTP call.
type Caller interface {
	Call(ctx context.Context, method, url string, body interface{}) downstream.Result
}

// OrderStore is what the order service needs from persistence.
type OrderStore interface {
	CreateOrder(ctx context.Context, order *models.Order) error
	GetOrdersByProductID(ctx context.Context, productID string) ([]models.Order, error)
}

// OrderCache is the cache-aside layer for order lists.
type OrderCache interface {
	GetOrders(ctx context.Context, productID string) ([]models.Order, error)
	SetOrders(ctx context.Context, productID string, orders []models.Order, ttl time.Duration) error
}

// Publisher publishes order domain events.
type Publisher interface {
	PublishOrderCreated(ctx context.Context, event *models.OrderCreatedEvent) error
}

// OrderService handles order business logic
type OrderService struct {
	store      OrderStore
	cache      OrderCache
	publisher  Publisher
	client     Caller
	productURL string
	ttl        time.Duration
	logger     *zap.Logger
}

// NewOrderService creates a new order service
func NewOrderService(
	store OrderStore,
	cache OrderCache,
	publisher Publisher,
	client Caller,
	productURL string,
	ttl time.Duration,
) *OrderService {
	return &OrderService{
		store:      store,
		cache:      cache,
		publisher:  publisher,
		client:     client,
		productURL: productURL,
		ttl:        ttl,
		logger:     util.GetLogger(),
	}
}

// CreateOrder validates the product against the product service, persists
// the order and publishes the order-created event. The event is published
// off the request path; a publish failure is logged, not surfaced, and the
// order stays PENDING.
func (s *OrderService) CreateOrder(ctx context.Context, productID string, price float64, qty int) (*models.Order, error) {
	ctx, span := util.StartSpan(ctx, "OrderService.CreateOrder")
	defer span.End()

	correlationID := correlation.FromContext(ctx)
	logger := s.logger.With(zap.String("correlation_id", correlationID))

	logger.Info("Creating order", zap.String("product_id", productID), zap.Int("qty", qty))

	res := s.client.Call(ctx, http.MethodGet,
		fmt.Sprintf("%s/products/%s", s.productURL, productID), nil)
	if res.Err != nil {
		return nil, fmt.Errorf("failed to call product service: %w", res.Err)
	}
	if res.StatusCode == http.StatusNotFound {
		return nil, ErrProductNotFound
	}
	if !res.OK() {
		return nil, fmt.Errorf("product service returned status %d", res.StatusCode)
	}

	order := &models.Order{
		ProductID:     productID,
		Qty:           qty,
		TotalPrice:    price * float64(qty),
		Status:        models.OrderStatusPending,
		CorrelationID: correlationID,
	}

	if err := s.store.CreateOrder(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	util.OrdersCreatedTotal.Inc()
	logger.Info("Order created", zap.String("order_id", order.ID))

	event := models.NewOrderCreatedEvent(order)
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := s.publisher.PublishOrderCreated(ctx, event); err != nil {
			logger.Error("Failed to publish order.created event",
				zap.String("order_id", event.ID),
				zap.Error(err))
		}
	}()

	return order, nil
}

// GetOrdersByProductID returns all orders for a product, cache-aside. Cache
// errors fall back to the database; a failed cache write never fails the
// request.
func (s *OrderService) GetOrdersByProductID(ctx context.Context, productID string) ([]models.Order, error) {
	logger := correlation.Logger(ctx, s.logger)

	if s.cache != nil {
		orders, err := s.cache.GetOrders(ctx, productID)
		if err == nil {
			logger.Info("CACHE HIT: orders", zap.String("product_id", productID))
			util.CacheLookupsTotal.WithLabelValues("orders", "hit").Inc()
			return orders, nil
		}
		if !errors.Is(err, cache.ErrMiss) {
			logger.Warn("Orders cache read failed, falling back to DB",
				zap.String("product_id", productID),
				zap.Error(err))
		}
		util.CacheLookupsTotal.WithLabelValues("orders", "miss").Inc()
	}

	logger.Info("CACHE MISS: fetching orders from database", zap.String("product_id", productID))

	orders, err := s.store.GetOrdersByProductID(ctx, productID)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetOrders(ctx, productID, orders, s.ttl); err != nil {
			logger.Warn("Failed to cache orders",
				zap.String("product_id", productID),
				zap.Error(err))
		}
	}

	return orders, nil
}
