package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"commerce-mesh/internal/models"

	"github.com/go-redis/redis/v8"
)

// ErrMiss is returned when a key is absent from the cache.
var ErrMiss = errors.New("cache miss")

type Client struct {
	rdb *redis.Client
}

// NewClient creates a new Redis cache client
func NewClient(addr, password string, db int) (*Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return &Client{rdb: rdb}, nil
}

// Close closes the Redis connection
func (c *Client) Close() error {
	return c.rdb.Close()
}

// GetProduct returns the cached product or ErrMiss.
func (c *Client) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	data, err := c.rdb.Get(ctx, productKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrMiss
	}
	if err != nil {
		return nil, err
	}

	var product models.Product
	if err := json.Unmarshal(data, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// SetProduct caches a product with the given TTL.
func (c *Client) SetProduct(ctx context.Context, product *models.Product, ttl time.Duration) error {
	data, err := json.Marshal(product)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, productKey(product.ID), data, ttl).Err()
}

// GetOrders returns the cached order list for a product or ErrMiss.
func (c *Client) GetOrders(ctx context.Context, productID string) ([]models.Order, error) {
	data, err := c.rdb.Get(ctx, ordersKey(productID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrMiss
	}
	if err != nil {
		return nil, err
	}

	var orders []models.Order
	if err := json.Unmarshal(data, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// SetOrders caches the order list for a product with the given TTL.
func (c *Client) SetOrders(ctx context.Context, productID string, orders []models.Order, ttl time.Duration) error {
	data, err := json.Marshal(orders)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, ordersKey(productID), data, ttl).Err()
}

func productKey(id string) string {
	return fmt.Sprintf("product:%s", id)
}

func ordersKey(productID string) string {
	return fmt.Sprintf("orders:product:%s", productID)
}
