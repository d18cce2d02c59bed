package service

import (
	"context"
	"errors"
	"time"

	"commerce-mesh/internal/cache"
	"commerce-mesh/internal/correlation"
	"commerce-mesh/internal/models"
	"commerce-mesh/internal/util"

	"go.uber.org/zap"
)

// ProductStore is what the product service needs from persistence.
type ProductStore interface {
	CreateProduct(ctx context.Context, product *models.Product) error
	GetProductByID(ctx context.Context, id string) (*models.Product, error)
}

// ProductCache is the read-through cache in front of product lookups.
type ProductCache interface {
	GetProduct(ctx context.Context, id string) (*models.Product, error)
	SetProduct(ctx context.Context, product *models.Product, ttl time.Duration) error
}

// ProductService handles product business logic
type ProductService struct {
	store  ProductStore
	cache  ProductCache
	ttl    time.Duration
	logger *zap.Logger
}

// NewProductService creates a new product service
func NewProductService(store ProductStore, cache ProductCache, ttl time.Duration) *ProductService {
	return &ProductService{
		store:  store,
		cache:  cache,
		ttl:    ttl,
		logger: util.GetLogger(),
	}
}

// Create persists a new product.
func (s *ProductService) Create(ctx context.Context, name string, price float64, qty int) (*models.Product, error) {
	product := &models.Product{
		Name:  name,
		Price: price,
		Qty:   qty,
	}

	if err := s.store.CreateProduct(ctx, product); err != nil {
		return nil, err
	}

	util.ProductsCreatedTotal.Inc()
	correlation.Logger(ctx, s.logger).Info("Product created",
		zap.String("product_id", product.ID))
	return product, nil
}

// Get looks up a product through the read-through cache. Cache errors other
// than a miss fall back to the database. Stock mutations from the reconciler
// do not invalidate cached entries, so a cached product may report a stale
// quantity until the TTL expires.
func (s *ProductService) Get(ctx context.Context, id string) (*models.Product, error) {
	logger := correlation.Logger(ctx, s.logger)

	if s.cache != nil {
		product, err := s.cache.GetProduct(ctx, id)
		if err == nil {
			logger.Info("CACHE HIT: product", zap.String("product_id", id))
			util.CacheLookupsTotal.WithLabelValues("product", "hit").Inc()
			return product, nil
		}
		if !errors.Is(err, cache.ErrMiss) {
			logger.Warn("Product cache read failed, falling back to DB",
				zap.String("product_id", id),
				zap.Error(err))
		}
		util.CacheLookupsTotal.WithLabelValues("product", "miss").Inc()
	}

	logger.Info("CACHE MISS: fetching product from database", zap.String("product_id", id))

	product, err := s.store.GetProductByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetProduct(ctx, product, s.ttl); err != nil {
			logger.Warn("Failed to cache product",
				zap.String("product_id", id),
				zap.Error(err))
		}
	}

	return product, nil
}
