package util

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	OrdersCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "orders_created_total",
		Help: "Total number of orders created",
	})

	ProductsCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "products_created_total",
		Help: "Total number of products created",
	})

	OrderSummariesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "order_summaries_total",
		Help: "Total number of order summary aggregations",
	}, []string{"outcome"})

	DownstreamFailuresTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "downstream_failures_total",
		Help: "Total number of failed downstream calls",
	}, []string{"kind"})

	StockDecrementsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "stock_decrements_total",
		Help: "Total number of stock decrements applied from order events",
	})

	StockEventsDroppedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "stock_events_dropped_total",
		Help: "Total number of order events that did not mutate stock",
	}, []string{"reason"})

	CacheLookupsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cache_lookups_total",
		Help: "Total number of cache lookups",
	}, []string{"cache", "result"})

	EventPublishLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "event_publish_latency_seconds",
		Help:    "Latency of publishing order events",
		Buckets: prometheus.DefBuckets,
	})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})
)
