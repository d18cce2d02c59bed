package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, []string{"localhost:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, "order.created", cfg.Kafka.TopicOrder)
	assert.Equal(t, 5*time.Second, cfg.Downstream.CallTimeout)
	assert.Equal(t, 5*time.Minute, cfg.Cache.ProductTTL)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("KAFKA_BROKERS", "kafka1:9092,kafka2:9092")
	t.Setenv("PRODUCT_SERVICE_URL", "http://product:3000")
	t.Setenv("PRODUCT_CACHE_TTL_SECONDS", "60")

	cfg := Load()

	assert.Equal(t, []string{"kafka1:9092", "kafka2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, "http://product:3000", cfg.Downstream.ProductServiceURL)
	assert.Equal(t, time.Minute, cfg.Cache.ProductTTL)
}
