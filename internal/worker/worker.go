package worker

import (
	"context"
	"encoding/json"
	"log"

	"commerce-mesh/internal/broker"
	"commerce-mesh/internal/models"
	"commerce-mesh/internal/service"
	"commerce-mesh/internal/util"

	"github.com/segmentio/kafka-go"
)

// StockWorker binds the stock reconciler to the order-created topic.
type StockWorker struct {
	sub        *broker.Subscription
	reconciler *service.StockReconciler
}

// NewStockWorker registers the reconciler subscription on the bus. The
// subscription is explicit startup wiring; nothing is declared on the
// handler itself.
func NewStockWorker(bus *broker.Bus, topic, group string, reconciler *service.StockReconciler) *StockWorker {
	w := &StockWorker{reconciler: reconciler}
	w.sub = bus.Subscribe(topic, group, w.handleMessage)
	return w
}

func (w *StockWorker) handleMessage(ctx context.Context, msg kafka.Message) error {
	var event models.OrderCreatedEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		// Poison message: ack it, redelivery cannot fix a bad payload.
		log.Printf("Failed to unmarshal order.created event: %v", err)
		util.StockEventsDroppedTotal.WithLabelValues("decode_error").Inc()
		return nil
	}

	return w.reconciler.HandleOrderCreated(ctx, &event)
}

// Start starts the worker
func (w *StockWorker) Start(ctx context.Context) error {
	log.Println("Starting stock reconciler worker...")
	return w.sub.Start(ctx)
}

// Stop stops the worker
func (w *StockWorker) Stop() error {
	log.Println("Stopping stock reconciler worker...")
	return w.sub.Stop()
}
