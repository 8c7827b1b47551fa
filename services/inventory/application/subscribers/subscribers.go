// Package subscribers reacts to inventory events in the worker process.
package subscribers

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/ghuser/stocktracker/pkg/logger"
	appsvcs "github.com/ghuser/stocktracker/services/inventory/application/services"
	"github.com/ghuser/stocktracker/services/inventory/domain/events"
	domainsvcs "github.com/ghuser/stocktracker/services/inventory/domain/services"
)

// Subscriber is the part of events.EventBus used here.
type Subscriber interface {
	Subscribe(ctx context.Context, topic string, handler func(context.Context, *message.Message) error) (<-chan error, error)
}

// LowStockRefresher recomputes the cached low-stock snapshot.
type LowStockRefresher interface {
	RefreshLowStock(ctx context.Context) (appsvcs.LowStockSummary, error)
}

// Register subscribes HandleItemChanged to every inventory topic and drains
// subscriber errors into the log.
func Register(ctx context.Context, bus Subscriber, svc LowStockRefresher, log logger.Logger) error {
	handler := HandleItemChanged(svc, log)
	for _, topic := range events.Topics {
		errCh, err := bus.Subscribe(ctx, topic, handler)
		if err != nil {
			return fmt.Errorf("subscribe %s: %w", topic, err)
		}
		go func(topic string) {
			for err := range errCh {
				log.ErrorContext(ctx, "subscriber error", "topic", topic, "error", err)
			}
		}(topic)
	}
	log.Info("event subscribers registered", "topics", events.Topics)
	return nil
}

// HandleItemChanged refreshes the low-stock snapshot after any item change and
// warns when an adjustment takes an item into low stock. Handlers are retried
// by the EventBus, so they must be idempotent.
func HandleItemChanged(svc LowStockRefresher, log logger.Logger) func(context.Context, *message.Message) error {
	return func(ctx context.Context, msg *message.Message) error {
		var evt events.ItemChangedEvent
		if err := json.Unmarshal(msg.Payload, &evt); err != nil {
			// Redelivery cannot fix a malformed payload.
			log.ErrorContext(ctx, "dropping malformed inventory event", "message_uuid", msg.UUID, "error", err)
			return nil
		}

		if CrossedIntoLowStock(evt) {
			log.WarnContext(ctx, "item is low on stock",
				"item_id", evt.ItemID,
				"name", evt.Name,
				"quantity", evt.Quantity,
				"min_threshold", evt.MinThreshold,
			)
		}

		summary, err := svc.RefreshLowStock(ctx)
		if err != nil {
			return fmt.Errorf("refresh low stock: %w", err)
		}
		log.DebugContext(ctx, "low stock snapshot refreshed",
			"event_id", evt.EventID, "low_stock_count", summary.Count(), "digest", summary.Digest)
		return nil
	}
}

// CrossedIntoLowStock reports whether a negative adjustment moved the item
// from above its threshold to at or below it.
func CrossedIntoLowStock(evt events.ItemChangedEvent) bool {
	if evt.Delta >= 0 {
		return false
	}
	before := evt.Quantity - evt.Delta
	return domainsvcs.IsLowStock(evt.Quantity, evt.MinThreshold) && !domainsvcs.IsLowStock(before, evt.MinThreshold)
}
