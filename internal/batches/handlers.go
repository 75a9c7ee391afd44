package batches

import (
	"context"

	"phonenumber_backend/internal/events"
	"phonenumber_backend/platform/logger"
)

// RegisterHandlers subscribes the batch lifecycle log lines to bus.
func RegisterHandlers(bus events.Bus, log *logger.Logger) {
	bus.Subscribe(events.BatchSubmittedEvent, events.HandlerFunc(func(ctx context.Context, event events.Event) error {
		if e, ok := event.(events.BatchSubmitted); ok {
			log.WithContext(ctx).BatchEvent(e.EventName(), e.BatchID, e.Count)
		}
		return nil
	}))
	bus.Subscribe(events.BatchCompletedEvent, events.HandlerFunc(func(ctx context.Context, event events.Event) error {
		if e, ok := event.(events.BatchCompleted); ok {
			log.WithContext(ctx).BatchEvent(e.EventName(), e.BatchID, e.Valid+e.Invalid+e.Failed)
			if e.Failed > 0 {
				log.Info("batch contained unparseable numbers", "batchId", e.BatchID, "failed", e.Failed)
			}
		}
		return nil
	}))
}
