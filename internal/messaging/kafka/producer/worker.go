package producer

import (
	"context"
	"time"

	"go-cart-api/internal/outbox"
	"go-cart-api/internal/pkg/logger"

	"go.uber.org/zap"
)

const (
	pollInterval = 5 * time.Second
	batchSize    = 10
)

// ProcessOutboxEvents relays pending outbox rows to Kafka until ctx is done.
func ProcessOutboxEvents(ctx context.Context, repo outbox.Repository, writer MessageWriter, l *zap.Logger) {
	log := logger.OrNop(l).Named("outbox.worker")

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	log.Info("[WORKER] outbox processor started", zap.Duration("interval", pollInterval))

	for {
		select {
		case <-ctx.Done():
			log.Info("[WORKER] outbox processor stopped")
			return
		case <-ticker.C:
			if err := processPendingEvents(ctx, repo, writer, log); err != nil {
				log.Error("[WORKER] processing events failed", zap.Error(err))
			}
		}
	}
}

func processPendingEvents(ctx context.Context, repo outbox.Repository, writer MessageWriter, log *zap.Logger) error {
	events, err := repo.ListPending(ctx, batchSize)
	if err != nil {
		return err
	}
	if len(events) == 0 {
		return nil
	}

	log.Info("[WORKER] processing pending events", zap.Int("count", len(events)))

	for _, event := range events {
		evLog := log.With(zap.Stringer("event_id", event.ID), zap.String("event_type", event.EventType))

		if err := publishEvent(ctx, writer, event); err != nil {
			evLog.Warn("[WORKER] publish failed", zap.Error(err))
			if err := repo.MarkFailed(ctx, event.ID); err != nil {
				evLog.Error("[WORKER] mark failed failed", zap.Error(err))
			}
			continue
		}

		if err := repo.MarkSent(ctx, event.ID); err != nil {
			evLog.Error("[WORKER] mark sent failed", zap.Error(err))
			continue
		}

		evLog.Debug("[WORKER] event sent")
	}

	return nil
}
