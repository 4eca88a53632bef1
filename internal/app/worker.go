package app

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-cart-api/internal/config"
	"go-cart-api/internal/messaging/kafka/producer"
	"go-cart-api/internal/outbox"

	"go.uber.org/zap"
)

// RunWorker relays outbox rows to Kafka until SIGINT/SIGTERM.
func RunWorker(cfg *config.Config, log *zap.Logger) error {
	log = log.Named("worker")
	log.Info("[WORKER] starting outbox processor")

	if cfg.DBURL == "" {
		return errors.New("DB_URL is required for the outbox worker")
	}

	// 1. Connect to database
	db, err := connectDBWithRetry(cfg.DBURL, log)
	if err != nil {
		return err
	}
	defer db.Close()

	// 2. Kafka writer
	writer, err := connectKafkaWithRetry(cfg, log)
	if err != nil {
		return err
	}
	defer writer.Close()

	// 3. Start processor
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan struct{})
	go func() {
		producer.ProcessOutboxEvents(ctx, outbox.NewRepository(db), writer, log)
		close(done)
	}()

	// 4. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("[WORKER] shutting down")
	cancel()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		log.Warn("[WORKER] processor did not stop in time")
	}
	log.Info("[WORKER] stopped")
	return nil
}
