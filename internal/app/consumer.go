package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"go-cart-api/internal/cart"
	"go-cart-api/internal/config"
	"go-cart-api/internal/messaging/kafka/consumer"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// RunConsumer applies order events to the session carts until SIGINT/SIGTERM.
func RunConsumer(cfg *config.Config, log *zap.Logger) error {
	log = log.Named("consumer")
	log.Info("[CONSUMER] starting cart consumer")

	// 1. Session store shared with the API
	store, rdb, err := openStore(cfg, log)
	if err != nil {
		return err
	}
	if rdb != nil {
		defer rdb.Close()
	}

	cartService := cart.NewService(cart.Deps{
		Store:     store,
		CacheSize: cfg.SessionCacheSize,
		Logger:    log,
	})

	// 2. Kafka reader
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers: []string{cfg.KafkaBroker},
		Topic:   cfg.KafkaTopic,
		GroupID: cfg.KafkaGroupID,
	})
	defer reader.Close()
	log.Info("[CONSUMER] kafka reader initialized",
		zap.String("topic", cfg.KafkaTopic),
		zap.String("group_id", cfg.KafkaGroupID),
	)

	// 3. Start consuming
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan struct{})
	go func() {
		consumer.ConsumeMessages(ctx, reader, cartService, log)
		close(done)
	}()

	// 4. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("[CONSUMER] shutting down")
	cancel()
	<-done
	log.Info("[CONSUMER] stopped")
	return nil
}
