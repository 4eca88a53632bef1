package app

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"go-cart-api/internal/config"
	"go-cart-api/internal/storage"

	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const (
	maxRetries    = 5
	retryInterval = 5 * time.Second
)

func connectDBWithRetry(dsn string, log *zap.Logger) (*sql.DB, error) {
	var err error
	for i := 1; i <= maxRetries; i++ {
		var db *sql.DB
		db, err = sql.Open("postgres", dsn)
		if err == nil {
			if err = db.Ping(); err == nil {
				log.Info("connected to database")
				return db, nil
			}
			_ = db.Close()
		}

		log.Warn("database connect failed", zap.Int("attempt", i), zap.Int("max", maxRetries), zap.Error(err))
		time.Sleep(retryInterval)
	}
	return nil, fmt.Errorf("connect database: %w", err)
}

func connectRedisWithRetry(cfg *config.Config, log *zap.Logger) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	var err error
	for i := 1; i <= maxRetries; i++ {
		if err = rdb.Ping(context.Background()).Err(); err == nil {
			log.Info("connected to redis", zap.String("addr", cfg.RedisAddr))
			return rdb, nil
		}

		log.Warn("redis connect failed", zap.Int("attempt", i), zap.Int("max", maxRetries), zap.Error(err))
		time.Sleep(retryInterval)
	}
	_ = rdb.Close()
	return nil, fmt.Errorf("connect redis: %w", err)
}

func connectKafkaWithRetry(cfg *config.Config, log *zap.Logger) (*kafka.Writer, error) {
	var err error
	for i := 1; i <= maxRetries; i++ {
		var conn *kafka.Conn
		conn, err = kafka.Dial("tcp", cfg.KafkaBroker)
		if err == nil {
			_ = conn.Close()
			log.Info("connected to kafka", zap.String("broker", cfg.KafkaBroker))
			return &kafka.Writer{
				Addr:     kafka.TCP(cfg.KafkaBroker),
				Topic:    cfg.KafkaTopic,
				Balancer: &kafka.LeastBytes{},
			}, nil
		}

		log.Warn("kafka connect failed", zap.Int("attempt", i), zap.Int("max", maxRetries), zap.Error(err))
		time.Sleep(retryInterval)
	}
	return nil, fmt.Errorf("connect kafka: %w", err)
}

// openStore picks the session key-value backend. The returned client is nil
// for the memory backend.
func openStore(cfg *config.Config, log *zap.Logger) (storage.Store, *redis.Client, error) {
	switch cfg.StoreBackend {
	case "memory":
		log.Warn("using in-memory session store; state is lost on restart")
		return storage.NewMemoryStore(), nil, nil
	case "redis", "":
		rdb, err := connectRedisWithRetry(cfg, log)
		if err != nil {
			return nil, nil, err
		}
		return storage.NewRedisStore(rdb, cfg.SessionTTL), rdb, nil
	default:
		return nil, nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}
}
