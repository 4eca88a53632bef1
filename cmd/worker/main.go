package main

import (
	"log"

	"go-cart-api/internal/app"
	"go-cart-api/internal/config"
	"go-cart-api/internal/pkg/logger"

	"go.uber.org/zap"
)

func main() {
	cfg := config.DefaultConfig()
	cfg.LoadFromEnv()

	zl, err := logger.New(cfg.LogLevel, cfg.AppEnv)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	if err := app.RunWorker(cfg, zl); err != nil {
		zl.Fatal("[WORKER] exited", zap.Error(err))
	}
}
