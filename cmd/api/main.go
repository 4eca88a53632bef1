package main

import (
	"log"
	"time"

	"go-cart-api/internal/app"
	"go-cart-api/internal/config"
	"go-cart-api/internal/pkg/logger"

	"github.com/gin-gonic/gin"
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
	zap.ReplaceGlobals(zl)

	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())

	// build dependency + routes
	cleanup, err := app.BuildApp(r, cfg, zl)
	if err != nil {
		zl.Fatal("build app", zap.Error(err))
	}
	defer cleanup()

	err = app.StartHTTPServer(r, app.ServerConfig{
		Port:         cfg.Port,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}, zl)
	if err != nil {
		zl.Error("http server", zap.Error(err))
	}
}
