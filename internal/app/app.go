package app

import (
	"database/sql"
	"net/http"

	"go-cart-api/internal/config"
	"go-cart-api/internal/middleware"
	"go-cart-api/internal/pkg/response"
	"go-cart-api/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Infra holds the process-wide connections. Redis is nil for the memory
// backend and DB is nil when DB_URL is unset.
type Infra struct {
	Store storage.Store
	Redis *redis.Client
	DB    *sql.DB
}

func Connect(cfg *config.Config, log *zap.Logger) (*Infra, error) {
	// 1. Session store
	store, rdb, err := openStore(cfg, log)
	if err != nil {
		return nil, err
	}
	infra := &Infra{Store: store, Redis: rdb}

	// 2. Postgres for discounts and the outbox
	if cfg.DBURL == "" {
		log.Warn("DB_URL not set; discounts disabled and checkout clears carts inline")
		return infra, nil
	}
	infra.DB, err = connectDBWithRetry(cfg.DBURL, log)
	if err != nil {
		infra.Close()
		return nil, err
	}
	return infra, nil
}

func (i *Infra) Close() {
	if i.DB != nil {
		_ = i.DB.Close()
	}
	if i.Redis != nil {
		_ = i.Redis.Close()
	}
}

// BuildApp connects the infrastructure, installs the middleware chain and
// registers every module on router. The returned func releases connections.
func BuildApp(router *gin.Engine, cfg *config.Config, log *zap.Logger) (func(), error) {
	infra, err := Connect(cfg, log)
	if err != nil {
		return nil, err
	}

	router.Use(
		middleware.RequestID(),
		middleware.Logger(log),
		middleware.CORS(cfg.CORSOrigins),
		middleware.Session(cfg.JWTSecret, !cfg.IsDevelopment()),
	)

	router.GET("/healthz", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"}, nil)
	})

	m := NewModules(cfg, infra, log)
	registerRoutes(router.Group("/api/v1"), m, infra.Redis, log)

	return infra.Close, nil
}
