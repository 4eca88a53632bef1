package order

import (
	"go-cart-api/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rdb *redis.Client) {
	orders := r.Group("/orders")
	orders.Use(middleware.RateLimitBySession(5, 10))
	{
		// replays are answered before the limiter; one new checkout per 10s
		var checkout []gin.HandlerFunc
		if rdb != nil {
			checkout = append(checkout, middleware.Idempotency(rdb))
		}
		checkout = append(checkout, middleware.RateLimitBySession(0.1, 1), handler.Checkout)
		orders.POST("/checkout", checkout...)

		orders.GET("", handler.List)
		orders.GET("/:id", handler.Detail)
	}
}
