package wishlist

import (
	"go-cart-api/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	wishlists := r.Group("/wishlist")
	{
		wishlists.GET("",
			middleware.RateLimitBySession(5, 10),
			handler.List,
		)
		wishlists.PUT("", handler.Sync)

		// toggles hit the backend, keep them tight
		wishlists.POST("/:productId/toggle",
			middleware.RateLimitBySession(2, 5),
			handler.Toggle,
		)
	}
}
