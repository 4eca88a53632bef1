package cart

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes expects the session middleware to run on r.
func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	carts := r.Group("/cart")
	{
		carts.GET("", handler.Detail)
		carts.DELETE("", handler.Clear)

		carts.PUT("/selection", handler.SelectAll)
		carts.POST("/selection/toggle", handler.ToggleSelection)

		carts.POST("/items", handler.AddItem)
		items := carts.Group("/items/:productId")
		{
			items.PATCH("/quantity", handler.ChangeQty)
			items.DELETE("", handler.DeleteItem)
		}
	}
}
