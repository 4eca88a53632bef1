package recentview

import "github.com/gin-gonic/gin"

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	views := r.Group("/recent-views")
	{
		views.GET("", handler.List)
		views.POST("", handler.Add)
		views.DELETE("", handler.Clear)
	}
}
