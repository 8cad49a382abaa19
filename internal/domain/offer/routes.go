package offer

import "github.com/gin-gonic/gin"

// RegisterPublicRoutes registers the offers the mobile app shows.
func RegisterPublicRoutes(r *gin.RouterGroup, handler *Handler) {
	r.GET("/offers", handler.Active)
}

// RegisterAdminRoutes registers offer management.
func RegisterAdminRoutes(r *gin.RouterGroup, handler *Handler) {
	offers := r.Group("/offers")
	{
		offers.GET("/all", handler.List)
		offers.GET("/:id", handler.Get)
		offers.POST("", handler.Create)
		offers.PUT("/:id", handler.Update)
		offers.DELETE("/:id", handler.Delete)
		offers.POST("/:id/apply", handler.Apply)
	}
}
