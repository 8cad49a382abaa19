package vaccination

import "github.com/gin-gonic/gin"

// RegisterPublicRoutes registers the read-only catalog.
func RegisterPublicRoutes(r *gin.RouterGroup, handler *Handler) {
	v := r.Group("/vaccinations")
	{
		v.GET("", handler.List)
		v.GET("/animal-type/:type", handler.ByAnimalType)
		v.GET("/:id", handler.Get)
	}
}

// RegisterAdminRoutes registers catalog management.
func RegisterAdminRoutes(r *gin.RouterGroup, handler *Handler) {
	v := r.Group("/vaccinations")
	{
		v.POST("", handler.Create)
		v.PUT("/:id", handler.Update)
		v.DELETE("/:id", handler.Delete)
	}
}

// RegisterCustomerRoutes registers the per-animal catalog under /customer/:customerId.
func RegisterCustomerRoutes(r *gin.RouterGroup, handler *Handler) {
	r.GET("/animals/:animalId/vaccinations", handler.ForCustomerAnimal)
}
