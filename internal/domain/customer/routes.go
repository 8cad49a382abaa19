package customer

import (
	"github.com/gin-gonic/gin"

	"vetclinic/internal/middleware"
)

// RegisterStaffRoutes registers customer management for dashboard users.
func RegisterStaffRoutes(r *gin.RouterGroup, handler *Handler) {
	customers := r.Group("/customers")
	{
		customers.GET("", handler.List)
		customers.POST("", handler.Create)
		customers.GET("/phone/:phone", handler.GetByPhone)
		customers.GET("/:id", handler.Get)
		customers.PUT("/:id", handler.Update)
		customers.DELETE("/:id", middleware.AdminOnly(), handler.Delete)
		customers.GET("/:id/animals", handler.ListAnimals)
		customers.POST("/:id/animals", handler.AddAnimal)
		customers.PUT("/:id/animals/:animalId", handler.UpdateAnimal)
		customers.DELETE("/:id/animals/:animalId", handler.RemoveAnimal)
	}
}

// RegisterCustomerRoutes registers self-service routes under /customer/:customerId.
func RegisterCustomerRoutes(r *gin.RouterGroup, handler *Handler) {
	r.GET("/profile", handler.Get)
	r.PUT("/profile", handler.Update)
	r.GET("/animals", handler.ListAnimals)
	r.POST("/animals", handler.AddAnimal)
	r.PUT("/animals/:animalId", handler.UpdateAnimal)
	r.DELETE("/animals/:animalId", handler.RemoveAnimal)
}
