package booking

import "github.com/gin-gonic/gin"

// RegisterStaffRoutes registers the dashboard booking endpoints.
func RegisterStaffRoutes(r *gin.RouterGroup, handler *Handler) {
	bookings := r.Group("/bookings")
	{
		bookings.GET("", handler.List)
		bookings.POST("", handler.Create)
		bookings.GET("/available-slots", handler.AvailableSlots)
		bookings.GET("/:id", handler.Get)
		bookings.PUT("/:id", handler.Update)
		bookings.PATCH("/:id", handler.Update)
		bookings.PATCH("/:id/status", handler.UpdateStatus)
		bookings.DELETE("/:id", handler.Delete)
	}
}

// RegisterPublicRoutes registers slot lookup for the mobile app.
func RegisterPublicRoutes(r *gin.RouterGroup, handler *Handler) {
	r.GET("/customer/available-slots", handler.AvailableSlots)
}

// RegisterCustomerRoutes registers endpoints under /customer/:customerId.
func RegisterCustomerRoutes(r *gin.RouterGroup, handler *Handler) {
	r.GET("/bookings", handler.CustomerList)
	r.POST("/bookings", handler.CustomerCreate)
	r.GET("/bookings/:id", handler.CustomerGet)
	r.PATCH("/bookings/:id/cancel", handler.CustomerCancel)
}
