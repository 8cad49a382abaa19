package consultation

import "github.com/gin-gonic/gin"

func RegisterStaffRoutes(r *gin.RouterGroup, handler *Handler) {
	consultations := r.Group("/consultations")
	{
		consultations.GET("", handler.List)
		consultations.POST("", handler.Create)
		consultations.GET("/:id", handler.Get)
		consultations.PUT("/:id", handler.Update)
		consultations.PATCH("/:id/status", handler.UpdateStatus)
		consultations.DELETE("/:id", handler.Delete)
	}
}

// RegisterCustomerRoutes registers endpoints under /customer/:customerId.
func RegisterCustomerRoutes(r *gin.RouterGroup, handler *Handler) {
	r.GET("/consultations", handler.CustomerList)
	r.POST("/consultations", handler.CustomerCreate)
	r.PATCH("/consultations/:id/cancel", handler.CustomerCancel)
}
