package user

import "github.com/gin-gonic/gin"

// RegisterPublicRoutes registers the doctor directory.
func RegisterPublicRoutes(r *gin.RouterGroup, handler *Handler) {
	r.GET("/doctors", handler.Doctors)
	r.GET("/doctors/:id/reviews", handler.DoctorReviews)
}

// RegisterAdminRoutes registers staff account management and review moderation.
func RegisterAdminRoutes(r *gin.RouterGroup, handler *Handler) {
	users := r.Group("/users")
	{
		users.GET("", handler.List)
		users.POST("", handler.Create)
		users.GET("/:id", handler.Get)
		users.PUT("/:id", handler.Update)
		users.DELETE("/:id", handler.Delete)
	}
	r.POST("/doctors/:id/reviews", handler.AddReview)
	r.DELETE("/doctors/:id/reviews/:reviewId", handler.RemoveReview)
}

// RegisterCustomerRoutes registers reviews written by customers under /customer/:customerId.
func RegisterCustomerRoutes(r *gin.RouterGroup, handler *Handler) {
	r.POST("/doctors/:id/reviews", handler.AddReview)
}
