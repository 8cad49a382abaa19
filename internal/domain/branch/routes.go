package branch

import "github.com/gin-gonic/gin"

// RegisterPublicRoutes registers the branch list shown to customers.
func RegisterPublicRoutes(r *gin.RouterGroup, handler *Handler) {
	r.GET("/branches", handler.ListPublic)
	r.GET("/branches/:id", handler.Get)
}

// RegisterStaffRoutes registers the scoped dashboard listing.
func RegisterStaffRoutes(r *gin.RouterGroup, handler *Handler) {
	r.GET("/branches/manage", handler.List)
}

// RegisterAdminRoutes registers branch management.
func RegisterAdminRoutes(r *gin.RouterGroup, handler *Handler) {
	branches := r.Group("/branches")
	{
		branches.POST("", handler.Create)
		branches.PUT("/:id", handler.Update)
		branches.DELETE("/:id", handler.Delete)
	}
}
