package auth

import "github.com/gin-gonic/gin"

// RegisterPublicRoutes registers the token-issuing endpoints.
func RegisterPublicRoutes(r *gin.RouterGroup, handler *Handler) {
	a := r.Group("/auth")
	{
		a.POST("/login", handler.Login)
		a.POST("/register-customer", handler.RegisterCustomer)
		a.POST("/customer-login", handler.CustomerLogin)
	}
}

// RegisterProtectedRoutes registers endpoints that need a valid token.
func RegisterProtectedRoutes(r *gin.RouterGroup, handler *Handler) {
	r.GET("/auth/me", handler.Me)
}
