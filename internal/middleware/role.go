package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"vetclinic/internal/access"
	"vetclinic/internal/pkg/response"
)

// RequireRole ensures that the authenticated user has one of the given roles.
func RequireRole(roles ...string) gin.HandlerFunc {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}

	return func(c *gin.Context) {
		role := c.GetString("role")
		if role == "" {
			response.Coded(c, http.StatusUnauthorized, "UNAUTHORIZED", "Role not found in token")
			return
		}
		if !allowed[role] {
			response.Coded(c, http.StatusForbidden, "FORBIDDEN", "Access denied: insufficient permissions")
			return
		}
		c.Next()
	}
}

// AdminOnly middleware requires admin role
func AdminOnly() gin.HandlerFunc {
	return RequireRole(access.RoleAdmin)
}

// StaffOnly admits dashboard users: admin, staff and doctors.
func StaffOnly() gin.HandlerFunc {
	return RequireRole(access.StaffRoles...)
}

// CustomerSelf lets a customer token act only on its own /customer/:customerId routes.
// Staff and admins may act on behalf of any customer.
func CustomerSelf(param string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString("role")
		if role == access.RoleAdmin || role == access.RoleStaff {
			c.Next()
			return
		}
		if role != access.RoleCustomer {
			response.Coded(c, http.StatusForbidden, "FORBIDDEN", "Access denied")
			return
		}
		if c.Param(param) != formatID(c.GetInt64("user_id")) {
			response.Coded(c, http.StatusForbidden, "FORBIDDEN", "Access denied: not your account")
			return
		}
		c.Next()
	}
}
