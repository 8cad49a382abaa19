package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"vetclinic/internal/pkg/jwt"
	"vetclinic/internal/pkg/response"
)

// JWTAuth validates the bearer token and stores user_id, role and branch_id on the context.
func JWTAuth(j *jwt.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		if h == "" {
			response.Coded(c, http.StatusUnauthorized, "AUTH_HEADER_MISSING", "Missing Authorization header")
			return
		}

		parts := strings.SplitN(h, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
			response.Coded(c, http.StatusUnauthorized, "INVALID_AUTH_FORMAT", "Authorization header must be 'Bearer <token>'")
			return
		}

		claims, err := j.ValidateToken(strings.TrimSpace(parts[1]))
		if err != nil {
			response.Coded(c, http.StatusUnauthorized, "INVALID_TOKEN", "Invalid or expired token")
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("role", claims.Role)
		c.Set("branch_id", claims.BranchID)
		c.Next()
	}
}
