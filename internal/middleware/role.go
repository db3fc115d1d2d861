package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"starwars/internal/pkg/response"
)

const RoleAdmin = "admin"

// RequireRole ensures that the authenticated caller has the specified role
func RequireRole(requiredRole string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString("role")
		if role == "" {
			response.AbortWithError(c, http.StatusUnauthorized, "role not found in token")
			return
		}

		if role != requiredRole {
			response.AbortWithError(c, http.StatusForbidden, "access denied")
			return
		}

		c.Next()
	}
}

func AdminOnly() gin.HandlerFunc {
	return RequireRole(RoleAdmin)
}
