package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"starwars/internal/pkg/jwt"
	"starwars/internal/pkg/response"
)

// JWTAuth accepts a Bearer header, or a token query parameter for websocket
// clients that cannot set headers. It stores subject and role on the context.
func JWTAuth(jwtService *jwt.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))
		if token == "" {
			token = c.Query("token")
		}
		if token == "" {
			response.AbortWithError(c, http.StatusUnauthorized, "missing token")
			return
		}

		claims, err := jwtService.ValidateToken(token)
		if err != nil {
			response.AbortWithError(c, http.StatusUnauthorized, "invalid token")
			return
		}

		c.Set("subject", claims.Subject)
		c.Set("role", claims.Role)
		c.Next()
	}
}

func bearerToken(header string) string {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
