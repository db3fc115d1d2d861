package admin

import (
	"github.com/gin-gonic/gin"

	"starwars/internal/middleware"
)

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	admin := rg.Group("/admin")
	admin.POST("/login", h.Login)

	protected := admin.Group("")
	protected.Use(middleware.JWTAuth(h.jwt), middleware.AdminOnly())
	{
		protected.GET("/tables", h.Tables)

		protected.GET("/users", h.ListUsers)
		protected.POST("/users", h.CreateUser)
		protected.DELETE("/users/:id", h.DeleteUser)

		protected.GET("/favorites", h.ListFavorites)
		protected.DELETE("/favorites/:id", h.DeleteFavorite)

		protected.GET("/ws", h.Feed)
	}
}
