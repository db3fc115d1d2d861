package user

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"starwars/internal/domain"
	"starwars/internal/pkg/response"
	"starwars/internal/repository"
)

type Handler struct {
	users *repository.UserRepository
}

func NewHandler(users *repository.UserRepository) *Handler {
	return &Handler{users: users}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/users", h.ListUsers)
}

// ListUsers returns every user with their favorites. Passwords are never included.
func (h *Handler) ListUsers(c *gin.Context) {
	users, err := h.users.List(c.Request.Context())
	if err != nil {
		response.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, Views(users))
}

func Views(users []domain.User) []domain.UserView {
	out := make([]domain.UserView, 0, len(users))
	for i := range users {
		out = append(out, users[i].Serialize())
	}
	return out
}
