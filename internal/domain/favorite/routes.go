package favorite

import "github.com/gin-gonic/gin"

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/users/favorites", h.GetFavorites)

	favorite := rg.Group("/favorite")
	{
		favorite.POST("/planet/:planet_id", h.AddPlanet)
		favorite.DELETE("/planet/:planet_id", h.RemovePlanet)
		favorite.POST("/people/:people_id", h.AddPeople)
		favorite.DELETE("/people/:people_id", h.RemovePeople)
	}
}
