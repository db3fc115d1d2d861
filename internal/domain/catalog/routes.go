package catalog

import "github.com/gin-gonic/gin"

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/planets", h.ListPlanets)
	r.GET("/planets/:id", h.GetPlanet)

	planet := r.Group("/planet")
	{
		planet.POST("", h.CreatePlanet)
		planet.PUT("/:id", h.UpdatePlanet)
		planet.DELETE("/:id", h.DeletePlanet)
	}

	people := r.Group("/people")
	{
		people.GET("", h.ListPeople)
		people.POST("", h.CreatePerson)
		people.GET("/:id", h.GetPerson)
		people.PUT("/:id", h.UpdatePerson)
		people.DELETE("/:id", h.DeletePerson)
	}
}
