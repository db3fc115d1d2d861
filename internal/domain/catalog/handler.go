package catalog

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"starwars/internal/domain"
	"starwars/internal/domain/events"
	"starwars/internal/pkg/request"
	"starwars/internal/pkg/response"
	"starwars/internal/repository"
)

type Handler struct {
	planets    *repository.PlanetRepository
	characters *repository.CharacterRepository
	events     events.Publisher
}

func NewHandler(planets *repository.PlanetRepository, characters *repository.CharacterRepository, publisher events.Publisher) *Handler {
	if publisher == nil {
		publisher = events.Discard
	}
	return &Handler{
		planets:    planets,
		characters: characters,
		events:     publisher,
	}
}

// notFound swaps a repository miss for the entity specific message.
func notFound(err error, message string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return response.NotFound(message)
	}
	return err
}

/* ---------- PLANETS ---------- */

func (h *Handler) ListPlanets(c *gin.Context) {
	planets, err := h.planets.List(c.Request.Context())
	if err != nil {
		response.HandleError(c, err)
		return
	}

	out := make([]domain.PlanetView, 0, len(planets))
	for i := range planets {
		out = append(out, planets[i].Serialize())
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) GetPlanet(c *gin.Context) {
	id, err := request.PathID(c, "id", "planet")
	if err != nil {
		response.HandleError(c, notFound(err, "Planet not found"))
		return
	}

	planet, err := h.planets.GetByID(c.Request.Context(), id)
	if err != nil {
		response.HandleError(c, notFound(err, "Planet not found"))
		return
	}
	c.JSON(http.StatusOK, planet.Serialize())
}

func (h *Handler) CreatePlanet(c *gin.Context) {
	body, err := request.Object(c)
	if err != nil {
		response.HandleError(c, response.BadRequest("Name is required"))
		return
	}
	fields, err := parseCreate(body, planetOptional)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	planet := &domain.Planet{
		Name:       fields.Name,
		Climate:    fields.Optional["climate"],
		Population: fields.Optional["population"],
	}
	if err := h.planets.Create(c.Request.Context(), planet); err != nil {
		response.HandleError(c, err)
		return
	}

	logrus.WithFields(logrus.Fields{"planet_id": planet.ID, "name": planet.Name}).Info("planet created")
	view := planet.Serialize()
	h.events.Publish(events.New(events.TypeCreated, events.EntityPlanet, planet.ID, view))
	c.JSON(http.StatusCreated, view)
}

func (h *Handler) UpdatePlanet(c *gin.Context) {
	id, err := request.PathID(c, "id", "planet")
	if err != nil {
		response.HandleError(c, notFound(err, "Planet not found"))
		return
	}
	if _, err := h.planets.GetByID(c.Request.Context(), id); err != nil {
		response.HandleError(c, notFound(err, "Planet not found"))
		return
	}

	body, err := request.Object(c)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	changes, err := parseChanges(body, planetOptional)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	planet, err := h.planets.Update(c.Request.Context(), id, changes)
	if err != nil {
		response.HandleError(c, notFound(err, "Planet not found"))
		return
	}

	logrus.WithFields(logrus.Fields{"planet_id": id, "fields": len(changes)}).Info("planet updated")
	view := planet.Serialize()
	h.events.Publish(events.New(events.TypeUpdated, events.EntityPlanet, id, view))
	c.JSON(http.StatusOK, view)
}

func (h *Handler) DeletePlanet(c *gin.Context) {
	id, err := request.PathID(c, "id", "planet")
	if err != nil {
		response.HandleError(c, notFound(err, "Planet not found"))
		return
	}

	removed, err := h.planets.Delete(c.Request.Context(), id)
	if err != nil {
		response.HandleError(c, notFound(err, "Planet not found"))
		return
	}

	logrus.WithFields(logrus.Fields{"planet_id": id, "favorites_removed": len(removed)}).Info("planet deleted")
	events.PublishDeleted(h.events, events.EntityFavorite, removed...)
	h.events.Publish(events.New(events.TypeDeleted, events.EntityPlanet, id, nil))
	response.Message(c, http.StatusOK, "Planet deleted")
}

/* ---------- PEOPLE ---------- */

func (h *Handler) ListPeople(c *gin.Context) {
	characters, err := h.characters.List(c.Request.Context())
	if err != nil {
		response.HandleError(c, err)
		return
	}

	out := make([]domain.CharacterView, 0, len(characters))
	for i := range characters {
		out = append(out, characters[i].Serialize())
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) GetPerson(c *gin.Context) {
	id, err := request.PathID(c, "id", "people")
	if err != nil {
		response.HandleError(c, notFound(err, "Person not found"))
		return
	}

	character, err := h.characters.GetByID(c.Request.Context(), id)
	if err != nil {
		response.HandleError(c, notFound(err, "Person not found"))
		return
	}
	c.JSON(http.StatusOK, character.Serialize())
}

func (h *Handler) CreatePerson(c *gin.Context) {
	body, err := request.Object(c)
	if err != nil {
		response.HandleError(c, response.BadRequest("Name is required"))
		return
	}
	fields, err := parseCreate(body, characterOptional)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	character := &domain.Character{
		Name:   fields.Name,
		Height: fields.Optional["height"],
		Weight: fields.Optional["weight"],
	}
	if err := h.characters.Create(c.Request.Context(), character); err != nil {
		response.HandleError(c, err)
		return
	}

	logrus.WithFields(logrus.Fields{"character_id": character.ID, "name": character.Name}).Info("character created")
	view := character.Serialize()
	h.events.Publish(events.New(events.TypeCreated, events.EntityCharacter, character.ID, view))
	c.JSON(http.StatusCreated, view)
}

func (h *Handler) UpdatePerson(c *gin.Context) {
	id, err := request.PathID(c, "id", "people")
	if err != nil {
		response.HandleError(c, notFound(err, "Character not found"))
		return
	}
	if _, err := h.characters.GetByID(c.Request.Context(), id); err != nil {
		response.HandleError(c, notFound(err, "Character not found"))
		return
	}

	body, err := request.Object(c)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	changes, err := parseChanges(body, characterOptional)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	character, err := h.characters.Update(c.Request.Context(), id, changes)
	if err != nil {
		response.HandleError(c, notFound(err, "Character not found"))
		return
	}

	logrus.WithFields(logrus.Fields{"character_id": id, "fields": len(changes)}).Info("character updated")
	view := character.Serialize()
	h.events.Publish(events.New(events.TypeUpdated, events.EntityCharacter, id, view))
	c.JSON(http.StatusOK, view)
}

func (h *Handler) DeletePerson(c *gin.Context) {
	id, err := request.PathID(c, "id", "people")
	if err != nil {
		response.HandleError(c, notFound(err, "Character not found"))
		return
	}

	removed, err := h.characters.Delete(c.Request.Context(), id)
	if err != nil {
		response.HandleError(c, notFound(err, "Character not found"))
		return
	}

	logrus.WithFields(logrus.Fields{"character_id": id, "favorites_removed": len(removed)}).Info("character deleted")
	events.PublishDeleted(h.events, events.EntityFavorite, removed...)
	h.events.Publish(events.New(events.TypeDeleted, events.EntityCharacter, id, nil))
	response.Message(c, http.StatusOK, "Character deleted")
}
