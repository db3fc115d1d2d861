package favorite

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

// targetRoute describes one favorite route family.
type targetRoute struct {
	param      string
	entity     string
	notFound   string
	addedMsg   string
	removedMsg string
	makeTarget func(int64) domain.Target
}

var (
	planetRoute = targetRoute{
		param:      "planet_id",
		entity:     "planet",
		notFound:   "Planet not found",
		addedMsg:   "Planet added to favorites",
		removedMsg: "Planet removed from favorites",
		makeTarget: domain.PlanetTarget,
	}
	peopleRoute = targetRoute{
		param:      "people_id",
		entity:     "people",
		notFound:   "Character not found",
		addedMsg:   "People added to favorites",
		removedMsg: "People removed from favorites",
		makeTarget: domain.CharacterTarget,
	}
)

type Handler struct {
	repo       repository.FavoriteRepository
	planets    *repository.PlanetRepository
	characters *repository.CharacterRepository
	events     events.Publisher
}

func NewHandler(
	repo repository.FavoriteRepository,
	planets *repository.PlanetRepository,
	characters *repository.CharacterRepository,
	publisher events.Publisher,
) *Handler {
	if publisher == nil {
		publisher = events.Discard
	}
	return &Handler{
		repo:       repo,
		planets:    planets,
		characters: characters,
		events:     publisher,
	}
}

// GetFavorites lists the favorites of ?user_id. The user itself is not looked up.
func (h *Handler) GetFavorites(c *gin.Context) {
	userID, err := request.QueryUserID(c)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	favorites, err := h.repo.ListByUser(c.Request.Context(), userID)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, toViews(favorites))
}

func (h *Handler) AddPlanet(c *gin.Context)    { h.add(c, planetRoute) }
func (h *Handler) AddPeople(c *gin.Context)    { h.add(c, peopleRoute) }
func (h *Handler) RemovePlanet(c *gin.Context) { h.remove(c, planetRoute) }
func (h *Handler) RemovePeople(c *gin.Context) { h.remove(c, peopleRoute) }

func (h *Handler) add(c *gin.Context, rt targetRoute) {
	targetID, err := request.PathID(c, rt.param, rt.entity)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			err = response.NotFound(rt.notFound)
		}
		response.HandleError(c, err)
		return
	}
	userID, err := request.BodyUserID(c)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	target := rt.makeTarget(targetID)
	if err := h.targetExists(c, target); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			err = response.NotFound(rt.notFound)
		}
		response.HandleError(c, err)
		return
	}

	favorite, err := h.repo.Add(c.Request.Context(), userID, target)
	if err != nil {
		if errors.Is(err, repository.ErrMissingReference) {
			err = response.NotFound("User not found")
		}
		response.HandleError(c, err)
		return
	}

	logrus.WithFields(logrus.Fields{
		"favorite_id": favorite.ID,
		"user_id":     userID,
		"target":      target.String(),
	}).Info(rt.addedMsg)

	view := favorite.Serialize()
	h.events.Publish(events.New(events.TypeCreated, events.EntityFavorite, favorite.ID, view))
	c.JSON(http.StatusCreated, view)
}

func (h *Handler) remove(c *gin.Context, rt targetRoute) {
	targetID, err := request.PathID(c, rt.param, rt.entity)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			err = response.NotFound("Favorite not found")
		}
		response.HandleError(c, err)
		return
	}
	userID, err := request.BodyUserID(c)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	target := rt.makeTarget(targetID)
	id, err := h.repo.Remove(c.Request.Context(), userID, target)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			err = response.NotFound("Favorite not found")
		}
		response.HandleError(c, err)
		return
	}

	logrus.WithFields(logrus.Fields{
		"favorite_id": id,
		"user_id":     userID,
		"target":      target.String(),
	}).Info(rt.removedMsg)

	h.events.Publish(events.New(events.TypeDeleted, events.EntityFavorite, id, nil))
	response.Message(c, http.StatusOK, rt.removedMsg)
}

func (h *Handler) targetExists(c *gin.Context, target domain.Target) error {
	var err error
	switch target.Kind {
	case domain.TargetPlanet:
		_, err = h.planets.GetByID(c.Request.Context(), target.ID)
	case domain.TargetCharacter:
		_, err = h.characters.GetByID(c.Request.Context(), target.ID)
	default:
		err = domain.ErrInvalidTarget
	}
	return err
}

func toViews(favorites []domain.Favorite) []domain.FavoriteView {
	out := make([]domain.FavoriteView, 0, len(favorites))
	for i := range favorites {
		out = append(out, favorites[i].Serialize())
	}
	return out
}
