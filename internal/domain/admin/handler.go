package admin

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"starwars/internal/domain"
	"starwars/internal/domain/auth"
	"starwars/internal/domain/events"
	"starwars/internal/domain/user"
	"starwars/internal/middleware"
	"starwars/internal/pkg/jwt"
	"starwars/internal/pkg/request"
	"starwars/internal/pkg/response"
	"starwars/internal/pkg/validator"
	"starwars/internal/repository"
)

const adminSubject = "admin"

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type Repositories struct {
	Users      *repository.UserRepository
	Planets    *repository.PlanetRepository
	Characters *repository.CharacterRepository
	Favorites  repository.FavoriteRepository
}

type Handler struct {
	secretKey string
	jwt       *jwt.Service
	repos     Repositories
	hub       *events.Hub
}

func NewHandler(secretKey string, jwtService *jwt.Service, repos Repositories, hub *events.Hub) *Handler {
	return &Handler{
		secretKey: secretKey,
		jwt:       jwtService,
		repos:     repos,
		hub:       hub,
	}
}

// Login exchanges the shared secret key for a bearer token.
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if errs := validator.Validate(req); errs != nil {
		response.Error(c, http.StatusBadRequest, validationMessage(errs))
		return
	}

	if !auth.SecretMatches(req.SecretKey, h.secretKey) {
		logrus.WithField("client_ip", c.ClientIP()).Warn("admin login rejected")
		response.Error(c, http.StatusUnauthorized, "invalid secret key")
		return
	}

	token, err := h.jwt.GenerateToken(adminSubject, middleware.RoleAdmin)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	logrus.WithField("client_ip", c.ClientIP()).Info("admin logged in")
	c.JSON(http.StatusOK, LoginResponse{Token: token, ExpiresIn: int64(h.jwt.TTL().Seconds())})
}

func (h *Handler) Tables(c *gin.Context) {
	ctx := c.Request.Context()
	counters := []struct {
		table string
		count func() (int64, error)
	}{
		{"user", func() (int64, error) { return h.repos.Users.Count(ctx) }},
		{"planet", func() (int64, error) { return h.repos.Planets.Count(ctx) }},
		{"character", func() (int64, error) { return h.repos.Characters.Count(ctx) }},
		{"favorite", func() (int64, error) { return h.repos.Favorites.Count(ctx) }},
	}

	out := make(TableCounts, len(counters))
	for _, counter := range counters {
		n, err := counter.count()
		if err != nil {
			response.HandleError(c, err)
			return
		}
		out[counter.table] = n
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) ListUsers(c *gin.Context) {
	users, err := h.repos.Users.List(c.Request.Context())
	if err != nil {
		response.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, user.Views(users))
}

func (h *Handler) CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request body")
		return
	}
	req.Email = strings.TrimSpace(req.Email)
	if errs := validator.Validate(req); errs != nil {
		response.Error(c, http.StatusBadRequest, validationMessage(errs))
		return
	}
	if len(req.Password) > auth.MaxPasswordLength {
		response.Error(c, http.StatusBadRequest, "password must be at most 72 bytes")
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	u := domain.NewUser(req.Email, hash)
	if req.IsActive != nil {
		u.IsActive = *req.IsActive
	}
	if err := h.repos.Users.Create(c.Request.Context(), u); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			err = response.NewError(http.StatusConflict, "email already registered")
		}
		response.HandleError(c, err)
		return
	}

	logrus.WithFields(logrus.Fields{"user_id": u.ID, "email": u.Email}).Info("user created")
	view := u.Serialize()
	h.hub.Publish(events.New(events.TypeCreated, events.EntityUser, u.ID, view))
	c.JSON(http.StatusCreated, view)
}

func (h *Handler) DeleteUser(c *gin.Context) {
	var removed []int64
	id, err := request.PathID(c, "id", "user")
	if err == nil {
		removed, err = h.repos.Users.Delete(c.Request.Context(), id)
	}
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			err = response.NotFound("User not found")
		}
		response.HandleError(c, err)
		return
	}

	logrus.WithFields(logrus.Fields{"user_id": id, "favorites_removed": len(removed)}).Info("user deleted")
	events.PublishDeleted(h.hub, events.EntityFavorite, removed...)
	h.hub.Publish(events.New(events.TypeDeleted, events.EntityUser, id, nil))
	response.Message(c, http.StatusOK, "User deleted")
}

func (h *Handler) ListFavorites(c *gin.Context) {
	favorites, err := h.repos.Favorites.List(c.Request.Context())
	if err != nil {
		response.HandleError(c, err)
		return
	}

	out := make([]domain.FavoriteView, 0, len(favorites))
	for i := range favorites {
		out = append(out, favorites[i].Serialize())
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) DeleteFavorite(c *gin.Context) {
	id, err := request.PathID(c, "id", "favorite")
	if err == nil {
		err = h.repos.Favorites.Delete(c.Request.Context(), id)
	}
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			err = response.NotFound("Favorite not found")
		}
		response.HandleError(c, err)
		return
	}

	logrus.WithField("favorite_id", id).Info("favorite deleted")
	h.hub.Publish(events.New(events.TypeDeleted, events.EntityFavorite, id, nil))
	response.Message(c, http.StatusOK, "Favorite deleted")
}

// Feed upgrades to a websocket and streams change events until the client goes away.
func (h *Handler) Feed(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logrus.WithError(err).Warn("admin feed upgrade failed")
		return
	}

	id := h.hub.Register(conn)
	defer h.hub.Unregister(id)

	logrus.WithField("conn", id).Info("admin feed connected")
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logrus.WithError(err).Debug("admin feed closed unexpectedly")
			}
			return
		}
	}
}
