package server

import (
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"starwars/internal/domain/admin"
	"starwars/internal/domain/catalog"
	"starwars/internal/domain/events"
	"starwars/internal/domain/favorite"
	"starwars/internal/domain/user"
	"starwars/internal/middleware"
	"starwars/internal/pkg/jwt"
	"starwars/internal/pkg/response"
	"starwars/internal/repository"
)

type Deps struct {
	DB *gorm.DB
	// AdminSecretKey enables the /admin routes when non-empty.
	AdminSecretKey string
	AdminTokenTTL  time.Duration
}

type Route struct {
	Method string `json:"method"`
	Path   string `json:"path"`
}

type Server struct {
	engine *gin.Engine
	hub    *events.Hub
}

func New(deps Deps) *Server {
	r := gin.New()
	r.RedirectTrailingSlash = false
	r.Use(middleware.RequestID(), middleware.ErrorLogger(), middleware.CORS())

	userRepo := repository.NewUserRepository(deps.DB)
	planetRepo := repository.NewPlanetRepository(deps.DB)
	characterRepo := repository.NewCharacterRepository(deps.DB)
	favoriteRepo := repository.NewFavoriteRepository(deps.DB)

	s := &Server{engine: r}
	var publisher events.Publisher = events.Discard
	if deps.AdminSecretKey != "" {
		s.hub = events.NewHub()
		publisher = s.hub
	}

	root := r.Group("")
	catalog.NewHandler(planetRepo, characterRepo, publisher).RegisterRoutes(root)
	user.NewHandler(userRepo).RegisterRoutes(root)
	favorite.NewHandler(favoriteRepo, planetRepo, characterRepo, publisher).RegisterRoutes(root)

	if s.hub != nil {
		ttl := deps.AdminTokenTTL
		if ttl <= 0 {
			ttl = 12 * time.Hour
		}
		admin.NewHandler(deps.AdminSecretKey, jwt.New(deps.AdminSecretKey, ttl), admin.Repositories{
			Users:      userRepo,
			Planets:    planetRepo,
			Characters: characterRepo,
			Favorites:  favoriteRepo,
		}, s.hub).RegisterRoutes(root)
	} else {
		logrus.Info("ADMIN_SECRET_KEY not set, admin console disabled")
	}

	r.GET("/", s.sitemap)
	r.NoRoute(func(c *gin.Context) {
		response.Error(c, http.StatusNotFound, "not found")
	})

	return s
}

// Routes lists every registered route ordered by path then method.
func (s *Server) Routes() []Route {
	info := s.engine.Routes()
	routes := make([]Route, 0, len(info))
	for _, ri := range info {
		routes = append(routes, Route{Method: ri.Method, Path: ri.Path})
	}
	sort.Slice(routes, func(i, j int) bool {
		if routes[i].Path != routes[j].Path {
			return routes[i].Path < routes[j].Path
		}
		return routes[i].Method < routes[j].Method
	})
	return routes
}

func (s *Server) sitemap(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"routes": s.Routes()})
}

// Handler serves the router with trailing slashes ignored, so /planets/ and
// /planets reach the same route.
func (s *Server) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		if p := req.URL.Path; len(p) > 1 && strings.HasSuffix(p, "/") {
			req.URL.Path = strings.TrimRight(p, "/")
			if req.URL.Path == "" {
				req.URL.Path = "/"
			}
			if req.URL.RawPath != "" {
				req.URL.RawPath = strings.TrimRight(req.URL.RawPath, "/")
			}
		}
		s.engine.ServeHTTP(w, req)
	})
}

// Close disconnects admin feed clients.
func (s *Server) Close() {
	if s.hub != nil {
		s.hub.Close()
	}
}
