package user

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"starwars/internal/database"
	"starwars/internal/domain"
	"starwars/internal/repository"
)

func TestListUsers(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db, err := database.Connect(":memory:")
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() { _ = database.Close(db) })

	ctx := context.Background()
	users := repository.NewUserRepository(db)
	router := gin.New()
	NewHandler(users).RegisterRoutes(router.Group(""))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/users", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())

	han := domain.NewUser("han@falcon.space", "hunter2")
	require.NoError(t, users.Create(ctx, han))
	planet := &domain.Planet{Name: "Corellia"}
	require.NoError(t, repository.NewPlanetRepository(db).Create(ctx, planet))
	_, err = repository.NewFavoriteRepository(db).Add(ctx, han.ID, domain.PlanetTarget(planet.ID))
	require.NoError(t, err)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/users", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[{
		"id":1,"email":"han@falcon.space","is_active":true,
		"favorites":[{"id":1,"user_email":"han@falcon.space","planet_name":"Corellia","character_name":null}]
	}]`, w.Body.String())
	assert.NotContains(t, w.Body.String(), "hunter2")
}
