package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"starwars/internal/database"
	"starwars/internal/domain"
	"starwars/internal/domain/events"
	"starwars/internal/repository"
)

type recorder struct {
	mu     sync.Mutex
	events []events.Event
}

func (r *recorder) Publish(ev events.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
}

func setupRouter(t *testing.T) (*gin.Engine, *gorm.DB, *recorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.Connect(":memory:")
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() { _ = database.Close(db) })

	rec := &recorder{}
	h := NewHandler(repository.NewPlanetRepository(db), repository.NewCharacterRepository(db), rec)

	r := gin.New()
	h.RegisterRoutes(r.Group(""))
	return r, db, rec
}

func performRequest(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body == "" {
		reader = bytes.NewReader(nil)
	} else {
		reader = bytes.NewReader([]byte(body))
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestCreateAndGetPlanet(t *testing.T) {
	r, _, rec := setupRouter(t)

	w := performRequest(r, http.MethodPost, "/planet", `{"name":"Tatooine","climate":"arid","population":200000}`)
	require.Equal(t, http.StatusCreated, w.Code)
	created := decode[domain.PlanetView](t, w)
	assert.Equal(t, "Tatooine", created.Name)
	assert.Equal(t, "200000", *created.Population)

	w = performRequest(r, http.MethodGet, "/planets/1", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":1,"name":"Tatooine","climate":"arid","population":"200000"}`, w.Body.String())

	require.Len(t, rec.events, 1)
	assert.Equal(t, events.TypeCreated, rec.events[0].Type)
	assert.Equal(t, events.EntityPlanet, rec.events[0].Entity)
}

func TestCreatePlanetRequiresName(t *testing.T) {
	r, _, rec := setupRouter(t)

	for _, body := range []string{`{}`, `{"name":""}`, `{"name":null}`, `{"climate":"arid"}`, `[]`, ``} {
		w := performRequest(r, http.MethodPost, "/planet", body)
		assert.Equal(t, http.StatusBadRequest, w.Code, body)
		assert.JSONEq(t, `{"error":"Name is required"}`, w.Body.String(), body)
	}
	assert.Empty(t, rec.events)
}

func TestGetPlanetNotFound(t *testing.T) {
	r, _, _ := setupRouter(t)

	for _, path := range []string{"/planets/99", "/planets/0", "/planets/-1"} {
		w := performRequest(r, http.MethodGet, path, "")
		assert.Equal(t, http.StatusNotFound, w.Code, path)
		assert.JSONEq(t, `{"error":"Planet not found"}`, w.Body.String())
	}

	w := performRequest(r, http.MethodGet, "/planets/abc", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"invalid planet id"}`, w.Body.String())
}

func TestUpdatePlanetPartial(t *testing.T) {
	r, _, _ := setupRouter(t)
	performRequest(r, http.MethodPost, "/planet", `{"name":"Hoth","climate":"frozen","population":"unknown"}`)

	w := performRequest(r, http.MethodPut, "/planet/1", `{"climate":"arid","ignored":true}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":1,"name":"Hoth","climate":"arid","population":"unknown"}`, w.Body.String())

	w = performRequest(r, http.MethodPut, "/planet/1", `{"population":null}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":1,"name":"Hoth","climate":"arid","population":null}`, w.Body.String())

	w = performRequest(r, http.MethodPut, "/planet/1", `{"name":""}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdatePlanetNotFoundBeforeBody(t *testing.T) {
	r, _, _ := setupRouter(t)

	w := performRequest(r, http.MethodPut, "/planet/5", `not json`)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"Planet not found"}`, w.Body.String())
}

func TestDeletePlanet(t *testing.T) {
	r, _, rec := setupRouter(t)
	performRequest(r, http.MethodPost, "/planet", `{"name":"Alderaan"}`)

	w := performRequest(r, http.MethodDelete, "/planet/1", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"msg":"Planet deleted"}`, w.Body.String())

	w = performRequest(r, http.MethodDelete, "/planet/1", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"Planet not found"}`, w.Body.String())

	require.Len(t, rec.events, 2)
	assert.Equal(t, events.TypeDeleted, rec.events[1].Type)
	assert.Nil(t, rec.events[1].Data)
}

func TestListPlanetsEmpty(t *testing.T) {
	r, _, _ := setupRouter(t)

	w := performRequest(r, http.MethodGet, "/planets", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestPeopleLifecycle(t *testing.T) {
	r, _, _ := setupRouter(t)

	w := performRequest(r, http.MethodPost, "/people", `{"name":"Luke Skywalker","height":172}`)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"id":1,"name":"Luke Skywalker","height":"172","weight":null}`, w.Body.String())

	w = performRequest(r, http.MethodGet, "/people", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]domain.CharacterView](t, w), 1)

	w = performRequest(r, http.MethodPut, "/people/1", `{"weight":"77"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":1,"name":"Luke Skywalker","height":"172","weight":"77"}`, w.Body.String())

	w = performRequest(r, http.MethodDelete, "/people/1", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"msg":"Character deleted"}`, w.Body.String())

	w = performRequest(r, http.MethodGet, "/people/1", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"Person not found"}`, w.Body.String())

	w = performRequest(r, http.MethodPut, "/people/1", `{}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"Character not found"}`, w.Body.String())

	w = performRequest(r, http.MethodGet, "/people/luke", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"invalid people id"}`, w.Body.String())
}

func TestOutOfRangeIDIsNotFound(t *testing.T) {
	r, _, _ := setupRouter(t)
	const huge = "99999999999999999999"

	cases := []struct {
		method, path, body, msg string
	}{
		{http.MethodGet, "/planets/" + huge, "", "Planet not found"},
		{http.MethodPut, "/planet/" + huge, `{"climate":"arid"}`, "Planet not found"},
		{http.MethodDelete, "/planet/" + huge, "", "Planet not found"},
		{http.MethodGet, "/people/" + huge, "", "Person not found"},
		{http.MethodPut, "/people/-" + huge, `{}`, "Character not found"},
		{http.MethodDelete, "/people/" + huge, "", "Character not found"},
	}
	for _, tc := range cases {
		w := performRequest(r, tc.method, tc.path, tc.body)
		assert.Equal(t, http.StatusNotFound, w.Code, tc.path)
		assert.JSONEq(t, `{"error":"`+tc.msg+`"}`, w.Body.String(), tc.path)
	}
}

func TestCreatePlanetAcceptsBlankName(t *testing.T) {
	r, _, _ := setupRouter(t)

	w := performRequest(r, http.MethodPost, "/planet", `{"name":"   "}`)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "   ", decode[domain.PlanetView](t, w).Name)
}

func TestDeletePlanetPublishesCascadedFavorites(t *testing.T) {
	r, db, rec := setupRouter(t)
	ctx := context.Background()

	user := domain.NewUser("wedge@rogue.squadron", "x-wing")
	require.NoError(t, repository.NewUserRepository(db).Create(ctx, user))
	w := performRequest(r, http.MethodPost, "/planet", `{"name":"Bespin"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	favorites := repository.NewFavoriteRepository(db)
	first, err := favorites.Add(ctx, user.ID, domain.PlanetTarget(1))
	require.NoError(t, err)
	second, err := favorites.Add(ctx, user.ID, domain.PlanetTarget(1))
	require.NoError(t, err)

	w = performRequest(r, http.MethodDelete, "/planet/1", "")
	require.Equal(t, http.StatusOK, w.Code)

	var deleted []events.Event
	for _, ev := range rec.events {
		if ev.Type == events.TypeDeleted {
			deleted = append(deleted, ev)
		}
	}
	require.Len(t, deleted, 3)
	assert.Equal(t, events.EntityFavorite, deleted[0].Entity)
	assert.Equal(t, first.ID, deleted[0].ID)
	assert.Equal(t, events.EntityFavorite, deleted[1].Entity)
	assert.Equal(t, second.ID, deleted[1].ID)
	assert.Equal(t, events.EntityPlanet, deleted[2].Entity)
	assert.Equal(t, int64(1), deleted[2].ID)
}
