package request

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"starwars/internal/repository"
)

func contextWithBody(body string) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	return c
}

func TestBodyUserID(t *testing.T) {
	id, err := BodyUserID(contextWithBody(`{"user_id": 7}`))
	require.NoError(t, err)
	assert.Equal(t, int64(7), id)

	for _, body := range []string{`{}`, `{"user_id": null}`, `{"user_id": 0}`, `not json`, ``} {
		_, err := BodyUserID(contextWithBody(body))
		assert.EqualError(t, err, "user_id is required in request body", body)
	}

	id, err = BodyUserID(contextWithBody(`{"user_id": "12"}`))
	require.NoError(t, err)
	assert.Equal(t, int64(12), id)

	for _, body := range []string{`{"user_id": "one"}`, `{"user_id": 1.5}`, `{"user_id": true}`} {
		_, err := BodyUserID(contextWithBody(body))
		assert.EqualError(t, err, "user_id must be an integer", body)
	}
}

func TestPathID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mk := func(value string) *gin.Context {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Params = gin.Params{{Key: "id", Value: value}}
		return c
	}

	id, err := PathID(mk("42"), "id", "planet")
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	_, err = PathID(mk("abc"), "id", "planet")
	assert.EqualError(t, err, "invalid planet id")

	_, err = PathID(mk("99999999999999999999"), "id", "planet")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestQueryUserID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mk := func(target string) *gin.Context {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest(http.MethodGet, target, nil)
		return c
	}

	id, err := QueryUserID(mk("/?user_id=3"))
	require.NoError(t, err)
	assert.Equal(t, int64(3), id)

	_, err = QueryUserID(mk("/"))
	assert.EqualError(t, err, "user_id is required as query parameter")

	_, err = QueryUserID(mk("/?user_id=abc"))
	assert.EqualError(t, err, "user_id must be an integer")
}

func TestText(t *testing.T) {
	v, err := Text(json.RawMessage(`"arid"`))
	require.NoError(t, err)
	assert.Equal(t, "arid", *v)

	v, err = Text(json.RawMessage(`200000`))
	require.NoError(t, err)
	assert.Equal(t, "200000", *v)

	v, err = Text(json.RawMessage(`null`))
	require.NoError(t, err)
	assert.Nil(t, v)

	_, err = Text(json.RawMessage(`{"a":1}`))
	assert.Error(t, err)
}

func TestChanges(t *testing.T) {
	body := map[string]json.RawMessage{
		"climate":    json.RawMessage(`"arid"`),
		"population": json.RawMessage(`null`),
		"unknown":    json.RawMessage(`1`),
	}
	changes, err := Changes(body, []string{"name"}, []string{"climate", "population"})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"climate": "arid", "population": nil}, changes)

	_, err = Changes(map[string]json.RawMessage{"name": json.RawMessage(`""`)}, []string{"name"}, nil)
	assert.EqualError(t, err, "name must be a non-empty string")

	changes, err = Changes(map[string]json.RawMessage{"name": json.RawMessage(`"   "`)}, []string{"name"}, nil)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"name": "   "}, changes)

	_, err = Changes(map[string]json.RawMessage{"climate": json.RawMessage(`[1]`)}, nil, []string{"climate"})
	assert.EqualError(t, err, "climate must be a string")
}
