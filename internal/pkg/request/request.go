package request

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"starwars/internal/pkg/response"
	"starwars/internal/repository"
)

// PathID parses an integer path parameter. entity is used in the error message.
// Numbers too large for an id cannot exist in the store and yield repository.ErrNotFound.
func PathID(c *gin.Context, param, entity string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(param), 10, 64)
	if errors.Is(err, strconv.ErrRange) {
		return 0, repository.ErrNotFound
	}
	if err != nil {
		return 0, response.BadRequest(fmt.Sprintf("invalid %s id", entity))
	}
	return id, nil
}

type userRef struct {
	UserID json.RawMessage `json:"user_id"`
}

// BodyUserID reads the required user_id from a JSON body. Numeric strings are accepted.
func BodyUserID(c *gin.Context) (int64, error) {
	var ref userRef
	if err := c.ShouldBindJSON(&ref); err != nil {
		return 0, response.BadRequest("user_id is required in request body")
	}

	raw := strings.TrimSpace(string(ref.UserID))
	if raw == "" || raw == "null" {
		return 0, response.BadRequest("user_id is required in request body")
	}

	var id int64
	if err := json.Unmarshal(ref.UserID, &id); err != nil {
		var s string
		if json.Unmarshal(ref.UserID, &s) != nil {
			return 0, response.BadRequest("user_id must be an integer")
		}
		if id, err = strconv.ParseInt(strings.TrimSpace(s), 10, 64); err != nil {
			return 0, response.BadRequest("user_id must be an integer")
		}
	}
	if id == 0 {
		return 0, response.BadRequest("user_id is required in request body")
	}
	return id, nil
}

// QueryUserID reads the required user_id query parameter.
func QueryUserID(c *gin.Context) (int64, error) {
	raw := strings.TrimSpace(c.Query("user_id"))
	if raw == "" {
		return 0, response.BadRequest("user_id is required as query parameter")
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, response.BadRequest("user_id must be an integer")
	}
	return id, nil
}

// Object decodes the body into its top-level keys so callers can tell an absent
// key from an explicit null.
func Object(c *gin.Context) (map[string]json.RawMessage, error) {
	var body map[string]json.RawMessage
	if err := c.ShouldBindJSON(&body); err != nil || body == nil {
		return nil, response.BadRequest("request body must be a JSON object")
	}
	return body, nil
}

var errNotText = errors.New("not text")

// Text converts a JSON value into an optional text column value.
// null yields nil, numbers keep their literal form.
func Text(raw json.RawMessage) (*string, error) {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" {
		return nil, nil
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return &s, nil
	}

	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		v := n.String()
		return &v, nil
	}
	return nil, errNotText
}

// RequiredText is Text for a key that must hold a non-empty string.
func RequiredText(body map[string]json.RawMessage, key string) (string, error) {
	raw, ok := body[key]
	if !ok {
		return "", response.BadRequest(key + " is required")
	}
	v, err := Text(raw)
	if err != nil || v == nil || *v == "" {
		return "", response.BadRequest(key + " is required")
	}
	return *v, nil
}

// OptionalText reads key if present; absent keys and null both yield nil.
func OptionalText(body map[string]json.RawMessage, key string) (*string, error) {
	raw, ok := body[key]
	if !ok {
		return nil, nil
	}
	v, err := Text(raw)
	if err != nil {
		return nil, response.BadRequest(key + " must be a string")
	}
	return v, nil
}

// Changes collects the columns present in body for a partial update.
// required columns must stay non-empty; the rest may be cleared with null.
func Changes(body map[string]json.RawMessage, required []string, optional []string) (map[string]any, error) {
	changes := make(map[string]any)

	for _, key := range required {
		if _, ok := body[key]; !ok {
			continue
		}
		v, err := RequiredText(body, key)
		if err != nil {
			return nil, response.BadRequest(key + " must be a non-empty string")
		}
		changes[key] = v
	}

	for _, key := range optional {
		if _, ok := body[key]; !ok {
			continue
		}
		v, err := OptionalText(body, key)
		if err != nil {
			return nil, err
		}
		if v == nil {
			changes[key] = nil
		} else {
			changes[key] = *v
		}
	}
	return changes, nil
}
