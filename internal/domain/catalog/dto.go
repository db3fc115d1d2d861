package catalog

import (
	"encoding/json"

	"starwars/internal/pkg/request"
	"starwars/internal/pkg/response"
)

var (
	planetOptional    = []string{"climate", "population"}
	characterOptional = []string{"height", "weight"}
	nameRequired      = []string{"name"}
)

type createFields struct {
	Name     string
	Optional map[string]*string
}

// parseCreate reads name plus the optional text columns from a create body.
func parseCreate(body map[string]json.RawMessage, optional []string) (*createFields, error) {
	name, err := request.RequiredText(body, "name")
	if err != nil {
		return nil, response.BadRequest("Name is required")
	}

	fields := &createFields{Name: name, Optional: make(map[string]*string, len(optional))}
	for _, key := range optional {
		v, err := request.OptionalText(body, key)
		if err != nil {
			return nil, err
		}
		fields.Optional[key] = v
	}
	return fields, nil
}

func parseChanges(body map[string]json.RawMessage, optional []string) (map[string]any, error) {
	return request.Changes(body, nameRequired, optional)
}
