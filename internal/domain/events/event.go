package events

import "time"

const (
	TypeCreated = "created"
	TypeUpdated = "updated"
	TypeDeleted = "deleted"
)

const (
	EntityPlanet    = "planet"
	EntityCharacter = "character"
	EntityUser      = "user"
	EntityFavorite  = "favorite"
)

// Event describes a committed mutation. Data holds the serialized record,
// or nil for deletions.
type Event struct {
	Type   string    `json:"type"`
	Entity string    `json:"entity"`
	ID     int64     `json:"id"`
	Data   any       `json:"data"`
	At     time.Time `json:"at"`
}

func New(typ, entity string, id int64, data any) Event {
	return Event{Type: typ, Entity: entity, ID: id, Data: data, At: time.Now().UTC()}
}

type Publisher interface {
	Publish(Event)
}

type discard struct{}

func (discard) Publish(Event) {}

// Discard drops every event.
var Discard Publisher = discard{}

// PublishDeleted emits one deletion event per id.
func PublishDeleted(p Publisher, entity string, ids ...int64) {
	for _, id := range ids {
		p.Publish(New(TypeDeleted, entity, id, nil))
	}
}
