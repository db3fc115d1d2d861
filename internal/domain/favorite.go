package domain

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

var ErrInvalidTarget = errors.New("favorite must reference exactly one planet or character")

// TargetKind names what a favorite points at.
type TargetKind string

const (
	TargetPlanet    TargetKind = "planet"
	TargetCharacter TargetKind = "character"
)

// Target is the thing a user bookmarked: exactly one planet or one character.
type Target struct {
	Kind TargetKind
	ID   int64
}

func PlanetTarget(id int64) Target {
	return Target{Kind: TargetPlanet, ID: id}
}

func CharacterTarget(id int64) Target {
	return Target{Kind: TargetCharacter, ID: id}
}

// Column returns the favorite column holding the target id.
func (t Target) Column() string {
	if t.Kind == TargetCharacter {
		return "character_id"
	}
	return "planet_id"
}

func (t Target) String() string {
	return fmt.Sprintf("%s:%d", t.Kind, t.ID)
}

func (t Target) valid() bool {
	return (t.Kind == TargetPlanet || t.Kind == TargetCharacter) && t.ID > 0
}

// Favorite bookmarks a planet or a character for a user.
// The row keeps one nullable column per target kind; exactly one is set.
type Favorite struct {
	ID          int64  `gorm:"primaryKey"`
	UserID      int64  `gorm:"not null;index"`
	PlanetID    *int64 `gorm:"index"`
	CharacterID *int64 `gorm:"index"`

	// preloaded for serialization
	User      *User      `gorm:"foreignKey:UserID"`
	Planet    *Planet    `gorm:"foreignKey:PlanetID"`
	Character *Character `gorm:"foreignKey:CharacterID"`
}

func (Favorite) TableName() string {
	return "favorite"
}

// NewFavorite builds an unsaved favorite for userID pointing at target.
func NewFavorite(userID int64, target Target) (*Favorite, error) {
	if !target.valid() {
		return nil, ErrInvalidTarget
	}

	id := target.ID
	fav := &Favorite{UserID: userID}
	switch target.Kind {
	case TargetPlanet:
		fav.PlanetID = &id
	case TargetCharacter:
		fav.CharacterID = &id
	}
	return fav, nil
}

// Target decodes the two nullable columns back into a single target.
func (f *Favorite) Target() (Target, error) {
	switch {
	case f.PlanetID != nil && f.CharacterID == nil:
		return PlanetTarget(*f.PlanetID), nil
	case f.CharacterID != nil && f.PlanetID == nil:
		return CharacterTarget(*f.CharacterID), nil
	default:
		return Target{}, ErrInvalidTarget
	}
}

// BeforeSave rejects rows that point at nothing or at both kinds.
func (f *Favorite) BeforeSave(tx *gorm.DB) error {
	_, err := f.Target()
	return err
}

func (f Favorite) String() string {
	return fmt.Sprintf("Favorite %d", f.ID)
}

// FavoriteView inlines the related names instead of raw foreign keys.
type FavoriteView struct {
	ID            int64   `json:"id"`
	UserEmail     *string `json:"user_email"`
	PlanetName    *string `json:"planet_name"`
	CharacterName *string `json:"character_name"`
}

// Serialize expects User, Planet and Character to be preloaded.
func (f *Favorite) Serialize() FavoriteView {
	view := FavoriteView{ID: f.ID}
	if f.User != nil {
		email := f.User.Email
		view.UserEmail = &email
	}
	if f.Planet != nil {
		name := f.Planet.Name
		view.PlanetName = &name
	}
	if f.Character != nil {
		name := f.Character.Name
		view.CharacterName = &name
	}
	return view
}
