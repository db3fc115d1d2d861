package domain

// Character is a person from the films. The public API calls them "people".
type Character struct {
	ID        int64      `gorm:"primaryKey"`
	Name      string     `gorm:"size:100;not null"`
	Height    *string    `gorm:"size:20"`
	Weight    *string    `gorm:"size:20"`
	Favorites []Favorite `gorm:"foreignKey:CharacterID;constraint:OnDelete:CASCADE"`
}

func (Character) TableName() string {
	return "character"
}

func (c Character) String() string {
	return c.Name
}

type CharacterView struct {
	ID     int64   `json:"id"`
	Name   string  `json:"name"`
	Height *string `json:"height"`
	Weight *string `json:"weight"`
}

func (c *Character) Serialize() CharacterView {
	return CharacterView{
		ID:     c.ID,
		Name:   c.Name,
		Height: c.Height,
		Weight: c.Weight,
	}
}
