package domain

type Planet struct {
	ID         int64      `gorm:"primaryKey"`
	Name       string     `gorm:"size:100;not null"`
	Climate    *string    `gorm:"size:50"`
	Population *string    `gorm:"size:50"`
	Favorites  []Favorite `gorm:"foreignKey:PlanetID;constraint:OnDelete:CASCADE"`
}

func (Planet) TableName() string {
	return "planet"
}

func (p Planet) String() string {
	return p.Name
}

type PlanetView struct {
	ID         int64   `json:"id"`
	Name       string  `json:"name"`
	Climate    *string `json:"climate"`
	Population *string `json:"population"`
}

func (p *Planet) Serialize() PlanetView {
	return PlanetView{
		ID:         p.ID,
		Name:       p.Name,
		Climate:    p.Climate,
		Population: p.Population,
	}
}
