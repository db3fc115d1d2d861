package domain

// User owns a list of favorites. Deleting a user deletes its favorites.
type User struct {
	ID        int64      `gorm:"primaryKey"`
	Email     string     `gorm:"size:120;uniqueIndex;not null"`
	Password  string     `gorm:"size:80;not null"`
	IsActive  bool       `gorm:"not null"`
	Favorites []Favorite `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// TableName keeps the singular table name.
func (User) TableName() string {
	return "user"
}

// NewUser returns an active user. password is stored as given.
func NewUser(email, password string) *User {
	return &User{
		Email:    email,
		Password: password,
		IsActive: true,
	}
}

func (u User) String() string {
	return u.Email
}

// UserView is the JSON shape of a user. The password never leaves the store.
type UserView struct {
	ID        int64          `json:"id"`
	Email     string         `json:"email"`
	IsActive  bool           `json:"is_active"`
	Favorites []FavoriteView `json:"favorites"`
}

// Serialize expects Favorites (and their relations) to be preloaded.
func (u *User) Serialize() UserView {
	favorites := make([]FavoriteView, 0, len(u.Favorites))
	for i := range u.Favorites {
		fav := u.Favorites[i]
		if fav.User == nil {
			fav.User = u
		}
		favorites = append(favorites, fav.Serialize())
	}

	return UserView{
		ID:        u.ID,
		Email:     u.Email,
		IsActive:  u.IsActive,
		Favorites: favorites,
	}
}
