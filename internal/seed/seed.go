package seed

import (
	"context"

	"gorm.io/gorm"

	"starwars/internal/domain"
	"starwars/internal/domain/auth"
)

const (
	DemoEmail    = "demo@holonet.org"
	DemoPassword = "may-the-force"
)

// Summary reports what Run inserted.
type Summary struct {
	Skipped    bool
	Users      int
	Planets    int
	Characters int
	Favorites  int
}

func str(s string) *string { return &s }

func planets() []domain.Planet {
	return []domain.Planet{
		{Name: "Tatooine", Climate: str("arid"), Population: str("200000")},
		{Name: "Alderaan", Climate: str("temperate"), Population: str("2000000000")},
		{Name: "Hoth", Climate: str("frozen"), Population: str("unknown")},
		{Name: "Dagobah", Climate: str("murky"), Population: str("unknown")},
		{Name: "Endor", Climate: str("temperate"), Population: str("30000000")},
	}
}

func characters() []domain.Character {
	return []domain.Character{
		{Name: "Luke Skywalker", Height: str("172"), Weight: str("77")},
		{Name: "Leia Organa", Height: str("150"), Weight: str("49")},
		{Name: "Han Solo", Height: str("180"), Weight: str("80")},
		{Name: "Yoda", Height: str("66"), Weight: str("17")},
		{Name: "Darth Vader", Height: str("202"), Weight: str("136")},
	}
}

// Run inserts sample data. Without reset it does nothing when planets already exist.
// With reset every table is emptied first, children before parents.
func Run(ctx context.Context, db *gorm.DB, reset bool) (Summary, error) {
	var summary Summary

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if reset {
			for _, model := range []any{&domain.Favorite{}, &domain.User{}, &domain.Planet{}, &domain.Character{}} {
				if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(model).Error; err != nil {
					return err
				}
			}
		} else {
			var existing int64
			if err := tx.Model(&domain.Planet{}).Count(&existing).Error; err != nil {
				return err
			}
			if existing > 0 {
				summary.Skipped = true
				return nil
			}
		}

		hash, err := auth.HashPassword(DemoPassword)
		if err != nil {
			return err
		}
		user := domain.NewUser(DemoEmail, hash)
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		summary.Users = 1

		ps := planets()
		if err := tx.Create(&ps).Error; err != nil {
			return err
		}
		summary.Planets = len(ps)

		cs := characters()
		if err := tx.Create(&cs).Error; err != nil {
			return err
		}
		summary.Characters = len(cs)

		favorites := make([]*domain.Favorite, 0, 2)
		for _, target := range []domain.Target{domain.PlanetTarget(ps[0].ID), domain.CharacterTarget(cs[0].ID)} {
			fav, err := domain.NewFavorite(user.ID, target)
			if err != nil {
				return err
			}
			favorites = append(favorites, fav)
		}
		if err := tx.Create(&favorites).Error; err != nil {
			return err
		}
		summary.Favorites = len(favorites)
		return nil
	})

	return summary, err
}
