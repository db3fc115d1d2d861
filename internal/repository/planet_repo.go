package repository

import (
	"context"

	"gorm.io/gorm"

	"starwars/internal/domain"
)

type PlanetRepository struct {
	db *gorm.DB
}

func NewPlanetRepository(db *gorm.DB) *PlanetRepository {
	return &PlanetRepository{db: db}
}

func (r *PlanetRepository) List(ctx context.Context) ([]domain.Planet, error) {
	var planets []domain.Planet
	if err := r.db.WithContext(ctx).Order("id").Find(&planets).Error; err != nil {
		return nil, err
	}
	return planets, nil
}

// GetByID returns ErrNotFound when no planet has the given id.
func (r *PlanetRepository) GetByID(ctx context.Context, id int64) (*domain.Planet, error) {
	var planet domain.Planet
	if err := r.db.WithContext(ctx).First(&planet, id).Error; err != nil {
		return nil, translate(err)
	}
	return &planet, nil
}

func (r *PlanetRepository) Create(ctx context.Context, planet *domain.Planet) error {
	return translate(r.db.WithContext(ctx).Create(planet).Error)
}

// Update applies only the given columns and returns the stored row.
func (r *PlanetRepository) Update(ctx context.Context, id int64, changes map[string]any) (*domain.Planet, error) {
	if _, err := r.GetByID(ctx, id); err != nil {
		return nil, err
	}

	if len(changes) > 0 {
		err := r.db.WithContext(ctx).
			Model(&domain.Planet{}).
			Where("id = ?", id).
			Updates(changes).Error
		if err != nil {
			return nil, translate(err)
		}
	}

	return r.GetByID(ctx, id)
}

// Delete removes the planet together with every favorite pointing at it.
// It returns the ids of the favorites removed with it.
func (r *PlanetRepository) Delete(ctx context.Context, id int64) ([]int64, error) {
	var removed []int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var planet domain.Planet
		if err := tx.First(&planet, id).Error; err != nil {
			return translate(err)
		}
		if err := tx.Model(&domain.Favorite{}).Where("planet_id = ?", id).Order("id").Pluck("id", &removed).Error; err != nil {
			return err
		}
		if err := tx.Where("planet_id = ?", id).Delete(&domain.Favorite{}).Error; err != nil {
			return err
		}
		return tx.Delete(&planet).Error
	})
	if err != nil {
		return nil, err
	}
	return removed, nil
}

func (r *PlanetRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Planet{}).Count(&count).Error
	return count, err
}
