package repository

import (
	"context"

	"gorm.io/gorm"

	"starwars/internal/domain"
)

type CharacterRepository struct {
	db *gorm.DB
}

func NewCharacterRepository(db *gorm.DB) *CharacterRepository {
	return &CharacterRepository{db: db}
}

func (r *CharacterRepository) List(ctx context.Context) ([]domain.Character, error) {
	var characters []domain.Character
	if err := r.db.WithContext(ctx).Order("id").Find(&characters).Error; err != nil {
		return nil, err
	}
	return characters, nil
}

// GetByID returns ErrNotFound when no character has the given id.
func (r *CharacterRepository) GetByID(ctx context.Context, id int64) (*domain.Character, error) {
	var character domain.Character
	if err := r.db.WithContext(ctx).First(&character, id).Error; err != nil {
		return nil, translate(err)
	}
	return &character, nil
}

func (r *CharacterRepository) Create(ctx context.Context, character *domain.Character) error {
	return translate(r.db.WithContext(ctx).Create(character).Error)
}

// Update applies only the given columns and returns the stored row.
func (r *CharacterRepository) Update(ctx context.Context, id int64, changes map[string]any) (*domain.Character, error) {
	if _, err := r.GetByID(ctx, id); err != nil {
		return nil, err
	}

	if len(changes) > 0 {
		err := r.db.WithContext(ctx).
			Model(&domain.Character{}).
			Where("id = ?", id).
			Updates(changes).Error
		if err != nil {
			return nil, translate(err)
		}
	}

	return r.GetByID(ctx, id)
}

// Delete removes the character together with every favorite pointing at it.
// It returns the ids of the favorites removed with it.
func (r *CharacterRepository) Delete(ctx context.Context, id int64) ([]int64, error) {
	var removed []int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var character domain.Character
		if err := tx.First(&character, id).Error; err != nil {
			return translate(err)
		}
		if err := tx.Model(&domain.Favorite{}).Where("character_id = ?", id).Order("id").Pluck("id", &removed).Error; err != nil {
			return err
		}
		if err := tx.Where("character_id = ?", id).Delete(&domain.Favorite{}).Error; err != nil {
			return err
		}
		return tx.Delete(&character).Error
	})
	if err != nil {
		return nil, err
	}
	return removed, nil
}

func (r *CharacterRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Character{}).Count(&count).Error
	return count, err
}
