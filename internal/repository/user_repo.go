package repository

import (
	"context"

	"gorm.io/gorm"

	"starwars/internal/domain"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// withFavorites preloads everything User.Serialize needs.
func withFavorites(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Favorites", func(db *gorm.DB) *gorm.DB { return db.Order("id") }).
		Preload("Favorites.Planet").
		Preload("Favorites.Character")
}

func (r *UserRepository) List(ctx context.Context) ([]domain.User, error) {
	var users []domain.User
	if err := withFavorites(r.db.WithContext(ctx)).Order("id").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	var user domain.User
	if err := withFavorites(r.db.WithContext(ctx)).First(&user, id).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

// Create returns ErrDuplicate when the email is already taken.
func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	return translate(r.db.WithContext(ctx).Create(user).Error)
}

// Delete removes the user and cascades to its favorites.
// It returns the ids of the favorites removed with it.
func (r *UserRepository) Delete(ctx context.Context, id int64) ([]int64, error) {
	var removed []int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user domain.User
		if err := tx.First(&user, id).Error; err != nil {
			return translate(err)
		}
		if err := tx.Model(&domain.Favorite{}).Where("user_id = ?", id).Order("id").Pluck("id", &removed).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&domain.Favorite{}).Error; err != nil {
			return err
		}
		return tx.Delete(&user).Error
	})
	if err != nil {
		return nil, err
	}
	return removed, nil
}

func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.User{}).Count(&count).Error
	return count, err
}
