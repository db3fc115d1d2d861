package repository

import (
	"context"

	"gorm.io/gorm"

	"starwars/internal/domain"
)

// FavoriteRepository stores favorites keyed by user and target.
type FavoriteRepository interface {
	Add(ctx context.Context, userID int64, target domain.Target) (*domain.Favorite, error)
	Remove(ctx context.Context, userID int64, target domain.Target) (int64, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.Favorite, error)
	List(ctx context.Context) ([]domain.Favorite, error)
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int64, error)
}

type favoriteRepository struct {
	db *gorm.DB
}

func NewFavoriteRepository(db *gorm.DB) FavoriteRepository {
	return &favoriteRepository{db: db}
}

func withRelations(db *gorm.DB) *gorm.DB {
	return db.Preload("User").Preload("Planet").Preload("Character")
}

// Add inserts a favorite and reloads it with its relations for serialization.
// Duplicates are allowed; the target's existence is the caller's concern.
func (r *favoriteRepository) Add(ctx context.Context, userID int64, target domain.Target) (*domain.Favorite, error) {
	favorite, err := domain.NewFavorite(userID, target)
	if err != nil {
		return nil, err
	}

	if err := r.db.WithContext(ctx).Create(favorite).Error; err != nil {
		return nil, translate(err)
	}

	if err := withRelations(r.db.WithContext(ctx)).First(favorite, favorite.ID).Error; err != nil {
		return nil, translate(err)
	}
	return favorite, nil
}

// Remove deletes the oldest favorite of userID for target and returns its id.
func (r *favoriteRepository) Remove(ctx context.Context, userID int64, target domain.Target) (int64, error) {
	var favorite domain.Favorite
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Where(target.Column()+" = ?", target.ID).
		Order("id").
		First(&favorite).Error
	if err != nil {
		return 0, translate(err)
	}

	if err := r.db.WithContext(ctx).Delete(&favorite).Error; err != nil {
		return 0, err
	}
	return favorite.ID, nil
}

func (r *favoriteRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Favorite, error) {
	var favorites []domain.Favorite
	err := withRelations(r.db.WithContext(ctx)).
		Where("user_id = ?", userID).
		Order("id").
		Find(&favorites).Error
	if err != nil {
		return nil, err
	}
	return favorites, nil
}

func (r *favoriteRepository) List(ctx context.Context) ([]domain.Favorite, error) {
	var favorites []domain.Favorite
	if err := withRelations(r.db.WithContext(ctx)).Order("id").Find(&favorites).Error; err != nil {
		return nil, err
	}
	return favorites, nil
}

func (r *favoriteRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&domain.Favorite{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *favoriteRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Favorite{}).Count(&count).Error
	return count, err
}
