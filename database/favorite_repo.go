package database

import (
	"github.com/google/uuid"
	"github.com/pdmitriev/recipebook-backend/models"
	"gorm.io/gorm"
)

type FavoriteRepo struct {
	db *gorm.DB
}

func NewFavoriteRepo(db *gorm.DB) *FavoriteRepo {
	return &FavoriteRepo{db}
}

// Add inserts the (user, recipe) pair. The unique index rejects a duplicate
// insert atomically; callers see gorm.ErrDuplicatedKey, never an upsert.
func (r *FavoriteRepo) Add(userID, recipeID uuid.UUID) error {
	return r.db.Create(&models.Favorite{UserID: userID, RecipeID: recipeID}).Error
}

// Remove deletes the pair; a pair that was never added is a not-found.
func (r *FavoriteRepo) Remove(userID, recipeID uuid.UUID) error {
	res := r.db.Where("user_id = ? AND recipe_id = ?", userID, recipeID).Delete(&models.Favorite{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Exists probes membership of the (user, recipe) pair
func (r *FavoriteRepo) Exists(userID, recipeID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.Model(&models.Favorite{}).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Count(&count).Error
	return count > 0, err
}
