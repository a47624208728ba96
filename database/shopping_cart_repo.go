package database

import (
	"github.com/google/uuid"
	"github.com/pdmitriev/recipebook-backend/models"
	"gorm.io/gorm"
)

type ShoppingCartRepo struct {
	db *gorm.DB
}

func NewShoppingCartRepo(db *gorm.DB) *ShoppingCartRepo {
	return &ShoppingCartRepo{db}
}

// Add inserts the (user, recipe) pair. The unique index rejects a duplicate
// insert atomically; callers see gorm.ErrDuplicatedKey, never an upsert.
func (r *ShoppingCartRepo) Add(userID, recipeID uuid.UUID) error {
	return r.db.Create(&models.ShoppingCartItem{UserID: userID, RecipeID: recipeID}).Error
}

// Remove deletes the pair; a pair that was never added is a not-found.
func (r *ShoppingCartRepo) Remove(userID, recipeID uuid.UUID) error {
	res := r.db.Where("user_id = ? AND recipe_id = ?", userID, recipeID).Delete(&models.ShoppingCartItem{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Exists probes membership of the (user, recipe) pair
func (r *ShoppingCartRepo) Exists(userID, recipeID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.Model(&models.ShoppingCartItem{}).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Count(&count).Error
	return count > 0, err
}

// IngredientTotal is one consolidated shopping-list group
type IngredientTotal struct {
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
	Total           int    `json:"total"`
}

// IngredientTotals consolidates the line items of every recipe currently in
// the user's cart: grouped by (name, unit), amounts summed, sorted by name.
// Recomputed on every call; cart membership changes between calls.
func (r *ShoppingCartRepo) IngredientTotals(userID uuid.UUID) ([]IngredientTotal, error) {
	var totals []IngredientTotal
	err := r.db.Model(&models.RecipeIngredient{}).
		Select("ingredients.name AS name, ingredients.measurement_unit AS measurement_unit, SUM(recipe_ingredients.amount) AS total").
		Joins("JOIN ingredients ON ingredients.id = recipe_ingredients.ingredient_id").
		Joins("JOIN shopping_cart_items ON shopping_cart_items.recipe_id = recipe_ingredients.recipe_id").
		Where("shopping_cart_items.user_id = ?", userID).
		Group("ingredients.name, ingredients.measurement_unit").
		Order("ingredients.name").
		Scan(&totals).Error
	return totals, err
}
