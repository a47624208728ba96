package database

import (
	"github.com/google/uuid"
	"github.com/pdmitriev/recipebook-backend/models"
	"gorm.io/gorm"
)

type IngredientRepo struct {
	db *gorm.DB
}

func NewIngredientRepo(db *gorm.DB) *IngredientRepo {
	return &IngredientRepo{db}
}

// FindAll returns catalog entries, optionally narrowed to a name prefix
func (r *IngredientRepo) FindAll(namePrefix string) ([]models.Ingredient, error) {
	var ingredients []models.Ingredient
	query := r.db.Order("name")
	if namePrefix != "" {
		query = query.Where("name LIKE ?", namePrefix+"%")
	}
	err := query.Find(&ingredients).Error
	return ingredients, err
}

// FindByID returns an ingredient by its ID
func (r *IngredientRepo) FindByID(id uuid.UUID) (*models.Ingredient, error) {
	var ingredient models.Ingredient
	err := r.db.First(&ingredient, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &ingredient, nil
}

// FindByIDs returns the ingredients for the given IDs, in no particular
// order. The caller compares lengths to detect unknown IDs.
func (r *IngredientRepo) FindByIDs(ids []uuid.UUID) ([]models.Ingredient, error) {
	var ingredients []models.Ingredient
	err := r.db.Where("id IN ?", ids).Find(&ingredients).Error
	return ingredients, err
}

// AddBatch bulk-inserts catalog entries, used by seeding tooling
func (r *IngredientRepo) AddBatch(ingredients []models.Ingredient) error {
	if len(ingredients) == 0 {
		return nil
	}
	return r.db.Create(&ingredients).Error
}
