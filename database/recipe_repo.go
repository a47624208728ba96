package database

import (
	"github.com/google/uuid"
	"github.com/pdmitriev/recipebook-backend/models"
	"gorm.io/gorm"
)

type RecipeRepo struct {
	db *gorm.DB
}

func NewRecipeRepo(db *gorm.DB) *RecipeRepo {
	return &RecipeRepo{db}
}

// RecipeFilter narrows List. Relation filters only apply to an authenticated
// viewer; anonymous callers never reach them.
type RecipeFilter struct {
	AuthorID    *uuid.UUID
	TagSlugs    []string
	FavoritedBy *uuid.UUID
	InCartOf    *uuid.UUID
}

// preloadAggregate loads the full recipe aggregate: author, tags and line
// items in insertion order with their catalog entries.
func preloadAggregate(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Author").
		Preload("Tags").
		Preload("Ingredients", func(db *gorm.DB) *gorm.DB {
			return db.Order("recipe_ingredients.id")
		}).
		Preload("Ingredients.Ingredient")
}

// FindByID returns the full recipe aggregate by ID
func (r *RecipeRepo) FindByID(id uuid.UUID) (*models.Recipe, error) {
	var recipe models.Recipe
	err := preloadAggregate(r.db).First(&recipe, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &recipe, nil
}

// List returns recipe aggregates in natural ordering (newest first)
func (r *RecipeRepo) List(filter RecipeFilter) ([]*models.Recipe, error) {
	query := preloadAggregate(r.db).Order("recipes.created_at DESC")

	if filter.AuthorID != nil {
		query = query.Where("recipes.author_id = ?", *filter.AuthorID)
	}
	if len(filter.TagSlugs) > 0 {
		query = query.
			Joins("JOIN recipe_tags ON recipe_tags.recipe_id = recipes.id").
			Joins("JOIN tags ON tags.id = recipe_tags.tag_id").
			Where("tags.slug IN ?", filter.TagSlugs).
			Distinct("recipes.*")
	}
	if filter.FavoritedBy != nil {
		query = query.
			Joins("JOIN favorites ON favorites.recipe_id = recipes.id").
			Where("favorites.user_id = ?", *filter.FavoritedBy)
	}
	if filter.InCartOf != nil {
		query = query.
			Joins("JOIN shopping_cart_items ON shopping_cart_items.recipe_id = recipes.id").
			Where("shopping_cart_items.user_id = ?", *filter.InCartOf)
	}

	var recipes []*models.Recipe
	err := query.Find(&recipes).Error
	return recipes, err
}

// FindByAuthor returns the author's recipes in natural ordering. A positive
// limit slices the page; zero means all.
func (r *RecipeRepo) FindByAuthor(authorID uuid.UUID, limit int) ([]models.Recipe, error) {
	query := r.db.Where("author_id = ?", authorID).Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	var recipes []models.Recipe
	err := query.Find(&recipes).Error
	return recipes, err
}

// CountByAuthor reports the author's total recipe count, ignoring any limit
func (r *RecipeRepo) CountByAuthor(authorID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Model(&models.Recipe{}).Where("author_id = ?", authorID).Count(&count).Error
	return count, err
}

// Create persists the recipe row, its line items and its tag links as one
// atomic unit. A failure anywhere rolls back everything.
func (r *RecipeRepo) Create(recipe *models.Recipe, items []models.RecipeIngredient, tags []models.Tag) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Tags", "Ingredients").Create(recipe).Error; err != nil {
			return err
		}
		for i := range items {
			items[i].RecipeID = recipe.ID
		}
		if err := tx.Create(&items).Error; err != nil {
			return err
		}
		return tx.Model(recipe).Association("Tags").Append(&tags)
	})
}

// Update saves the recipe row and replaces the entire line-item set and tag
// set (clear then recreate, not a diff) inside one transaction.
func (r *RecipeRepo) Update(recipe *models.Recipe, items []models.RecipeIngredient, tags []models.Tag) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Tags", "Ingredients", "Author").Save(recipe).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&models.RecipeIngredient{}).Error; err != nil {
			return err
		}
		for i := range items {
			items[i].ID = 0
			items[i].RecipeID = recipe.ID
		}
		if err := tx.Create(&items).Error; err != nil {
			return err
		}
		return tx.Model(recipe).Association("Tags").Replace(&tags)
	})
}

// Delete removes the recipe together with everything it owns: line items, tag
// links and relation-set rows referencing it, all in the same transaction.
// Ownership is explicit here rather than left to implicit cascades.
func (r *RecipeRepo) Delete(id uuid.UUID) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("recipe_id = ?", id).Delete(&models.RecipeIngredient{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", id).Delete(&models.Favorite{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", id).Delete(&models.ShoppingCartItem{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Recipe{ID: id}).Association("Tags").Clear(); err != nil {
			return err
		}
		return tx.Delete(&models.Recipe{}, "id = ?", id).Error
	})
}
