package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Recipe is the central aggregate: a recipe row plus its ingredient line
// items and tag links, treated as one consistency unit. Natural ordering is
// newest first (created_at DESC).
type Recipe struct {
	ID          uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	AuthorID    uuid.UUID `json:"author_id" db:"author_id" gorm:"type:uuid;not null;index"`
	Author      User      `json:"-" gorm:"foreignKey:AuthorID;references:ID;constraint:OnDelete:CASCADE"`
	Name        string    `json:"name" db:"name" gorm:"type:text;not null"`
	Text        string    `json:"text" db:"text" gorm:"type:text;not null"`
	CookingTime int       `json:"cooking_time" db:"cooking_time" gorm:"type:integer;not null"`
	Image       string    `json:"image" db:"image" gorm:"type:text"`
	CreatedAt   time.Time `json:"created_at" db:"created_at" gorm:"type:timestamp;not null;index"`

	Ingredients []RecipeIngredient `json:"ingredients,omitempty" gorm:"foreignKey:RecipeID;references:ID;constraint:OnDelete:CASCADE"`
	Tags        []Tag              `json:"tags,omitempty" gorm:"many2many:recipe_tags;constraint:OnDelete:CASCADE"`
}

func (r *Recipe) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// RecipeIngredient is one line item of a recipe: (ingredient, amount).
// The integer key preserves insertion order; the unique index forbids listing
// the same ingredient twice in one recipe.
type RecipeIngredient struct {
	ID           uint       `json:"-" db:"id" gorm:"primaryKey;autoIncrement"`
	RecipeID     uuid.UUID  `json:"recipe_id" db:"recipe_id" gorm:"type:uuid;not null;index;uniqueIndex:idx_recipe_ingredient"`
	IngredientID uuid.UUID  `json:"ingredient_id" db:"ingredient_id" gorm:"type:uuid;not null;uniqueIndex:idx_recipe_ingredient"`
	Ingredient   Ingredient `json:"ingredient" gorm:"foreignKey:IngredientID;references:ID"`
	Amount       int        `json:"amount" db:"amount" gorm:"type:integer;not null"`
}
