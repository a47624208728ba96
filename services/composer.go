package services

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/pdmitriev/recipebook-backend/database"
	"github.com/pdmitriev/recipebook-backend/errs"
	"github.com/pdmitriev/recipebook-backend/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Upper bounds on line-item amounts and cooking time. 32000 mirrors the
// smallint ceiling the data originally lived under; override via
// MAX_INGREDIENT_AMOUNT / MAX_COOKING_TIME if product decides otherwise.
const (
	DefaultMaxAmount      = 32000
	DefaultMaxCookingTime = 32000
)

// LineItemInput is one submitted (ingredient, amount) entry
type LineItemInput struct {
	ID     uuid.UUID `json:"id"`
	Amount int       `json:"amount"`
}

// RecipeInput is the write payload for creating or updating a recipe
type RecipeInput struct {
	Name        string          `json:"name"`
	Text        string          `json:"text"`
	Image       string          `json:"image"`
	CookingTime int             `json:"cooking_time"`
	Ingredients []LineItemInput `json:"ingredients"`
	Tags        []uuid.UUID     `json:"tags"`
}

// Composer validates recipe write payloads and persists the aggregate
// atomically. All validation runs before any write; a payload that fails a
// rule leaves no trace in storage.
type Composer struct {
	logger         zerolog.Logger
	recipes        *database.RecipeRepo
	ingredients    *database.IngredientRepo
	tags           *database.TagRepo
	maxAmount      int
	maxCookingTime int
}

func NewComposer(recipes *database.RecipeRepo, ingredients *database.IngredientRepo, tags *database.TagRepo, maxAmount, maxCookingTime int) *Composer {
	if maxAmount <= 0 {
		maxAmount = DefaultMaxAmount
	}
	if maxCookingTime <= 0 {
		maxCookingTime = DefaultMaxCookingTime
	}
	return &Composer{
		logger:         log.With().Str("serviceName", "composer").Logger(),
		recipes:        recipes,
		ingredients:    ingredients,
		tags:           tags,
		maxAmount:      maxAmount,
		maxCookingTime: maxCookingTime,
	}
}

// validate applies the business rules in a fixed order; the first violated
// rule wins and its field name keys the error.
func (c *Composer) validate(input RecipeInput) error {
	if len(input.Ingredients) == 0 {
		return errs.NewValidationError("ingredients", "ingredient list cannot be empty")
	}
	for _, item := range input.Ingredients {
		if item.Amount <= 0 {
			return errs.NewValidationError("amount", "amount must be greater than 0")
		}
		if item.Amount > c.maxAmount {
			return errs.NewValidationError("amount", fmt.Sprintf("amount cannot exceed %d", c.maxAmount))
		}
	}
	seenIngredients := make(map[uuid.UUID]bool, len(input.Ingredients))
	for _, item := range input.Ingredients {
		if seenIngredients[item.ID] {
			return errs.NewValidationError("ingredients", "a recipe cannot list the same ingredient twice")
		}
		seenIngredients[item.ID] = true
	}
	if len(input.Tags) == 0 {
		return errs.NewValidationError("tags", "tag list cannot be empty")
	}
	seenTags := make(map[uuid.UUID]bool, len(input.Tags))
	for _, id := range input.Tags {
		if seenTags[id] {
			return errs.NewValidationError("tags", "a recipe cannot carry the same tag twice")
		}
		seenTags[id] = true
	}
	if input.CookingTime <= 0 {
		return errs.NewValidationError("cooking_time", "cooking time must be greater than 0")
	}
	if input.CookingTime > c.maxCookingTime {
		return errs.NewValidationError("cooking_time", fmt.Sprintf("cooking time cannot exceed %d", c.maxCookingTime))
	}
	if input.Name == "" {
		return errs.NewValidationError("name", "name is required")
	}
	if input.Text == "" {
		return errs.NewValidationError("text", "text is required")
	}
	return nil
}

// resolve exchanges submitted IDs for catalog rows. An ID the catalog does
// not know is a not-found, and nothing gets written.
func (c *Composer) resolve(input RecipeInput) ([]models.Ingredient, []models.Tag, error) {
	ingredientIDs := make([]uuid.UUID, 0, len(input.Ingredients))
	for _, item := range input.Ingredients {
		ingredientIDs = append(ingredientIDs, item.ID)
	}
	ingredients, err := c.ingredients.FindByIDs(ingredientIDs)
	if err != nil {
		return nil, nil, errs.FromDatabase("resolve", "ingredients", err)
	}
	if len(ingredients) != len(ingredientIDs) {
		return nil, nil, errs.NewNotFoundError("ingredient not found")
	}

	tags, err := c.tags.FindByIDs(input.Tags)
	if err != nil {
		return nil, nil, errs.FromDatabase("resolve", "tags", err)
	}
	if len(tags) != len(input.Tags) {
		return nil, nil, errs.NewNotFoundError("tag not found")
	}
	return ingredients, tags, nil
}

func lineItems(input RecipeInput) []models.RecipeIngredient {
	items := make([]models.RecipeIngredient, 0, len(input.Ingredients))
	for _, item := range input.Ingredients {
		items = append(items, models.RecipeIngredient{
			IngredientID: item.ID,
			Amount:       item.Amount,
		})
	}
	return items
}

// Create validates and persists a new recipe aggregate for the author, then
// re-reads it so the caller gets the full read representation.
func (c *Composer) Create(author *models.User, input RecipeInput) (*models.Recipe, error) {
	if err := c.validate(input); err != nil {
		return nil, err
	}
	_, tags, err := c.resolve(input)
	if err != nil {
		return nil, err
	}

	recipe := &models.Recipe{
		AuthorID:    author.ID,
		Name:        input.Name,
		Text:        input.Text,
		CookingTime: input.CookingTime,
		Image:       input.Image,
	}
	if err := c.recipes.Create(recipe, lineItems(input), tags); err != nil {
		return nil, errs.FromDatabase("create", "recipe", err)
	}
	c.logger.Info().Str("recipeID", recipe.ID.String()).Str("authorID", author.ID.String()).Msg("recipe created")

	created, err := c.recipes.FindByID(recipe.ID)
	if err != nil {
		return nil, errs.FromDatabase("find created", "recipe", err)
	}
	return created, nil
}

// Update validates and replaces the aggregate: recipe fields, the whole
// line-item set and the whole tag set, in one atomic unit.
func (c *Composer) Update(recipe *models.Recipe, input RecipeInput) (*models.Recipe, error) {
	if err := c.validate(input); err != nil {
		return nil, err
	}
	_, tags, err := c.resolve(input)
	if err != nil {
		return nil, err
	}

	recipe.Name = input.Name
	recipe.Text = input.Text
	recipe.CookingTime = input.CookingTime
	if input.Image != "" {
		recipe.Image = input.Image
	}
	if err := c.recipes.Update(recipe, lineItems(input), tags); err != nil {
		return nil, errs.FromDatabase("update", "recipe", err)
	}
	c.logger.Info().Str("recipeID", recipe.ID.String()).Msg("recipe updated")

	updated, err := c.recipes.FindByID(recipe.ID)
	if err != nil {
		return nil, errs.FromDatabase("find updated", "recipe", err)
	}
	return updated, nil
}
