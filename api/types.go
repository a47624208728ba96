package api

import (
	"github.com/google/uuid"
	"github.com/pdmitriev/recipebook-backend/models"
)

// routeHandlers contains all the handlers for different route types
type routeHandlers struct {
	userHandler       userHandler
	tagHandler        tagHandler
	ingredientHandler ingredientHandler
	recipeHandler     recipeHandler
}

// UserView is a user's public representation as seen by a specific viewer
type UserView struct {
	Email        string    `json:"email"`
	ID           uuid.UUID `json:"id"`
	Username     string    `json:"username"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	IsSubscribed bool      `json:"is_subscribed"`
}

// LineItemView is an expanded recipe line item
type LineItemView struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	MeasurementUnit string    `json:"measurement_unit"`
	Amount          int       `json:"amount"`
}

// RecipeView is the full recipe read representation, with the relation flags
// computed from the viewer's perspective
type RecipeView struct {
	ID               uuid.UUID      `json:"id"`
	Tags             []models.Tag   `json:"tags"`
	Author           UserView       `json:"author"`
	Ingredients      []LineItemView `json:"ingredients"`
	IsFavorited      bool           `json:"is_favorited"`
	IsInShoppingCart bool           `json:"is_in_shopping_cart"`
	Name             string         `json:"name"`
	Image            string         `json:"image"`
	Text             string         `json:"text"`
	CookingTime      int            `json:"cooking_time"`
}

// RecipeCollection wraps a recipe listing
type RecipeCollection struct {
	Recipes []RecipeView `json:"recipes"`
	Total   int          `json:"total"`
}

// ShortRecipeView is the compact recipe shape used by relation-set responses
// and subscription feeds
type ShortRecipeView struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Image       string    `json:"image"`
	CookingTime int       `json:"cooking_time"`
}

// SubscriptionView projects one followed author: profile fields, the
// pair-specific subscription flag, a recipe page and the unbounded count
type SubscriptionView struct {
	Email        string            `json:"email"`
	ID           uuid.UUID         `json:"id"`
	Username     string            `json:"username"`
	FirstName    string            `json:"first_name"`
	LastName     string            `json:"last_name"`
	IsSubscribed bool              `json:"is_subscribed"`
	Recipes      []ShortRecipeView `json:"recipes"`
	RecipeCount  int64             `json:"recipe_count"`
}

// ErrorResponse represents an error response from the API
type ErrorResponse struct {
	Error   string `json:"error" example:"Internal Server Error"`
	Status  string `json:"status" example:"error"`
	Field   string `json:"field,omitempty" example:"amount"`
	Details string `json:"details,omitempty" example:"Additional error details"`
	Cause   string `json:"cause,omitempty" example:"Underlying error cause"`
}

func shortRecipeView(recipe *models.Recipe) ShortRecipeView {
	return ShortRecipeView{
		ID:          recipe.ID,
		Name:        recipe.Name,
		Image:       recipe.Image,
		CookingTime: recipe.CookingTime,
	}
}
