package api

import (
	"github.com/pdmitriev/recipebook-backend/database"
	"github.com/pdmitriev/recipebook-backend/services"
)

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(db database.Database, tokens *services.TokenService, composer *services.Composer, shoppingList *services.ShoppingList, images *services.ImageStore) *routeHandlers {
	p := presenter{
		favorites:     db.FavoriteRepo(),
		cart:          db.ShoppingCartRepo(),
		subscriptions: db.SubscriptionRepo(),
	}

	return &routeHandlers{
		userHandler:       newUserHandler(p, db.UserRepo(), db.RecipeRepo(), db.SubscriptionRepo(), tokens),
		tagHandler:        newTagHandler(db.TagRepo()),
		ingredientHandler: newIngredientHandler(db.IngredientRepo()),
		recipeHandler:     newRecipeHandler(p, db.RecipeRepo(), db.FavoriteRepo(), db.ShoppingCartRepo(), composer, shoppingList, images),
	}
}
