package api

import (
	"github.com/go-chi/chi/v5"
)

// setupRoutes wires the public and authenticated route groups. identify runs
// on everything so public reads still see the viewer when a token is sent.
func setupRoutes(r chi.Router, handlers *routeHandlers, authMiddleware authMiddleware) {
	r.Group(func(r chi.Router) {
		r.Use(ColoredHTTPLoggingMiddleware)
		r.Use(authMiddleware.identify)

		r.Route("/api", func(r chi.Router) {
			// Public endpoints
			r.Post("/users", handlers.userHandler.register())
			r.Post("/auth/token/login", handlers.userHandler.login())
			r.Get("/users/{userID}", handlers.userHandler.getUser())

			r.Get("/tags", handlers.tagHandler.listTags())
			r.Get("/tags/{tagID}", handlers.tagHandler.getTag())
			r.Get("/ingredients", handlers.ingredientHandler.listIngredients())
			r.Get("/ingredients/{ingredientID}", handlers.ingredientHandler.getIngredient())

			r.Get("/recipes", handlers.recipeHandler.listRecipes())
			r.Get("/recipes/{recipeID}", handlers.recipeHandler.getRecipe())

			// Authenticated endpoints
			r.Group(func(r chi.Router) {
				r.Use(authMiddleware.authenticate)

				r.Get("/users/me", handlers.userHandler.me())
				r.Get("/users/subscriptions", handlers.userHandler.listSubscriptions())
				r.Post("/users/{userID}/subscribe", handlers.userHandler.subscribe())
				r.Delete("/users/{userID}/subscribe", handlers.userHandler.unsubscribe())

				r.Post("/recipes", handlers.recipeHandler.createRecipe())
				r.Patch("/recipes/{recipeID}", handlers.recipeHandler.updateRecipe())
				r.Delete("/recipes/{recipeID}", handlers.recipeHandler.deleteRecipe())

				r.Get("/recipes/download_shopping_cart", handlers.recipeHandler.downloadShoppingCart())
				r.Post("/recipes/{recipeID}/favorite", handlers.recipeHandler.addFavorite())
				r.Delete("/recipes/{recipeID}/favorite", handlers.recipeHandler.removeFavorite())
				r.Post("/recipes/{recipeID}/shopping_cart", handlers.recipeHandler.addToShoppingCart())
				r.Delete("/recipes/{recipeID}/shopping_cart", handlers.recipeHandler.removeFromShoppingCart())
			})
		})
	})
}
