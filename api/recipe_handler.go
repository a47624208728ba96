package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/pdmitriev/recipebook-backend/database"
	"github.com/pdmitriev/recipebook-backend/errs"
	"github.com/pdmitriev/recipebook-backend/models"
	"github.com/pdmitriev/recipebook-backend/services"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type recipeHandler struct {
	presenter
	responder        Responder
	logger           zerolog.Logger
	recipeRepo       *database.RecipeRepo
	favoriteRepo     *database.FavoriteRepo
	shoppingCartRepo *database.ShoppingCartRepo
	composer         *services.Composer
	shoppingList     *services.ShoppingList
	images           *services.ImageStore
}

func newRecipeHandler(p presenter, recipeRepo *database.RecipeRepo, favoriteRepo *database.FavoriteRepo, shoppingCartRepo *database.ShoppingCartRepo, composer *services.Composer, shoppingList *services.ShoppingList, images *services.ImageStore) recipeHandler {
	logger := log.With().Str("handlerName", "recipeHandler").Logger()

	return recipeHandler{
		presenter:        p,
		responder:        NewResponder(logger),
		logger:           logger,
		recipeRepo:       recipeRepo,
		favoriteRepo:     favoriteRepo,
		shoppingCartRepo: shoppingCartRepo,
		composer:         composer,
		shoppingList:     shoppingList,
		images:           images,
	}
}

// canModify is the authorization predicate for recipe mutations: the author
// or an administrator, nobody else.
func canModify(viewer *models.User, recipe *models.Recipe) bool {
	if viewer == nil {
		return false
	}
	return viewer.ID == recipe.AuthorID || viewer.IsAdmin()
}

// listRecipes returns recipe aggregates in natural ordering. The relation
// filters (is_favorited, is_in_shopping_cart) only apply for a signed-in
// viewer; anonymous callers get them ignored.
func (h recipeHandler) listRecipes() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		viewer := viewerFrom(r.Context())
		query := r.URL.Query()

		var filter database.RecipeFilter
		if raw := query.Get("author"); raw != "" {
			authorID, err := uuid.Parse(raw)
			if err != nil {
				h.responder.WriteError(w, errs.NewBadRequestError("invalid author"))
				return
			}
			filter.AuthorID = &authorID
		}
		if slugs, ok := query["tags"]; ok {
			filter.TagSlugs = slugs
		}
		if viewer != nil {
			if query.Get("is_favorited") == "1" || query.Get("is_favorited") == "true" {
				filter.FavoritedBy = &viewer.ID
			}
			if query.Get("is_in_shopping_cart") == "1" || query.Get("is_in_shopping_cart") == "true" {
				filter.InCartOf = &viewer.ID
			}
		}

		recipes, err := h.recipeRepo.List(filter)
		if err != nil {
			h.responder.WriteError(w, errs.FromDatabase("find", "recipes", err))
			return
		}

		views := make([]RecipeView, 0, len(recipes))
		for _, recipe := range recipes {
			view, err := h.recipeView(viewer, recipe)
			if err != nil {
				h.responder.WriteError(w, err)
				return
			}
			views = append(views, view)
		}

		h.responder.WriteJSON(w, RecipeCollection{Recipes: views, Total: len(views)})
	}
}

// getRecipe returns the full recipe representation for the viewer
func (h recipeHandler) getRecipe() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		recipeID, err := uuid.Parse(chi.URLParam(r, "recipeID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid recipeID"))
			return
		}

		recipe, err := h.recipeRepo.FindByID(recipeID)
		if err != nil {
			h.responder.WriteError(w, errs.FromDatabase("find", "recipe", err))
			return
		}

		view, err := h.recipeView(viewerFrom(r.Context()), recipe)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, view)
	}
}

// createRecipe validates and persists a new recipe for the caller
func (h recipeHandler) createRecipe() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		viewer := viewerFrom(r.Context())

		var input services.RecipeInput
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode recipe request body")
			h.responder.WriteError(w, errs.Malformed("recipe payload"))
			return
		}

		image, err := h.images.Save(r.Context(), input.Image)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		input.Image = image

		recipe, err := h.composer.Create(viewer, input)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		view, err := h.recipeView(viewer, recipe)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		w.WriteHeader(http.StatusCreated)
		h.responder.WriteJSON(w, view)
	}
}

// updateRecipe replaces the recipe aggregate; author-or-admin only
func (h recipeHandler) updateRecipe() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		viewer := viewerFrom(r.Context())

		recipeID, err := uuid.Parse(chi.URLParam(r, "recipeID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid recipeID"))
			return
		}

		recipe, err := h.recipeRepo.FindByID(recipeID)
		if err != nil {
			h.responder.WriteError(w, errs.FromDatabase("find", "recipe", err))
			return
		}

		if !canModify(viewer, recipe) {
			h.responder.WriteError(w, errs.NewForbiddenError("only the author or an admin can modify a recipe"))
			return
		}

		var input services.RecipeInput
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode recipe request body")
			h.responder.WriteError(w, errs.Malformed("recipe payload"))
			return
		}

		image, err := h.images.Save(r.Context(), input.Image)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		input.Image = image

		updated, err := h.composer.Update(recipe, input)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		view, err := h.recipeView(viewer, updated)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, view)
	}
}

// deleteRecipe removes the recipe and everything it owns; author-or-admin only
func (h recipeHandler) deleteRecipe() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		viewer := viewerFrom(r.Context())

		recipeID, err := uuid.Parse(chi.URLParam(r, "recipeID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid recipeID"))
			return
		}

		recipe, err := h.recipeRepo.FindByID(recipeID)
		if err != nil {
			h.responder.WriteError(w, errs.FromDatabase("find", "recipe", err))
			return
		}

		if !canModify(viewer, recipe) {
			h.responder.WriteError(w, errs.NewForbiddenError("only the author or an admin can delete a recipe"))
			return
		}

		if err := h.recipeRepo.Delete(recipe.ID); err != nil {
			h.responder.WriteError(w, errs.FromDatabase("delete", "recipe", err))
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// relationSet abstracts the two (user, recipe) membership sets so favorite
// and shopping-cart endpoints share one implementation.
type relationSet interface {
	Add(userID, recipeID uuid.UUID) error
	Remove(userID, recipeID uuid.UUID) error
}

func (h recipeHandler) addToRelation(set relationSet, entity string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		viewer := viewerFrom(r.Context())

		recipeID, err := uuid.Parse(chi.URLParam(r, "recipeID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid recipeID"))
			return
		}

		recipe, err := h.recipeRepo.FindByID(recipeID)
		if err != nil {
			h.responder.WriteError(w, errs.FromDatabase("find", "recipe", err))
			return
		}

		if err := set.Add(viewer.ID, recipe.ID); err != nil {
			h.responder.WriteError(w, errs.FromDatabase("create", entity, err))
			return
		}

		w.WriteHeader(http.StatusCreated)
		h.responder.WriteJSON(w, shortRecipeView(recipe))
	}
}

func (h recipeHandler) removeFromRelation(set relationSet, entity string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		viewer := viewerFrom(r.Context())

		recipeID, err := uuid.Parse(chi.URLParam(r, "recipeID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid recipeID"))
			return
		}

		if _, err := h.recipeRepo.FindByID(recipeID); err != nil {
			h.responder.WriteError(w, errs.FromDatabase("find", "recipe", err))
			return
		}

		if err := set.Remove(viewer.ID, recipeID); err != nil {
			h.responder.WriteError(w, errs.FromDatabase("delete", entity, err))
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func (h recipeHandler) addFavorite() http.HandlerFunc {
	return h.addToRelation(h.favoriteRepo, "favorite")
}

func (h recipeHandler) removeFavorite() http.HandlerFunc {
	return h.removeFromRelation(h.favoriteRepo, "favorite")
}

func (h recipeHandler) addToShoppingCart() http.HandlerFunc {
	return h.addToRelation(h.shoppingCartRepo, "shopping cart entry")
}

func (h recipeHandler) removeFromShoppingCart() http.HandlerFunc {
	return h.removeFromRelation(h.shoppingCartRepo, "shopping cart entry")
}

// downloadShoppingCart renders the consolidated shopping list as plain text
func (h recipeHandler) downloadShoppingCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		viewer := viewerFrom(r.Context())

		totals, err := h.shoppingList.Compute(viewer.ID)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteText(w, services.RenderText(totals), "shopping_list.txt")
	}
}
