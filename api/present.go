package api

import (
	"github.com/pdmitriev/recipebook-backend/database"
	"github.com/pdmitriev/recipebook-backend/errs"
	"github.com/pdmitriev/recipebook-backend/models"
)

// presenter derives the per-viewer relation flags when assembling read
// representations. An anonymous viewer gets false for every flag without a
// single membership probe.
type presenter struct {
	favorites     *database.FavoriteRepo
	cart          *database.ShoppingCartRepo
	subscriptions *database.SubscriptionRepo
}

func (p presenter) userView(viewer *models.User, user *models.User) (UserView, error) {
	view := UserView{
		Email:     user.Email,
		ID:        user.ID,
		Username:  user.Username,
		FirstName: user.FirstName,
		LastName:  user.LastName,
	}
	if viewer == nil || viewer.ID == user.ID {
		return view, nil
	}
	subscribed, err := p.subscriptions.Exists(viewer.ID, user.ID)
	if err != nil {
		return view, errs.FromDatabase("probe", "subscription", err)
	}
	view.IsSubscribed = subscribed
	return view, nil
}

func (p presenter) recipeView(viewer *models.User, recipe *models.Recipe) (RecipeView, error) {
	author, err := p.userView(viewer, &recipe.Author)
	if err != nil {
		return RecipeView{}, err
	}

	items := make([]LineItemView, 0, len(recipe.Ingredients))
	for _, item := range recipe.Ingredients {
		items = append(items, LineItemView{
			ID:              item.IngredientID,
			Name:            item.Ingredient.Name,
			MeasurementUnit: item.Ingredient.MeasurementUnit,
			Amount:          item.Amount,
		})
	}

	tags := recipe.Tags
	if tags == nil {
		tags = []models.Tag{}
	}

	view := RecipeView{
		ID:          recipe.ID,
		Tags:        tags,
		Author:      author,
		Ingredients: items,
		Name:        recipe.Name,
		Image:       recipe.Image,
		Text:        recipe.Text,
		CookingTime: recipe.CookingTime,
	}
	if viewer == nil {
		return view, nil
	}

	favorited, err := p.favorites.Exists(viewer.ID, recipe.ID)
	if err != nil {
		return view, errs.FromDatabase("probe", "favorite", err)
	}
	inCart, err := p.cart.Exists(viewer.ID, recipe.ID)
	if err != nil {
		return view, errs.FromDatabase("probe", "shopping cart", err)
	}
	view.IsFavorited = favorited
	view.IsInShoppingCart = inCart
	return view, nil
}
