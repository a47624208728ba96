package database

import (
	"testing"
	"time"

	"github.com/pdmitriev/recipebook-backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestRecipeRepoCreateLoadsFullAggregate(t *testing.T) {
	db := newTestDB(t)
	repo := NewRecipeRepo(db)

	author := seedUser(t, db, "alice")
	flour := seedIngredient(t, db, "Flour", "g")
	egg := seedIngredient(t, db, "Egg", "pcs")
	breakfast := seedTag(t, db, "Breakfast", "breakfast")

	recipe := seedRecipe(t, db, author, "Pancakes", 0,
		[]models.RecipeIngredient{
			{IngredientID: flour.ID, Amount: 300},
			{IngredientID: egg.ID, Amount: 2},
		},
		[]models.Tag{*breakfast},
	)

	loaded, err := repo.FindByID(recipe.ID)
	require.NoError(t, err)

	assert.Equal(t, "Pancakes", loaded.Name)
	assert.Equal(t, author.ID, loaded.Author.ID)

	require.Len(t, loaded.Ingredients, 2)
	// Line items come back in the order they were submitted
	assert.Equal(t, "Flour", loaded.Ingredients[0].Ingredient.Name)
	assert.Equal(t, 300, loaded.Ingredients[0].Amount)
	assert.Equal(t, "Egg", loaded.Ingredients[1].Ingredient.Name)
	assert.Equal(t, 2, loaded.Ingredients[1].Amount)

	require.Len(t, loaded.Tags, 1)
	assert.Equal(t, "breakfast", loaded.Tags[0].Slug)
}

func TestRecipeRepoUpdateReplacesLineItemsAndTags(t *testing.T) {
	db := newTestDB(t)
	repo := NewRecipeRepo(db)

	author := seedUser(t, db, "alice")
	flour := seedIngredient(t, db, "Flour", "g")
	sugar := seedIngredient(t, db, "Sugar", "g")
	breakfast := seedTag(t, db, "Breakfast", "breakfast")
	dessert := seedTag(t, db, "Dessert", "dessert")

	recipe := seedRecipe(t, db, author, "Pancakes", 0,
		[]models.RecipeIngredient{{IngredientID: flour.ID, Amount: 300}},
		[]models.Tag{*breakfast},
	)

	recipe.Name = "Sweet Pancakes"
	err := repo.Update(recipe,
		[]models.RecipeIngredient{{IngredientID: sugar.ID, Amount: 50}},
		[]models.Tag{*dessert},
	)
	require.NoError(t, err)

	loaded, err := repo.FindByID(recipe.ID)
	require.NoError(t, err)

	assert.Equal(t, "Sweet Pancakes", loaded.Name)
	require.Len(t, loaded.Ingredients, 1)
	assert.Equal(t, "Sugar", loaded.Ingredients[0].Ingredient.Name)
	require.Len(t, loaded.Tags, 1)
	assert.Equal(t, "dessert", loaded.Tags[0].Slug)

	// The old line item is gone, not orphaned
	var itemCount int64
	require.NoError(t, db.Model(&models.RecipeIngredient{}).Where("recipe_id = ?", recipe.ID).Count(&itemCount).Error)
	assert.EqualValues(t, 1, itemCount)
}

func TestRecipeRepoDeleteRemovesOwnedRows(t *testing.T) {
	db := newTestDB(t)
	repo := NewRecipeRepo(db)

	author := seedUser(t, db, "alice")
	fan := seedUser(t, db, "bob")
	flour := seedIngredient(t, db, "Flour", "g")
	breakfast := seedTag(t, db, "Breakfast", "breakfast")

	recipe := seedRecipe(t, db, author, "Pancakes", 0,
		[]models.RecipeIngredient{{IngredientID: flour.ID, Amount: 300}},
		[]models.Tag{*breakfast},
	)
	require.NoError(t, NewFavoriteRepo(db).Add(fan.ID, recipe.ID))
	require.NoError(t, NewShoppingCartRepo(db).Add(fan.ID, recipe.ID))

	require.NoError(t, repo.Delete(recipe.ID))

	_, err := repo.FindByID(recipe.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	for _, model := range []interface{}{&models.RecipeIngredient{}, &models.Favorite{}, &models.ShoppingCartItem{}} {
		var count int64
		require.NoError(t, db.Model(model).Where("recipe_id = ?", recipe.ID).Count(&count).Error)
		assert.EqualValues(t, 0, count)
	}
}

func TestRecipeRepoListNewestFirst(t *testing.T) {
	db := newTestDB(t)
	repo := NewRecipeRepo(db)

	author := seedUser(t, db, "alice")
	flour := seedIngredient(t, db, "Flour", "g")
	breakfast := seedTag(t, db, "Breakfast", "breakfast")
	items := func() []models.RecipeIngredient {
		return []models.RecipeIngredient{{IngredientID: flour.ID, Amount: 100}}
	}

	seedRecipe(t, db, author, "Oldest", 2*time.Hour, items(), []models.Tag{*breakfast})
	seedRecipe(t, db, author, "Newest", 0, items(), []models.Tag{*breakfast})
	seedRecipe(t, db, author, "Middle", time.Hour, items(), []models.Tag{*breakfast})

	recipes, err := repo.List(RecipeFilter{})
	require.NoError(t, err)
	require.Len(t, recipes, 3)
	assert.Equal(t, "Newest", recipes[0].Name)
	assert.Equal(t, "Middle", recipes[1].Name)
	assert.Equal(t, "Oldest", recipes[2].Name)
}

func TestRecipeRepoListFilters(t *testing.T) {
	db := newTestDB(t)
	repo := NewRecipeRepo(db)

	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	flour := seedIngredient(t, db, "Flour", "g")
	breakfast := seedTag(t, db, "Breakfast", "breakfast")
	dinner := seedTag(t, db, "Dinner", "dinner")
	items := func() []models.RecipeIngredient {
		return []models.RecipeIngredient{{IngredientID: flour.ID, Amount: 100}}
	}

	pancakes := seedRecipe(t, db, alice, "Pancakes", time.Hour, items(), []models.Tag{*breakfast})
	stew := seedRecipe(t, db, bob, "Stew", 0, items(), []models.Tag{*dinner})
	require.NoError(t, NewFavoriteRepo(db).Add(bob.ID, pancakes.ID))
	require.NoError(t, NewShoppingCartRepo(db).Add(alice.ID, stew.ID))

	byAuthor, err := repo.List(RecipeFilter{AuthorID: &alice.ID})
	require.NoError(t, err)
	require.Len(t, byAuthor, 1)
	assert.Equal(t, "Pancakes", byAuthor[0].Name)

	byTag, err := repo.List(RecipeFilter{TagSlugs: []string{"dinner"}})
	require.NoError(t, err)
	require.Len(t, byTag, 1)
	assert.Equal(t, "Stew", byTag[0].Name)

	favorited, err := repo.List(RecipeFilter{FavoritedBy: &bob.ID})
	require.NoError(t, err)
	require.Len(t, favorited, 1)
	assert.Equal(t, "Pancakes", favorited[0].Name)

	inCart, err := repo.List(RecipeFilter{InCartOf: &alice.ID})
	require.NoError(t, err)
	require.Len(t, inCart, 1)
	assert.Equal(t, "Stew", inCart[0].Name)
}

func TestRecipeRepoFindByAuthorLimitAndCount(t *testing.T) {
	db := newTestDB(t)
	repo := NewRecipeRepo(db)

	author := seedUser(t, db, "alice")
	flour := seedIngredient(t, db, "Flour", "g")
	breakfast := seedTag(t, db, "Breakfast", "breakfast")

	for i, name := range []string{"Third", "Second", "First"} {
		seedRecipe(t, db, author, name,
			time.Duration(3-i)*time.Hour,
			[]models.RecipeIngredient{{IngredientID: flour.ID, Amount: 100}},
			[]models.Tag{*breakfast},
		)
	}

	limited, err := repo.FindByAuthor(author.ID, 2)
	require.NoError(t, err)
	require.Len(t, limited, 2)
	assert.Equal(t, "First", limited[0].Name)
	assert.Equal(t, "Second", limited[1].Name)

	all, err := repo.FindByAuthor(author.ID, 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	// The count ignores the page limit
	count, err := repo.CountByAuthor(author.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 3, count)
}
