package services

import (
	"testing"

	"github.com/pdmitriev/recipebook-backend/database"
	"github.com/pdmitriev/recipebook-backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShoppingListComputeAggregatesCart(t *testing.T) {
	repos, db := newTestDB(t)
	shoppingList := NewShoppingList(repos.ShoppingCartRepo())

	user := seedUser(t, db, "alice")
	author := seedUser(t, db, "bob")
	flour := seedIngredient(t, db, "Flour", "g")
	egg := seedIngredient(t, db, "Egg", "pcs")
	tag := seedTag(t, db, "Breakfast", "breakfast")

	pancakes := models.Recipe{AuthorID: author.ID, Name: "Pancakes", Text: "fry", CookingTime: 20}
	require.NoError(t, repos.RecipeRepo().Create(&pancakes,
		[]models.RecipeIngredient{
			{IngredientID: flour.ID, Amount: 200},
			{IngredientID: egg.ID, Amount: 2},
		},
		[]models.Tag{*tag},
	))
	cake := models.Recipe{AuthorID: author.ID, Name: "Cake", Text: "bake", CookingTime: 60}
	require.NoError(t, repos.RecipeRepo().Create(&cake,
		[]models.RecipeIngredient{{IngredientID: flour.ID, Amount: 100}},
		[]models.Tag{*tag},
	))

	require.NoError(t, repos.ShoppingCartRepo().Add(user.ID, pancakes.ID))
	require.NoError(t, repos.ShoppingCartRepo().Add(user.ID, cake.ID))

	totals, err := shoppingList.Compute(user.ID)
	require.NoError(t, err)
	require.Len(t, totals, 2)
	assert.Equal(t, database.IngredientTotal{Name: "Egg", MeasurementUnit: "pcs", Total: 2}, totals[0])
	assert.Equal(t, database.IngredientTotal{Name: "Flour", MeasurementUnit: "g", Total: 300}, totals[1])
}

func TestRenderText(t *testing.T) {
	totals := []database.IngredientTotal{
		{Name: "Flour", MeasurementUnit: "g", Total: 300},
		{Name: "Tomato", MeasurementUnit: "g", Total: 200},
	}

	assert.Equal(t, "Flour — 300 g\nTomato — 200 g\n", RenderText(totals))
}

func TestRenderTextEmpty(t *testing.T) {
	assert.Equal(t, "", RenderText(nil))
}
