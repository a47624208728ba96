package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/pdmitriev/recipebook-backend/errs"
	"github.com/pdmitriev/recipebook-backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComposerCreateRoundTrip(t *testing.T) {
	repos, db := newTestDB(t)
	composer := NewComposer(repos.RecipeRepo(), repos.IngredientRepo(), repos.TagRepo(), 0, 0)

	author := seedUser(t, db, "alice")
	flour := seedIngredient(t, db, "Flour", "g")
	egg := seedIngredient(t, db, "Egg", "pcs")
	breakfast := seedTag(t, db, "Breakfast", "breakfast")

	recipe, err := composer.Create(author, RecipeInput{
		Name:        "Pancakes",
		Text:        "Mix and fry",
		CookingTime: 20,
		Ingredients: []LineItemInput{
			{ID: flour.ID, Amount: 300},
			{ID: egg.ID, Amount: 2},
		},
		Tags: []uuid.UUID{breakfast.ID},
	})
	require.NoError(t, err)

	assert.Equal(t, author.ID, recipe.AuthorID)
	require.Len(t, recipe.Ingredients, 2)
	assert.Equal(t, "Flour", recipe.Ingredients[0].Ingredient.Name)
	assert.Equal(t, "Egg", recipe.Ingredients[1].Ingredient.Name)
	require.Len(t, recipe.Tags, 1)
	assert.Equal(t, "breakfast", recipe.Tags[0].Slug)
}

func TestComposerRejectionOrder(t *testing.T) {
	repos, db := newTestDB(t)
	composer := NewComposer(repos.RecipeRepo(), repos.IngredientRepo(), repos.TagRepo(), 0, 0)

	author := seedUser(t, db, "alice")
	flour := seedIngredient(t, db, "Flour", "g")
	breakfast := seedTag(t, db, "Breakfast", "breakfast")

	valid := RecipeInput{
		Name:        "Pancakes",
		Text:        "Mix and fry",
		CookingTime: 20,
		Ingredients: []LineItemInput{{ID: flour.ID, Amount: 300}},
		Tags:        []uuid.UUID{breakfast.ID},
	}

	tests := []struct {
		name   string
		mutate func(*RecipeInput)
		field  string
	}{
		{
			name:   "empty ingredients",
			mutate: func(in *RecipeInput) { in.Ingredients = nil },
			field:  "ingredients",
		},
		{
			name:   "zero amount",
			mutate: func(in *RecipeInput) { in.Ingredients[0].Amount = 0 },
			field:  "amount",
		},
		{
			name:   "amount above ceiling",
			mutate: func(in *RecipeInput) { in.Ingredients[0].Amount = DefaultMaxAmount + 1 },
			field:  "amount",
		},
		{
			name: "duplicate ingredient",
			mutate: func(in *RecipeInput) {
				in.Ingredients = append(in.Ingredients, LineItemInput{ID: flour.ID, Amount: 100})
			},
			field: "ingredients",
		},
		{
			name:   "empty tags",
			mutate: func(in *RecipeInput) { in.Tags = nil },
			field:  "tags",
		},
		{
			name:   "duplicate tag",
			mutate: func(in *RecipeInput) { in.Tags = append(in.Tags, breakfast.ID) },
			field:  "tags",
		},
		{
			name:   "zero cooking time",
			mutate: func(in *RecipeInput) { in.CookingTime = 0 },
			field:  "cooking_time",
		},
		{
			name:   "cooking time above ceiling",
			mutate: func(in *RecipeInput) { in.CookingTime = DefaultMaxCookingTime + 1 },
			field:  "cooking_time",
		},
		{
			name:   "missing name",
			mutate: func(in *RecipeInput) { in.Name = "" },
			field:  "name",
		},
		{
			name:   "missing text",
			mutate: func(in *RecipeInput) { in.Text = "" },
			field:  "text",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := valid
			input.Ingredients = append([]LineItemInput(nil), valid.Ingredients...)
			input.Tags = append([]uuid.UUID(nil), valid.Tags...)
			tt.mutate(&input)

			_, err := composer.Create(author, input)
			require.Error(t, err)
			assert.True(t, errs.IsValidation(err))

			var apiErr *errs.ApiErr
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.field, apiErr.Field)
		})
	}

	// No rejected payload left anything behind
	var count int64
	require.NoError(t, db.Model(&models.Recipe{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

func TestComposerAmountCheckedBeforeDuplicates(t *testing.T) {
	repos, db := newTestDB(t)
	composer := NewComposer(repos.RecipeRepo(), repos.IngredientRepo(), repos.TagRepo(), 0, 0)

	author := seedUser(t, db, "alice")
	flour := seedIngredient(t, db, "Flour", "g")
	breakfast := seedTag(t, db, "Breakfast", "breakfast")

	// Both rules violated; the amount one must win
	_, err := composer.Create(author, RecipeInput{
		Name:        "Pancakes",
		Text:        "Mix and fry",
		CookingTime: 20,
		Ingredients: []LineItemInput{
			{ID: flour.ID, Amount: 100},
			{ID: flour.ID, Amount: 0},
		},
		Tags: []uuid.UUID{breakfast.ID},
	})
	require.Error(t, err)

	var apiErr *errs.ApiErr
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "amount", apiErr.Field)
}

func TestComposerUnknownReferencesAreNotFound(t *testing.T) {
	repos, db := newTestDB(t)
	composer := NewComposer(repos.RecipeRepo(), repos.IngredientRepo(), repos.TagRepo(), 0, 0)

	author := seedUser(t, db, "alice")
	flour := seedIngredient(t, db, "Flour", "g")
	breakfast := seedTag(t, db, "Breakfast", "breakfast")

	_, err := composer.Create(author, RecipeInput{
		Name:        "Pancakes",
		Text:        "Mix and fry",
		CookingTime: 20,
		Ingredients: []LineItemInput{{ID: uuid.New(), Amount: 100}},
		Tags:        []uuid.UUID{breakfast.ID},
	})
	assert.True(t, errs.IsNotFound(err))

	_, err = composer.Create(author, RecipeInput{
		Name:        "Pancakes",
		Text:        "Mix and fry",
		CookingTime: 20,
		Ingredients: []LineItemInput{{ID: flour.ID, Amount: 100}},
		Tags:        []uuid.UUID{uuid.New()},
	})
	assert.True(t, errs.IsNotFound(err))

	var count int64
	require.NoError(t, db.Model(&models.Recipe{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

func TestComposerUpdateReplacesAggregate(t *testing.T) {
	repos, db := newTestDB(t)
	composer := NewComposer(repos.RecipeRepo(), repos.IngredientRepo(), repos.TagRepo(), 0, 0)

	author := seedUser(t, db, "alice")
	flour := seedIngredient(t, db, "Flour", "g")
	sugar := seedIngredient(t, db, "Sugar", "g")
	breakfast := seedTag(t, db, "Breakfast", "breakfast")
	dessert := seedTag(t, db, "Dessert", "dessert")

	recipe, err := composer.Create(author, RecipeInput{
		Name:        "Pancakes",
		Text:        "Mix and fry",
		CookingTime: 20,
		Ingredients: []LineItemInput{{ID: flour.ID, Amount: 300}},
		Tags:        []uuid.UUID{breakfast.ID},
	})
	require.NoError(t, err)

	updated, err := composer.Update(recipe, RecipeInput{
		Name:        "Sweet Pancakes",
		Text:        "Mix, sweeten, fry",
		CookingTime: 25,
		Ingredients: []LineItemInput{{ID: sugar.ID, Amount: 50}},
		Tags:        []uuid.UUID{dessert.ID},
	})
	require.NoError(t, err)

	assert.Equal(t, "Sweet Pancakes", updated.Name)
	assert.Equal(t, 25, updated.CookingTime)
	require.Len(t, updated.Ingredients, 1)
	assert.Equal(t, "Sugar", updated.Ingredients[0].Ingredient.Name)
	require.Len(t, updated.Tags, 1)
	assert.Equal(t, "dessert", updated.Tags[0].Slug)
}

func TestComposerUpdateInvalidPayloadLeavesRecipeUntouched(t *testing.T) {
	repos, db := newTestDB(t)
	composer := NewComposer(repos.RecipeRepo(), repos.IngredientRepo(), repos.TagRepo(), 0, 0)

	author := seedUser(t, db, "alice")
	flour := seedIngredient(t, db, "Flour", "g")
	breakfast := seedTag(t, db, "Breakfast", "breakfast")

	recipe, err := composer.Create(author, RecipeInput{
		Name:        "Pancakes",
		Text:        "Mix and fry",
		CookingTime: 20,
		Ingredients: []LineItemInput{{ID: flour.ID, Amount: 300}},
		Tags:        []uuid.UUID{breakfast.ID},
	})
	require.NoError(t, err)

	_, err = composer.Update(recipe, RecipeInput{
		Name:        "Broken",
		Text:        "Broken",
		CookingTime: 20,
		Ingredients: nil,
		Tags:        []uuid.UUID{breakfast.ID},
	})
	assert.True(t, errs.IsValidation(err))

	loaded, err := repos.RecipeRepo().FindByID(recipe.ID)
	require.NoError(t, err)
	assert.Equal(t, "Pancakes", loaded.Name)
	require.Len(t, loaded.Ingredients, 1)
	assert.Equal(t, 300, loaded.Ingredients[0].Amount)
}
