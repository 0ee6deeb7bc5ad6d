package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"corpoleve/internal/models"
)

func TestRecipeRepositoryListRecipes(t *testing.T) {
	db := newTestDB(t)
	repo := NewRecipeRepository(db)
	ctx := context.Background()

	all, err := repo.ListRecipes(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 23)
	for i := 1; i < len(all); i++ {
		assert.LessOrEqual(t, all[i-1].Category, all[i].Category, "recipes must be ordered by category")
	}

	lunches, err := repo.ListRecipes(ctx, models.CategoryLunch)
	require.NoError(t, err)
	assert.Len(t, lunches, 7)
	for _, r := range lunches {
		assert.Equal(t, models.CategoryLunch, r.Category)
		assert.NotEmpty(t, r.Ingredients)
	}

	none, err := repo.ListRecipes(ctx, "Bebidas")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestRecipeRepositoryGetRecipe(t *testing.T) {
	db := newTestDB(t)
	repo := NewRecipeRepository(db)
	ctx := context.Background()

	desserts, err := repo.ListRecipes(ctx, models.CategoryDessert)
	require.NoError(t, err)
	require.Len(t, desserts, 1)

	got, err := repo.GetRecipe(ctx, desserts[0].ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Mousse de Maracujá Fit", got.Name)
	assert.True(t, got.IsBonus)
	assert.NotEmpty(t, got.Instructions)

	missing, err := repo.GetRecipe(ctx, "does-not-exist")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestRecipeRepositoryDailyRecipes(t *testing.T) {
	db := newTestDB(t)
	repo := NewRecipeRepository(db)

	daily, err := repo.ListDailyRecipes(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, daily, 3)

	meals := models.GroupByMeal(daily)
	require.NotNil(t, meals.Breakfast)
	require.NotNil(t, meals.Lunch)
	require.NotNil(t, meals.Dinner)
	assert.Equal(t, "Overnight Oats de Chia", meals.Breakfast.Name)
	assert.Equal(t, "Caldo Verde Brasileiro", meals.Dinner.Name)
}

func TestFavoriteRepository(t *testing.T) {
	db := newTestDB(t)
	recipes := NewRecipeRepository(db)
	favorites := NewFavoriteRepository(db)
	user := createTestUser(t, db, "fav@example.com")
	ctx := context.Background()

	all, err := recipes.ListRecipes(ctx, "")
	require.NoError(t, err)
	recipeID := all[0].ID

	isFav, err := favorites.IsFavorite(ctx, user.ID, recipeID)
	require.NoError(t, err)
	assert.False(t, isFav)

	require.NoError(t, favorites.AddFavorite(ctx, user.ID, recipeID))
	require.NoError(t, favorites.AddFavorite(ctx, user.ID, recipeID))

	ids, err := favorites.ListFavoriteIDs(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, map[string]bool{recipeID: true}, ids)

	favRecipes, err := recipes.ListFavoriteRecipes(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, favRecipes, 1)
	assert.Equal(t, recipeID, favRecipes[0].ID)

	require.NoError(t, favorites.RemoveFavorite(ctx, user.ID, recipeID))
	isFav, err = favorites.IsFavorite(ctx, user.ID, recipeID)
	require.NoError(t, err)
	assert.False(t, isFav)
}
