package service

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"go.uber.org/zap"

	"corpoleve/internal/models"
)

var (
	ErrRecipeNotFound  = errors.New("recipe not found")
	ErrUnknownCategory = errors.New("unknown recipe category")
)

// RecipeStore reads the recipe catalog
type RecipeStore interface {
	ListRecipes(ctx context.Context, category string) ([]models.Recipe, error)
	GetRecipe(ctx context.Context, id string) (*models.Recipe, error)
	ListFavoriteRecipes(ctx context.Context, userID int64) ([]models.Recipe, error)
}

// FavoriteStore persists a user's favorite recipes
type FavoriteStore interface {
	IsFavorite(ctx context.Context, userID int64, recipeID string) (bool, error)
	AddFavorite(ctx context.Context, userID int64, recipeID string) error
	RemoveFavorite(ctx context.Context, userID int64, recipeID string) error
	ListFavoriteIDs(ctx context.Context, userID int64) (map[string]bool, error)
}

// RecipeView is a recipe annotated for the requesting user
type RecipeView struct {
	models.Recipe
	IsFavorite bool `json:"isFavorite"`
}

// RecipeService serves the catalog and favorites
type RecipeService struct {
	recipes   RecipeStore
	favorites FavoriteStore
	log       *zap.Logger
}

// NewRecipeService creates a new recipe service
func NewRecipeService(recipes RecipeStore, favorites FavoriteStore, log *zap.Logger) *RecipeService {
	return &RecipeService{recipes: recipes, favorites: favorites, log: log}
}

// List returns the catalog filtered by category. An empty category or
// "Todos" returns every recipe.
func (s *RecipeService) List(ctx context.Context, userID int64, category string) ([]RecipeView, error) {
	if category == models.CategoryAll {
		category = ""
	}
	if category != "" && !slices.Contains(models.Categories, category) {
		return nil, ErrUnknownCategory
	}

	recipes, err := s.recipes.ListRecipes(ctx, category)
	if err != nil {
		return nil, fmt.Errorf("failed to list recipes: %w", err)
	}
	favorites, err := s.favorites.ListFavoriteIDs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list favorites: %w", err)
	}

	views := make([]RecipeView, len(recipes))
	for i, r := range recipes {
		views[i] = RecipeView{Recipe: r, IsFavorite: favorites[r.ID]}
	}
	return views, nil
}

// Get returns a single recipe with the user's favorite flag
func (s *RecipeService) Get(ctx context.Context, userID int64, id string) (*RecipeView, error) {
	recipe, err := s.recipes.GetRecipe(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get recipe: %w", err)
	}
	if recipe == nil {
		return nil, ErrRecipeNotFound
	}

	fav, err := s.favorites.IsFavorite(ctx, userID, id)
	if err != nil {
		return nil, fmt.Errorf("failed to check favorite: %w", err)
	}
	return &RecipeView{Recipe: *recipe, IsFavorite: fav}, nil
}

// Favorites returns the user's favorite recipes
func (s *RecipeService) Favorites(ctx context.Context, userID int64) ([]models.Recipe, error) {
	recipes, err := s.recipes.ListFavoriteRecipes(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list favorite recipes: %w", err)
	}
	return recipes, nil
}

// ToggleFavorite flips the favorite flag and returns the new value
func (s *RecipeService) ToggleFavorite(ctx context.Context, userID int64, recipeID string) (bool, error) {
	recipe, err := s.recipes.GetRecipe(ctx, recipeID)
	if err != nil {
		return false, fmt.Errorf("failed to get recipe: %w", err)
	}
	if recipe == nil {
		return false, ErrRecipeNotFound
	}

	fav, err := s.favorites.IsFavorite(ctx, userID, recipeID)
	if err != nil {
		return false, fmt.Errorf("failed to check favorite: %w", err)
	}

	if fav {
		if err := s.favorites.RemoveFavorite(ctx, userID, recipeID); err != nil {
			return false, fmt.Errorf("failed to remove favorite: %w", err)
		}
		return false, nil
	}

	if err := s.favorites.AddFavorite(ctx, userID, recipeID); err != nil {
		return false, fmt.Errorf("failed to add favorite: %w", err)
	}
	s.log.Debug("recipe favorited", zap.Int64("user_id", userID), zap.String("recipe_id", recipeID))
	return true, nil
}
