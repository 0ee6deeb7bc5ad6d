package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"corpoleve/internal/database"
	"corpoleve/internal/models"
)

// RecipeRepository reads the recipe catalog and the daily challenge recipes
type RecipeRepository struct {
	db *database.DB
}

// NewRecipeRepository creates a new recipe repository
func NewRecipeRepository(db *database.DB) *RecipeRepository {
	return &RecipeRepository{db: db}
}

const recipeColumns = `r.id, r.name, r.description, r.category, r.calories, r.prep_time, r.image_url,
	r.ingredients, r.instructions, r.audio_url, r.tags, r.is_bonus, r.created_at`

func scanRecipe(row rowScanner) (*models.Recipe, error) {
	var r models.Recipe
	var ingredients, instructions, tags string
	if err := row.Scan(
		&r.ID, &r.Name, &r.Description, &r.Category, &r.Calories, &r.PrepTime, &r.ImageURL,
		&ingredients, &instructions, &r.AudioURL, &tags, &r.IsBonus, &r.CreatedAt,
	); err != nil {
		return nil, err
	}
	if err := decodeList(ingredients, &r.Ingredients); err != nil {
		return nil, fmt.Errorf("recipe %s ingredients: %w", r.ID, err)
	}
	if err := decodeList(instructions, &r.Instructions); err != nil {
		return nil, fmt.Errorf("recipe %s instructions: %w", r.ID, err)
	}
	if err := decodeList(tags, &r.Tags); err != nil {
		return nil, fmt.Errorf("recipe %s tags: %w", r.ID, err)
	}
	return &r, nil
}

// decodeList parses a JSON string array stored in a TEXT column
func decodeList(raw string, dst *[]string) error {
	if raw == "" {
		*dst = []string{}
		return nil
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		return err
	}
	if *dst == nil {
		*dst = []string{}
	}
	return nil
}

func (r *RecipeRepository) queryRecipes(ctx context.Context, query string, args ...any) ([]models.Recipe, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query recipes: %w", err)
	}
	defer rows.Close()

	recipes := []models.Recipe{}
	for rows.Next() {
		recipe, err := scanRecipe(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan recipe: %w", err)
		}
		recipes = append(recipes, *recipe)
	}
	return recipes, rows.Err()
}

// ListRecipes returns the catalog ordered by category and name. An empty
// category returns every recipe.
func (r *RecipeRepository) ListRecipes(ctx context.Context, category string) ([]models.Recipe, error) {
	if category == "" {
		return r.queryRecipes(ctx, `SELECT `+recipeColumns+` FROM recipes r ORDER BY r.category, r.name`)
	}
	return r.queryRecipes(ctx,
		`SELECT `+recipeColumns+` FROM recipes r WHERE r.category = ? ORDER BY r.name`, category)
}

// GetRecipe retrieves a recipe by ID, nil when it does not exist
func (r *RecipeRepository) GetRecipe(ctx context.Context, id string) (*models.Recipe, error) {
	recipe, err := scanRecipe(r.db.QueryRowContext(ctx, `SELECT `+recipeColumns+` FROM recipes r WHERE r.id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get recipe: %w", err)
	}
	return recipe, nil
}

// ListFavoriteRecipes returns the recipes a user has favorited, newest first
func (r *RecipeRepository) ListFavoriteRecipes(ctx context.Context, userID int64) ([]models.Recipe, error) {
	return r.queryRecipes(ctx, `
		SELECT `+recipeColumns+`
		FROM recipes r
		JOIN user_favorites f ON f.recipe_id = r.id
		WHERE f.user_id = ?
		ORDER BY f.created_at DESC, r.name
	`, userID)
}

// ListDailyRecipes returns the meals assigned to a challenge day
func (r *RecipeRepository) ListDailyRecipes(ctx context.Context, dayNumber int) ([]models.DailyRecipe, error) {
	query := `
		SELECT id, day_number, meal_type, name, description, image_url, tags
		FROM daily_recipes
		WHERE day_number = ?
		ORDER BY meal_type
	`
	rows, err := r.db.QueryContext(ctx, query, dayNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to query daily recipes: %w", err)
	}
	defer rows.Close()

	var recipes []models.DailyRecipe
	for rows.Next() {
		var d models.DailyRecipe
		var tags string
		if err := rows.Scan(&d.ID, &d.DayNumber, &d.MealType, &d.Name, &d.Description, &d.ImageURL, &tags); err != nil {
			return nil, fmt.Errorf("failed to scan daily recipe: %w", err)
		}
		if err := decodeList(tags, &d.Tags); err != nil {
			return nil, fmt.Errorf("daily recipe %s tags: %w", d.ID, err)
		}
		recipes = append(recipes, d)
	}
	return recipes, rows.Err()
}
