package repository

import (
	"context"
	"fmt"

	"corpoleve/internal/database"
	"corpoleve/internal/models"
)

// FavoriteRepository handles user_favorites
type FavoriteRepository struct {
	db *database.DB
}

// NewFavoriteRepository creates a new favorite repository
func NewFavoriteRepository(db *database.DB) *FavoriteRepository {
	return &FavoriteRepository{db: db}
}

// IsFavorite reports whether the user has favorited the recipe
func (r *FavoriteRepository) IsFavorite(ctx context.Context, userID int64, recipeID string) (bool, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM user_favorites WHERE user_id = ? AND recipe_id = ?", userID, recipeID).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check favorite: %w", err)
	}
	return count > 0, nil
}

// AddFavorite favorites a recipe; adding an existing favorite is a no-op
func (r *FavoriteRepository) AddFavorite(ctx context.Context, userID int64, recipeID string) error {
	query := r.db.Dialect.InsertIgnore("user_favorites", []string{"user_id", "recipe_id"})
	if _, err := r.db.ExecContext(ctx, query, userID, recipeID); err != nil {
		return fmt.Errorf("failed to add favorite: %w", err)
	}
	return nil
}

// RemoveFavorite removes a favorite
func (r *FavoriteRepository) RemoveFavorite(ctx context.Context, userID int64, recipeID string) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM user_favorites WHERE user_id = ? AND recipe_id = ?", userID, recipeID)
	if err != nil {
		return fmt.Errorf("failed to remove favorite: %w", err)
	}
	return nil
}

// ListFavoriteIDs returns the set of recipe IDs a user has favorited
func (r *FavoriteRepository) ListFavoriteIDs(ctx context.Context, userID int64) (map[string]bool, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT recipe_id FROM user_favorites WHERE user_id = ?", userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query favorites: %w", err)
	}
	defer rows.Close()

	ids := make(map[string]bool)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan favorite: %w", err)
		}
		ids[id] = true
	}
	return ids, rows.Err()
}

// ListAll returns every favorite, used by backups
func (r *FavoriteRepository) ListAll(ctx context.Context) ([]models.Favorite, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT id, user_id, recipe_id, created_at FROM user_favorites ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("failed to query favorites: %w", err)
	}
	defer rows.Close()

	var favorites []models.Favorite
	for rows.Next() {
		var f models.Favorite
		if err := rows.Scan(&f.ID, &f.UserID, &f.RecipeID, &f.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan favorite: %w", err)
		}
		favorites = append(favorites, f)
	}
	return favorites, rows.Err()
}
