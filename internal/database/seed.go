package database

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// contentNamespace scopes the name-based UUIDs of seeded rows so the same
// recipe keeps its ID across databases and backups.
var contentNamespace = uuid.MustParse("6f1c1f0e-3c55-4c8e-9a51-4d0a7e0b9a11")

func recipeID(name string) string {
	return uuid.NewSHA1(contentNamespace, []byte("recipe:"+name)).String()
}

func dailyRecipeID(day int, mealType string) string {
	return uuid.NewSHA1(contentNamespace, []byte("daily:"+strconv.Itoa(day)+":"+mealType)).String()
}

// SeedContent loads the recipe catalog and the daily challenge recipes.
// Rows that already exist are left untouched, so it is safe on every start.
func (db *DB) SeedContent(ctx context.Context, log *zap.Logger) error {
	recipeInsert := db.Dialect.InsertIgnore("recipes", []string{
		"id", "name", "description", "category", "calories", "prep_time",
		"image_url", "ingredients", "instructions", "audio_url", "tags", "is_bonus",
	})
	dailyInsert := db.Dialect.InsertIgnore("daily_recipes", []string{
		"id", "day_number", "meal_type", "name", "description", "image_url", "tags",
	})

	var recipesAdded, dailyAdded int64
	err := db.WithTx(ctx, func(tx *Tx) error {
		for _, r := range CatalogRecipes() {
			res, err := tx.ExecContext(ctx, recipeInsert,
				r.ID, r.Name, r.Description, r.Category, r.Calories, r.PrepTime,
				r.ImageURL, mustJSON(r.Ingredients), mustJSON(r.Instructions), r.AudioURL, mustJSON(r.Tags), r.IsBonus)
			if err != nil {
				return fmt.Errorf("failed to seed recipe %q: %w", r.Name, err)
			}
			n, _ := res.RowsAffected()
			recipesAdded += n
		}

		for _, d := range DailyRecipes() {
			res, err := tx.ExecContext(ctx, dailyInsert,
				d.ID, d.DayNumber, d.MealType, d.Name, d.Description, d.ImageURL, mustJSON(d.Tags))
			if err != nil {
				return fmt.Errorf("failed to seed daily recipe day %d %s: %w", d.DayNumber, d.MealType, err)
			}
			n, _ := res.RowsAffected()
			dailyAdded += n
		}
		return nil
	})
	if err != nil {
		return err
	}

	if recipesAdded > 0 || dailyAdded > 0 {
		log.Info("seeded content",
			zap.Int64("recipes", recipesAdded),
			zap.Int64("daily_recipes", dailyAdded))
	}
	return nil
}

// mustJSON encodes string slices for TEXT columns. Nil becomes "[]".
func mustJSON(values []string) string {
	if values == nil {
		return "[]"
	}
	b, err := json.Marshal(values)
	if err != nil {
		// []string always marshals
		panic(err)
	}
	return string(b)
}
