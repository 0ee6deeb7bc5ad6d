package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"corpoleve/internal/database"
	"corpoleve/internal/models"
)

// MenuRepository stores generated smart menus
type MenuRepository struct {
	db *database.DB
}

// NewMenuRepository creates a new menu repository
func NewMenuRepository(db *database.DB) *MenuRepository {
	return &MenuRepository{db: db}
}

// SaveMenu persists a generated menu and sets its ID
func (r *MenuRepository) SaveMenu(ctx context.Context, menu *models.GeneratedMenu) error {
	equipment, err := json.Marshal(menu.Equipment)
	if err != nil {
		return fmt.Errorf("failed to encode equipment: %w", err)
	}
	preferences, err := json.Marshal(menu.Preferences)
	if err != nil {
		return fmt.Errorf("failed to encode preferences: %w", err)
	}
	days, err := json.Marshal(menu.Days)
	if err != nil {
		return fmt.Errorf("failed to encode menu: %w", err)
	}
	if menu.CreatedAt.IsZero() {
		menu.CreatedAt = time.Now()
	}

	query := `
		INSERT INTO generated_menus (user_id, goal, equipment, preferences, menu_data, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	id, err := r.db.ExecReturningID(ctx, query,
		menu.UserID, menu.Goal, string(equipment), string(preferences), string(days), menu.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to save menu: %w", err)
	}
	menu.ID = id
	return nil
}

const menuColumns = `id, user_id, goal, equipment, preferences, menu_data, created_at`

func scanMenu(row rowScanner) (*models.GeneratedMenu, error) {
	var m models.GeneratedMenu
	var equipment, preferences, days string
	if err := row.Scan(&m.ID, &m.UserID, &m.Goal, &equipment, &preferences, &days, &m.CreatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(equipment), &m.Equipment); err != nil {
		return nil, fmt.Errorf("menu %d equipment: %w", m.ID, err)
	}
	if err := json.Unmarshal([]byte(preferences), &m.Preferences); err != nil {
		return nil, fmt.Errorf("menu %d preferences: %w", m.ID, err)
	}
	if err := json.Unmarshal([]byte(days), &m.Days); err != nil {
		return nil, fmt.Errorf("menu %d data: %w", m.ID, err)
	}
	return &m, nil
}

// LatestMenu returns the user's most recent menu, nil when there is none
func (r *MenuRepository) LatestMenu(ctx context.Context, userID int64) (*models.GeneratedMenu, error) {
	query := `SELECT ` + menuColumns + ` FROM generated_menus WHERE user_id = ? ORDER BY created_at DESC, id DESC LIMIT 1`
	menu, err := scanMenu(r.db.QueryRowContext(ctx, query, userID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get latest menu: %w", err)
	}
	return menu, nil
}

// ListAll returns every generated menu, used by backups
func (r *MenuRepository) ListAll(ctx context.Context) ([]models.GeneratedMenu, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+menuColumns+` FROM generated_menus ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query menus: %w", err)
	}
	defer rows.Close()

	var menus []models.GeneratedMenu
	for rows.Next() {
		menu, err := scanMenu(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan menu: %w", err)
		}
		menus = append(menus, *menu)
	}
	return menus, rows.Err()
}
