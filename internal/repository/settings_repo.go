package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"corpoleve/internal/database"
)

const settingDemoLoginEnabled = "demo_login_enabled"

type SettingsRepository struct {
	db *database.DB
}

func NewSettingsRepository(db *database.DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

// GetSetting retrieves a setting value by key. Missing keys return "", false.
func (r *SettingsRepository) GetSetting(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := r.db.QueryRowContext(ctx, `SELECT setting_value FROM settings WHERE setting_key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to get setting %s: %w", key, err)
	}
	return value, true, nil
}

// SetSetting updates or inserts a setting
func (r *SettingsRepository) SetSetting(ctx context.Context, key, value string) error {
	if _, err := r.db.ExecContext(ctx, r.db.Dialect.UpsertSetting(), key, value); err != nil {
		return fmt.Errorf("failed to set setting %s: %w", key, err)
	}
	return nil
}

// IsDemoLoginEnabled checks the demo login toggle. A missing row or a
// read failure counts as enabled so the stored value only ever turns it off.
func (r *SettingsRepository) IsDemoLoginEnabled(ctx context.Context) bool {
	value, ok, err := r.GetSetting(ctx, settingDemoLoginEnabled)
	if err != nil || !ok {
		return true
	}
	return value == "true"
}

// SetDemoLoginEnabled enables or disables the demo login
func (r *SettingsRepository) SetDemoLoginEnabled(ctx context.Context, enabled bool) error {
	value := "false"
	if enabled {
		value = "true"
	}
	return r.SetSetting(ctx, settingDemoLoginEnabled, value)
}
