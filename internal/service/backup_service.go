package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"

	"corpoleve/internal/database"
	"corpoleve/internal/models"
	"corpoleve/internal/repository"
)

const backupVersion = "1.0"

// BackupData represents the complete user data backup structure
type BackupData struct {
	Version       string               `json:"version"`
	ExportedAt    time.Time            `json:"exported_at"`
	Users         []UserBackup         `json:"users"`
	ChallengeDays []ChallengeDayBackup `json:"challenge_days"`
	Favorites     []FavoriteBackup     `json:"favorites"`
	Menus         []MenuBackup         `json:"menus"`
}

// UserBackup represents a user record for backup
type UserBackup struct {
	ID            int64     `json:"id"`
	Email         string    `json:"email"`
	PasswordHash  string    `json:"password_hash"`
	Name          string    `json:"name"`
	OAuthProvider string    `json:"oauth_provider"`
	OAuthSubject  string    `json:"oauth_subject"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ChallengeDayBackup represents a challenge day record for backup
type ChallengeDayBackup struct {
	ID          int64      `json:"id"`
	UserID      int64      `json:"user_id"`
	DayNumber   int        `json:"day_number"`
	Completed   bool       `json:"completed"`
	CompletedAt *time.Time `json:"completed_at"`
}

// FavoriteBackup represents a favorite recipe record for backup
type FavoriteBackup struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	RecipeID  string    `json:"recipe_id"`
	CreatedAt time.Time `json:"created_at"`
}

// MenuBackup represents a generated menu for backup
type MenuBackup struct {
	ID          int64             `json:"id"`
	UserID      int64             `json:"user_id"`
	Goal        string            `json:"goal"`
	Equipment   []string          `json:"equipment"`
	Preferences map[string]string `json:"preferences"`
	Days        []models.MenuDay  `json:"menu"`
	CreatedAt   time.Time         `json:"created_at"`
}

// userDataTables lists user data tables in reverse dependency order
var userDataTables = []string{
	"user_favorites",
	"generated_menus",
	"challenge_days",
	"password_reset_tokens",
	"sessions",
	"users",
}

// BackupService handles database backup and restore operations
type BackupService struct {
	db        *database.DB
	users     *repository.UserRepository
	challenge *repository.ChallengeRepository
	favorites *repository.FavoriteRepository
	menus     *repository.MenuRepository
	log       *zap.Logger
}

// NewBackupService creates a new backup service
func NewBackupService(db *database.DB, log *zap.Logger) *BackupService {
	return &BackupService{
		db:        db,
		users:     repository.NewUserRepository(db),
		challenge: repository.NewChallengeRepository(db),
		favorites: repository.NewFavoriteRepository(db),
		menus:     repository.NewMenuRepository(db),
		log:       log,
	}
}

// Export writes a JSON snapshot of all user data to w. Seeded catalog
// content is not included since every startup recreates it.
func (s *BackupService) Export(ctx context.Context, w io.Writer) (*BackupData, error) {
	backup := &BackupData{Version: backupVersion, ExportedAt: time.Now().UTC()}

	users, err := s.users.GetAllUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to export users: %w", err)
	}
	for _, u := range users {
		backup.Users = append(backup.Users, UserBackup{
			ID: u.ID, Email: u.Email, PasswordHash: u.PasswordHash, Name: u.Name,
			OAuthProvider: u.OAuthProvider, OAuthSubject: u.OAuthSubject,
			CreatedAt: u.CreatedAt, UpdatedAt: u.UpdatedAt,
		})
	}

	days, err := s.challenge.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to export challenge days: %w", err)
	}
	for _, d := range days {
		backup.ChallengeDays = append(backup.ChallengeDays, ChallengeDayBackup{
			ID: d.ID, UserID: d.UserID, DayNumber: d.DayNumber, Completed: d.Completed, CompletedAt: d.CompletedAt,
		})
	}

	favorites, err := s.favorites.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to export favorites: %w", err)
	}
	for _, f := range favorites {
		backup.Favorites = append(backup.Favorites, FavoriteBackup(f))
	}

	menus, err := s.menus.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to export menus: %w", err)
	}
	for _, m := range menus {
		backup.Menus = append(backup.Menus, MenuBackup(m))
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(backup); err != nil {
		return nil, fmt.Errorf("failed to encode backup: %w", err)
	}

	s.log.Info("database exported",
		zap.Int("users", len(backup.Users)),
		zap.Int("challenge_days", len(backup.ChallengeDays)),
		zap.Int("favorites", len(backup.Favorites)),
		zap.Int("menus", len(backup.Menus)))
	return backup, nil
}

// Import restores a backup read from r in a single transaction, keeping
// the original IDs. With clear set, existing user data is deleted first.
func (s *BackupService) Import(ctx context.Context, r io.Reader, clear bool) error {
	var backup BackupData
	if err := json.NewDecoder(r).Decode(&backup); err != nil {
		return fmt.Errorf("failed to decode backup: %w", err)
	}
	if backup.Version != backupVersion {
		return fmt.Errorf("unsupported backup version %q", backup.Version)
	}

	s.log.Info("importing backup", zap.Time("exported_at", backup.ExportedAt), zap.Bool("clear", clear))

	err := s.db.WithTx(ctx, func(tx *database.Tx) error {
		if clear {
			for _, table := range userDataTables {
				if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
					return fmt.Errorf("failed to clear table %s: %w", table, err)
				}
			}
		}
		if err := importUsers(ctx, tx, backup.Users); err != nil {
			return err
		}
		if err := importChallengeDays(ctx, tx, backup.ChallengeDays); err != nil {
			return err
		}
		if err := importFavorites(ctx, tx, backup.Favorites); err != nil {
			return err
		}
		if err := importMenus(ctx, tx, backup.Menus); err != nil {
			return err
		}
		return resetSequences(ctx, tx)
	})
	if err != nil {
		return err
	}

	s.log.Info("database import completed",
		zap.Int("users", len(backup.Users)),
		zap.Int("challenge_days", len(backup.ChallengeDays)),
		zap.Int("favorites", len(backup.Favorites)),
		zap.Int("menus", len(backup.Menus)))
	return nil
}

func importUsers(ctx context.Context, tx *database.Tx, users []UserBackup) error {
	query := `INSERT INTO users (id, email, password_hash, name, oauth_provider, oauth_subject, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	for _, u := range users {
		if _, err := tx.ExecContext(ctx, query, u.ID, u.Email, u.PasswordHash, u.Name,
			u.OAuthProvider, u.OAuthSubject, u.CreatedAt, u.UpdatedAt); err != nil {
			return fmt.Errorf("failed to import user %d: %w", u.ID, err)
		}
	}
	return nil
}

func importChallengeDays(ctx context.Context, tx *database.Tx, days []ChallengeDayBackup) error {
	query := `INSERT INTO challenge_days (id, user_id, day_number, completed, completed_at) VALUES (?, ?, ?, ?, ?)`
	for _, d := range days {
		if _, err := tx.ExecContext(ctx, query, d.ID, d.UserID, d.DayNumber, d.Completed, d.CompletedAt); err != nil {
			return fmt.Errorf("failed to import challenge day %d: %w", d.ID, err)
		}
	}
	return nil
}

func importFavorites(ctx context.Context, tx *database.Tx, favorites []FavoriteBackup) error {
	query := `INSERT INTO user_favorites (id, user_id, recipe_id, created_at) VALUES (?, ?, ?, ?)`
	for _, f := range favorites {
		if _, err := tx.ExecContext(ctx, query, f.ID, f.UserID, f.RecipeID, f.CreatedAt); err != nil {
			return fmt.Errorf("failed to import favorite %d: %w", f.ID, err)
		}
	}
	return nil
}

func importMenus(ctx context.Context, tx *database.Tx, menus []MenuBackup) error {
	query := `INSERT INTO generated_menus (id, user_id, goal, equipment, preferences, menu_data, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	for _, m := range menus {
		equipment, err := json.Marshal(m.Equipment)
		if err != nil {
			return fmt.Errorf("failed to encode equipment of menu %d: %w", m.ID, err)
		}
		preferences, err := json.Marshal(m.Preferences)
		if err != nil {
			return fmt.Errorf("failed to encode preferences of menu %d: %w", m.ID, err)
		}
		days, err := json.Marshal(m.Days)
		if err != nil {
			return fmt.Errorf("failed to encode menu %d: %w", m.ID, err)
		}
		if _, err := tx.ExecContext(ctx, query, m.ID, m.UserID, m.Goal,
			string(equipment), string(preferences), string(days), m.CreatedAt); err != nil {
			return fmt.Errorf("failed to import menu %d: %w", m.ID, err)
		}
	}
	return nil
}

// resetSequences moves PostgreSQL serial sequences past the imported IDs.
// SQLite and MySQL advance their counters on explicit inserts.
func resetSequences(ctx context.Context, tx *database.Tx) error {
	if tx.GetDialect().MigrationsSubdir() != "postgres" {
		return nil
	}
	for _, table := range []string{"users", "challenge_days", "user_favorites", "generated_menus"} {
		query := fmt.Sprintf(
			"SELECT setval(pg_get_serial_sequence('%[1]s', 'id'), COALESCE((SELECT MAX(id) FROM %[1]s), 0) + 1, false)",
			table)
		if _, err := tx.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("failed to reset sequence for %s: %w", table, err)
		}
	}
	return nil
}
