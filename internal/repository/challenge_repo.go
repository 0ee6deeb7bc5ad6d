package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"corpoleve/internal/database"
	"corpoleve/internal/models"
)

// ChallengeRepository persists per-user challenge day records
type ChallengeRepository struct {
	db *database.DB
}

// NewChallengeRepository creates a new challenge repository
func NewChallengeRepository(db *database.DB) *ChallengeRepository {
	return &ChallengeRepository{db: db}
}

// FetchDays returns a user's day records ordered by day number
func (r *ChallengeRepository) FetchDays(ctx context.Context, userID int64) ([]models.ChallengeDay, error) {
	query := `
		SELECT id, user_id, day_number, completed, completed_at
		FROM challenge_days
		WHERE user_id = ?
		ORDER BY day_number ASC
	`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query challenge days: %w", err)
	}
	defer rows.Close()

	var days []models.ChallengeDay
	for rows.Next() {
		var d models.ChallengeDay
		var completedAt sql.NullTime
		if err := rows.Scan(&d.ID, &d.UserID, &d.DayNumber, &d.Completed, &completedAt); err != nil {
			return nil, fmt.Errorf("failed to scan challenge day: %w", err)
		}
		if completedAt.Valid {
			t := completedAt.Time
			d.CompletedAt = &t
		}
		days = append(days, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read challenge days: %w", err)
	}
	return days, nil
}

// InsertDays creates the given day records in one transaction. Days that
// already exist for the user are skipped, so the call is idempotent.
func (r *ChallengeRepository) InsertDays(ctx context.Context, userID int64, days []models.ChallengeDay) error {
	query := r.db.Dialect.InsertIgnore("challenge_days", []string{"user_id", "day_number", "completed", "completed_at"})

	err := r.db.WithTx(ctx, func(tx *database.Tx) error {
		for _, d := range days {
			var completedAt any
			if d.CompletedAt != nil {
				completedAt = *d.CompletedAt
			}
			if _, err := tx.ExecContext(ctx, query, userID, d.DayNumber, d.Completed, completedAt); err != nil {
				return fmt.Errorf("day %d: %w", d.DayNumber, err)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to insert challenge days: %w", err)
	}
	return nil
}

// MarkDayCompleted sets completed and completed_at on a pending day. It
// reports false when the day was already completed or does not exist.
func (r *ChallengeRepository) MarkDayCompleted(ctx context.Context, userID int64, dayNumber int, at time.Time) (bool, error) {
	query := `
		UPDATE challenge_days
		SET completed = ?, completed_at = ?
		WHERE user_id = ? AND day_number = ? AND completed = ?
	`
	result, err := r.db.ExecContext(ctx, query, true, at, userID, dayNumber, false)
	if err != nil {
		return false, fmt.Errorf("failed to complete challenge day: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read completion result: %w", err)
	}
	return rows > 0, nil
}

// ListAll returns every challenge day record, used by backups
func (r *ChallengeRepository) ListAll(ctx context.Context) ([]models.ChallengeDay, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, day_number, completed, completed_at
		FROM challenge_days
		ORDER BY user_id, day_number
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query challenge days: %w", err)
	}
	defer rows.Close()

	var days []models.ChallengeDay
	for rows.Next() {
		var d models.ChallengeDay
		var completedAt sql.NullTime
		if err := rows.Scan(&d.ID, &d.UserID, &d.DayNumber, &d.Completed, &completedAt); err != nil {
			return nil, fmt.Errorf("failed to scan challenge day: %w", err)
		}
		if completedAt.Valid {
			t := completedAt.Time
			d.CompletedAt = &t
		}
		days = append(days, d)
	}
	return days, rows.Err()
}
