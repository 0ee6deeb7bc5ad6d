package repository

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"corpoleve/internal/database"
	"corpoleve/internal/models"
)

// newTestDB opens a migrated and seeded SQLite database in a temp dir
func newTestDB(t *testing.T) *database.DB {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping database test in short mode")
	}

	db, err := database.Initialize(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	ctx := context.Background()
	require.NoError(t, db.RunMigrations(ctx, "../../migrations", zap.NewNop()))
	require.NoError(t, db.SeedContent(ctx, zap.NewNop()))
	return db
}

func createTestUser(t *testing.T, db *database.DB, email string) *models.User {
	t.Helper()
	user, err := NewUserRepository(db).CreateUser(context.Background(), email, "hash", "Test User")
	require.NoError(t, err)
	return user
}
