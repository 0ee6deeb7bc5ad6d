package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"corpoleve/internal/models"
)

func TestChallengeRepositoryInsertAndFetch(t *testing.T) {
	db := newTestDB(t)
	repo := NewChallengeRepository(db)
	user := createTestUser(t, db, "challenge@example.com")
	ctx := context.Background()

	days, err := repo.FetchDays(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, days)

	require.NoError(t, repo.InsertDays(ctx, user.ID, models.NewChallengeDays(user.ID)))

	days, err = repo.FetchDays(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, days, models.ChallengeLength)
	for i, d := range days {
		assert.Equal(t, i+1, d.DayNumber)
		assert.False(t, d.Completed)
		assert.Nil(t, d.CompletedAt)
	}
}

func TestChallengeRepositoryInsertIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	repo := NewChallengeRepository(db)
	user := createTestUser(t, db, "twice@example.com")
	ctx := context.Background()

	require.NoError(t, repo.InsertDays(ctx, user.ID, models.NewChallengeDays(user.ID)))
	require.NoError(t, repo.InsertDays(ctx, user.ID, models.NewChallengeDays(user.ID)))

	days, err := repo.FetchDays(ctx, user.ID)
	require.NoError(t, err)
	assert.Len(t, days, models.ChallengeLength)
}

func TestChallengeRepositoryMarkDayCompleted(t *testing.T) {
	db := newTestDB(t)
	repo := NewChallengeRepository(db)
	user := createTestUser(t, db, "complete@example.com")
	ctx := context.Background()

	require.NoError(t, repo.InsertDays(ctx, user.ID, models.NewChallengeDays(user.ID)))

	first := time.Now().Add(-time.Minute).Truncate(time.Second)
	changed, err := repo.MarkDayCompleted(ctx, user.ID, 1, first)
	require.NoError(t, err)
	assert.True(t, changed)

	// Completing again leaves the original timestamp
	changed, err = repo.MarkDayCompleted(ctx, user.ID, 1, time.Now())
	require.NoError(t, err)
	assert.False(t, changed)

	days, err := repo.FetchDays(ctx, user.ID)
	require.NoError(t, err)
	require.True(t, days[0].Completed)
	require.NotNil(t, days[0].CompletedAt)
	assert.True(t, first.Equal(*days[0].CompletedAt), "completedAt = %v, want %v", days[0].CompletedAt, first)
	assert.False(t, days[1].Completed)
}

func TestChallengeRepositoryMarkMissingDay(t *testing.T) {
	db := newTestDB(t)
	repo := NewChallengeRepository(db)
	user := createTestUser(t, db, "missing@example.com")

	changed, err := repo.MarkDayCompleted(context.Background(), user.ID, 3, time.Now())
	require.NoError(t, err)
	assert.False(t, changed)
}

func TestChallengeRepositoryUsersAreIsolated(t *testing.T) {
	db := newTestDB(t)
	repo := NewChallengeRepository(db)
	alice := createTestUser(t, db, "alice@example.com")
	bob := createTestUser(t, db, "bob@example.com")
	ctx := context.Background()

	require.NoError(t, repo.InsertDays(ctx, alice.ID, models.NewChallengeDays(alice.ID)))
	require.NoError(t, repo.InsertDays(ctx, bob.ID, models.NewChallengeDays(bob.ID)))

	_, err := repo.MarkDayCompleted(ctx, alice.ID, 1, time.Now())
	require.NoError(t, err)

	bobDays, err := repo.FetchDays(ctx, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, models.CurrentDay(bobDays))

	all, err := repo.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2*models.ChallengeLength)
}
