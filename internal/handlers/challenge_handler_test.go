package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"corpoleve/internal/models"
	"corpoleve/internal/service"
)

func TestChallengeRequiresAuth(t *testing.T) {
	app := newTestApp(t)
	rec := app.client(t).do(http.MethodGet, "/api/challenge", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestDashboardInitializesChallenge(t *testing.T) {
	app := newTestApp(t)
	c := app.client(t)
	c.login()

	rec := c.do(http.MethodGet, "/api/challenge", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	resp := decode[dashboardResponse](t, rec)
	assert.Equal(t, "Demo User", resp.UserName)
	assert.Len(t, resp.Days, 7)
	assert.Equal(t, 1, resp.DisplayedDay)
	assert.Equal(t, 1, resp.Progress.CurrentDay)
	assert.False(t, resp.IsDayCompleted)
	require.NotNil(t, resp.Recipes.Breakfast)
	assert.Equal(t, "Smoothie Verde Detox", resp.Recipes.Breakfast.Name)

	rec = c.do(http.MethodGet, "/api/challenge?day=3", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 3, decode[dashboardResponse](t, rec).DisplayedDay)

	rec = c.do(http.MethodGet, "/api/challenge?day=8", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCompleteDayFlow(t *testing.T) {
	app := newTestApp(t)
	c := app.client(t)
	c.login()

	rec := c.do(http.MethodPost, "/api/challenge/days/2/complete", nil)
	assert.Equal(t, http.StatusConflict, rec.Code, "day 2 is not the current day yet")

	rec = c.do(http.MethodPost, "/api/challenge/days/1/complete", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	first := decode[completeDayResponse](t, rec)
	assert.True(t, first.Celebrate)
	assert.NotEmpty(t, first.Quote)
	assert.Equal(t, 2, first.Progress.CurrentDay)
	assert.Equal(t, 14, first.Progress.ProgressPercentage)

	rec = c.do(http.MethodPost, "/api/challenge/days/1/complete", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	again := decode[completeDayResponse](t, rec)
	assert.False(t, again.Celebrate)
	assert.Empty(t, again.Quote)
	day1, _ := models.FindDay(again.Days, 1)
	firstDay1, _ := models.FindDay(first.Days, 1)
	assert.True(t, day1.CompletedAt.Equal(*firstDay1.CompletedAt))

	rec = c.do(http.MethodPost, "/api/challenge/advance", map[string]int{"displayedDay": 1})
	require.Equal(t, http.StatusOK, rec.Code)
	next := decode[dayResponse](t, rec)
	assert.Equal(t, 2, next.Day)
	assert.False(t, next.IsDayCompleted)

	rec = c.do(http.MethodPost, "/api/challenge/days/2/complete", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	progress := decode[completeDayResponse](t, rec).Progress
	assert.Equal(t, 3, progress.CurrentDay)
	assert.Equal(t, 2, progress.CompletedCount)
}

func TestCompleteDayRejectsBadInput(t *testing.T) {
	app := newTestApp(t)
	c := app.client(t)
	c.login()

	for _, day := range []string{"0", "8", "-1", "abc"} {
		rec := c.do(http.MethodPost, "/api/challenge/days/"+day+"/complete", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code, day)
		assert.JSONEq(t, `{"error":"`+service.ErrInvalidDay.Error()+`"}`, rec.Body.String(), day)
	}
	assert.Equal(t, http.StatusBadRequest, c.do(http.MethodGet, "/api/challenge?day=8", nil).Code)
	assert.Equal(t, http.StatusBadRequest, c.do(http.MethodGet, "/api/challenge/days/0/recipes", nil).Code)

	c.csrf = ""
	assert.Equal(t, http.StatusForbidden, c.do(http.MethodPost, "/api/challenge/days/1/complete", nil).Code)
}

func TestCompleteWholeChallenge(t *testing.T) {
	app := newTestApp(t)
	c := app.client(t)
	c.login()

	var last completeDayResponse
	for day := 1; day <= 7; day++ {
		rec := c.do(http.MethodPost, "/api/challenge/days/"+strconv.Itoa(day)+"/complete", nil)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		last = decode[completeDayResponse](t, rec)
	}
	assert.True(t, last.ChallengeComplete)
	assert.Equal(t, 100, last.Progress.ProgressPercentage)
	assert.Equal(t, 7, last.Progress.CurrentDay)

	rec := c.do(http.MethodPost, "/api/challenge/advance", map[string]int{"displayedDay": 7})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 7, decode[dayResponse](t, rec).Day)
}

func TestDayRecipesEndpoint(t *testing.T) {
	app := newTestApp(t)
	c := app.client(t)
	c.login()

	rec := c.do(http.MethodGet, "/api/challenge/days/7/recipes", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	meals := decode[models.DayMeals](t, rec)
	require.NotNil(t, meals.Dinner)
	assert.Equal(t, "Sopa de Legumes com Frango", meals.Dinner.Name)
}

type brokenStore struct{}

func (brokenStore) FetchDays(ctx context.Context, userID int64) ([]models.ChallengeDay, error) {
	return nil, errors.New("database is locked")
}

func (brokenStore) InsertDays(ctx context.Context, userID int64, days []models.ChallengeDay) error {
	return errors.New("database is locked")
}

func (brokenStore) MarkDayCompleted(ctx context.Context, userID int64, dayNumber int, at time.Time) (bool, error) {
	return false, errors.New("database is locked")
}

func TestChallengeStorageFailureIs503(t *testing.T) {
	log := zap.NewNop()
	h := NewChallengeHandler(service.NewChallengeService(brokenStore{}, nil, nil, nil, log), log)

	req := httptest.NewRequest(http.MethodPost, "/api/challenge/days/1/complete", nil)
	req.SetPathValue("day", "1")
	req = req.WithContext(context.WithValue(req.Context(), UserContextKey, &models.User{ID: 1}))
	rec := httptest.NewRecorder()

	h.CompleteDay(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.JSONEq(t, `{"error":"`+ErrProgressUnavailable+`"}`, rec.Body.String())
}

// racedStore shows day 1 as pending but another request completes it first
type racedStore struct{}

func (racedStore) FetchDays(ctx context.Context, userID int64) ([]models.ChallengeDay, error) {
	return models.NewChallengeDays(userID), nil
}

func (racedStore) InsertDays(ctx context.Context, userID int64, days []models.ChallengeDay) error {
	return nil
}

func (racedStore) MarkDayCompleted(ctx context.Context, userID int64, dayNumber int, at time.Time) (bool, error) {
	return false, nil
}

func TestDuplicateCompletionDoesNotCelebrate(t *testing.T) {
	log := zap.NewNop()
	h := NewChallengeHandler(service.NewChallengeService(racedStore{}, nil, nil, nil, log), log)

	req := httptest.NewRequest(http.MethodPost, "/api/challenge/days/1/complete", nil)
	req.SetPathValue("day", "1")
	req = req.WithContext(context.WithValue(req.Context(), UserContextKey, &models.User{ID: 1}))
	rec := httptest.NewRecorder()

	h.CompleteDay(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	resp := decode[completeDayResponse](t, rec)
	assert.False(t, resp.Celebrate)
	assert.Empty(t, resp.Quote)
}
