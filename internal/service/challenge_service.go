package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"go.uber.org/zap"

	"corpoleve/internal/models"
	"corpoleve/internal/validation"
)

var (
	// ErrPersistenceUnavailable wraps every storage failure of the challenge
	// tracker. The caller may retry; nothing was partially written.
	ErrPersistenceUnavailable = errors.New("challenge progress storage unavailable")
	ErrInvalidDay             = errors.New("day must be between 1 and 7")
	ErrSequenceViolation      = errors.New("only the current day can be completed")
)

// ChallengeStore persists challenge day records
type ChallengeStore interface {
	// FetchDays returns the user's records ordered by day number
	FetchDays(ctx context.Context, userID int64) ([]models.ChallengeDay, error)
	// InsertDays writes all records in one transaction, skipping days that exist
	InsertDays(ctx context.Context, userID int64, days []models.ChallengeDay) error
	// MarkDayCompleted completes a pending day and reports whether a row changed
	MarkDayCompleted(ctx context.Context, userID int64, dayNumber int, at time.Time) (bool, error)
}

// DailyRecipeSource lists the meals assigned to a challenge day
type DailyRecipeSource interface {
	ListDailyRecipes(ctx context.Context, dayNumber int) ([]models.DailyRecipe, error)
}

// UserLookup finds users by ID
type UserLookup interface {
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
}

// ChallengeService tracks each user's progress through the 7-day challenge
type ChallengeService struct {
	store   ChallengeStore
	recipes DailyRecipeSource
	users   UserLookup
	mailer  Mailer
	now     func() time.Time
	log     *zap.Logger
}

// NewChallengeService creates a new challenge service. mailer may be nil.
func NewChallengeService(store ChallengeStore, recipes DailyRecipeSource, users UserLookup, mailer Mailer, log *zap.Logger) *ChallengeService {
	return &ChallengeService{
		store:   store,
		recipes: recipes,
		users:   users,
		mailer:  mailer,
		now:     time.Now,
		log:     log,
	}
}

func unavailable(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrPersistenceUnavailable, op, err)
}

// LoadOrInitialize returns the user's 7 day records, creating any that are
// missing. A new user gets all 7 in one transaction; a partial set only
// gets the missing days, so repeated calls never duplicate.
func (s *ChallengeService) LoadOrInitialize(ctx context.Context, userID int64) ([]models.ChallengeDay, error) {
	days, err := s.store.FetchDays(ctx, userID)
	if err != nil {
		return nil, unavailable("fetch days", err)
	}

	missing := models.MissingDays(days)
	if len(missing) == 0 {
		return days, nil
	}

	rows := make([]models.ChallengeDay, len(missing))
	for i, n := range missing {
		rows[i] = models.ChallengeDay{UserID: userID, DayNumber: n}
	}
	if err := s.store.InsertDays(ctx, userID, rows); err != nil {
		return nil, unavailable("insert days", err)
	}

	if len(days) == 0 {
		s.log.Info("challenge initialized", zap.Int64("user_id", userID))
	} else {
		s.log.Warn("repaired partial challenge", zap.Int64("user_id", userID), zap.Ints("inserted_days", missing))
	}

	days, err = s.store.FetchDays(ctx, userID)
	if err != nil {
		return nil, unavailable("fetch days", err)
	}
	return days, nil
}

// CompleteDay marks a day completed and returns the updated records and
// whether this call changed the row. Completing an already completed day
// changes nothing, including its completion time. The day is not checked
// against the current day.
//
// Records are only created when the user has none yet or a partial set; a
// later completion failure leaves those new rows in place.
func (s *ChallengeService) CompleteDay(ctx context.Context, userID int64, dayNumber int) ([]models.ChallengeDay, bool, error) {
	if err := validation.ValidateDayNumber(dayNumber); err != nil {
		return nil, false, ErrInvalidDay
	}

	days, err := s.store.FetchDays(ctx, userID)
	if err != nil {
		return nil, false, unavailable("fetch days", err)
	}
	if len(models.MissingDays(days)) > 0 {
		if _, err := s.LoadOrInitialize(ctx, userID); err != nil {
			return nil, false, err
		}
	}

	changed, err := s.store.MarkDayCompleted(ctx, userID, dayNumber, s.now())
	if err != nil {
		return nil, false, unavailable("complete day", err)
	}

	days, err = s.store.FetchDays(ctx, userID)
	if err != nil {
		return nil, false, unavailable("fetch days", err)
	}

	if changed {
		progress := models.Summarize(days)
		s.log.Info("challenge day completed",
			zap.Int64("user_id", userID),
			zap.Int("day", dayNumber),
			zap.Int("completed_count", progress.CompletedCount))
		if progress.IsChallengeComplete {
			s.notifyChallengeComplete(ctx, userID)
		}
	}

	return days, changed, nil
}

// notifyChallengeComplete emails the user; failures are logged only
func (s *ChallengeService) notifyChallengeComplete(ctx context.Context, userID int64) {
	if s.mailer == nil || s.users == nil {
		return
	}
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil || user == nil {
		s.log.Warn("challenge complete email skipped: user lookup failed", zap.Int64("user_id", userID), zap.Error(err))
		return
	}
	if err := s.mailer.SendChallengeCompleteEmail(ctx, user.Email, user.DisplayName()); err != nil {
		s.log.Warn("failed to send challenge complete email", zap.Int64("user_id", userID), zap.Error(err))
	}
}

// Advance returns the day to display after displayedDay. Nothing is stored.
func (s *ChallengeService) Advance(displayedDay int) int {
	return models.Advance(displayedDay)
}

// DayRecipes returns a day's meals grouped as breakfast, lunch and dinner
func (s *ChallengeService) DayRecipes(ctx context.Context, dayNumber int) (models.DayMeals, error) {
	if err := validation.ValidateDayNumber(dayNumber); err != nil {
		return models.DayMeals{}, ErrInvalidDay
	}
	recipes, err := s.recipes.ListDailyRecipes(ctx, dayNumber)
	if err != nil {
		return models.DayMeals{}, fmt.Errorf("failed to load recipes for day %d: %w", dayNumber, err)
	}
	return models.GroupByMeal(recipes), nil
}

// CheckSequence rejects completing a pending day other than the current
// one. Already completed days pass so repeated requests stay harmless.
func CheckSequence(days []models.ChallengeDay, dayNumber int) error {
	if d, ok := models.FindDay(days, dayNumber); ok && d.Completed {
		return nil
	}
	if dayNumber != models.CurrentDay(days) {
		return ErrSequenceViolation
	}
	return nil
}

var motivationalQuotes = []string{
	"A leveza vem de quem não desiste.",
	"Cada pequeno passo é uma grande vitória.",
	"Você está provando que consegue.",
	"A transformação acontece todos os dias.",
	"Continue, você está incrível!",
	"Seu corpo agradece cada escolha consciente.",
	"Persistência é o segredo da leveza.",
}

// MotivationalQuote picks a random quote for the day-completed celebration
func MotivationalQuote() string {
	return motivationalQuotes[rand.IntN(len(motivationalQuotes))]
}
