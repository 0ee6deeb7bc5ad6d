package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"corpoleve/internal/models"
	"corpoleve/internal/service"
	"corpoleve/internal/validation"
)

// ChallengeHandler serves the 7-day challenge dashboard
type ChallengeHandler struct {
	challengeService *service.ChallengeService
	log              *zap.Logger
}

// NewChallengeHandler creates a new challenge handler
func NewChallengeHandler(challengeService *service.ChallengeService, log *zap.Logger) *ChallengeHandler {
	return &ChallengeHandler{challengeService: challengeService, log: log}
}

type dashboardResponse struct {
	UserName       string                   `json:"userName"`
	Progress       models.ChallengeProgress `json:"progress"`
	Days           []models.ChallengeDay    `json:"days"`
	DisplayedDay   int                      `json:"displayedDay"`
	IsDayCompleted bool                     `json:"isDayCompleted"`
	Recipes        models.DayMeals          `json:"recipes"`
}

type completeDayResponse struct {
	Progress          models.ChallengeProgress `json:"progress"`
	Days              []models.ChallengeDay    `json:"days"`
	CompletedDay      int                      `json:"completedDay"`
	Celebrate         bool                     `json:"celebrate"`
	Quote             string                   `json:"quote,omitempty"`
	ChallengeComplete bool                     `json:"challengeComplete"`
}

type dayResponse struct {
	Day            int             `json:"day"`
	IsDayCompleted bool            `json:"isDayCompleted"`
	Recipes        models.DayMeals `json:"recipes"`
}

func (h *ChallengeHandler) respondChallengeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidDay):
		respondWithError(w, h.log, http.StatusBadRequest, service.ErrInvalidDay.Error(), err)
	case errors.Is(err, service.ErrSequenceViolation):
		respondWithError(w, h.log, http.StatusConflict, service.ErrSequenceViolation.Error(), err)
	case errors.Is(err, service.ErrPersistenceUnavailable):
		h.log.Error("challenge storage unavailable", zap.Error(err))
		respondWithError(w, h.log, http.StatusServiceUnavailable, ErrProgressUnavailable, nil)
	default:
		respondWithError(w, h.log, http.StatusInternalServerError, ErrInternalServerError, err)
	}
}

func parseDay(raw string) (int, error) {
	day, err := strconv.Atoi(raw)
	if err != nil || validation.ValidateDayNumber(day) != nil {
		return 0, service.ErrInvalidDay
	}
	return day, nil
}

func isCompleted(days []models.ChallengeDay, day int) bool {
	d, ok := models.FindDay(days, day)
	return ok && d.Completed
}

// Dashboard returns the progress view and the displayed day's meals. The
// displayed day defaults to the current day; ?day= shows another one.
func (h *ChallengeHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	days, err := h.challengeService.LoadOrInitialize(r.Context(), user.ID)
	if err != nil {
		h.respondChallengeError(w, err)
		return
	}
	progress := models.Summarize(days)

	displayed := progress.CurrentDay
	if raw := r.URL.Query().Get("day"); raw != "" {
		if displayed, err = parseDay(raw); err != nil {
			h.respondChallengeError(w, err)
			return
		}
	}

	recipes, err := h.challengeService.DayRecipes(r.Context(), displayed)
	if err != nil {
		h.respondChallengeError(w, err)
		return
	}

	respondJSON(w, h.log, http.StatusOK, dashboardResponse{
		UserName:       user.DisplayName(),
		Progress:       progress,
		Days:           days,
		DisplayedDay:   displayed,
		IsDayCompleted: isCompleted(days, displayed),
		Recipes:        recipes,
	})
}

// CompleteDay marks the current day completed. Completing a pending day
// other than the current one is a 409; repeating a completed day is a
// harmless no-op.
func (h *ChallengeHandler) CompleteDay(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	day, err := parseDay(r.PathValue("day"))
	if err != nil {
		h.respondChallengeError(w, err)
		return
	}

	before, err := h.challengeService.LoadOrInitialize(r.Context(), user.ID)
	if err != nil {
		h.respondChallengeError(w, err)
		return
	}
	if err := service.CheckSequence(before, day); err != nil {
		h.respondChallengeError(w, err)
		return
	}

	days, changed, err := h.challengeService.CompleteDay(r.Context(), user.ID, day)
	if err != nil {
		h.respondChallengeError(w, err)
		return
	}

	progress := models.Summarize(days)
	resp := completeDayResponse{
		Progress:          progress,
		Days:              days,
		CompletedDay:      day,
		Celebrate:         changed,
		ChallengeComplete: progress.IsChallengeComplete,
	}
	if resp.Celebrate {
		resp.Quote = service.MotivationalQuote()
	}
	respondJSON(w, h.log, http.StatusOK, resp)
}

// Advance moves the displayed day forward without storing anything
func (h *ChallengeHandler) Advance(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	var req struct {
		DisplayedDay int `json:"displayedDay"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		respondWithError(w, h.log, http.StatusBadRequest, ErrInvalidRequestBody, err)
		return
	}

	days, err := h.challengeService.LoadOrInitialize(r.Context(), user.ID)
	if err != nil {
		h.respondChallengeError(w, err)
		return
	}

	next := h.challengeService.Advance(req.DisplayedDay)
	recipes, err := h.challengeService.DayRecipes(r.Context(), next)
	if err != nil {
		h.respondChallengeError(w, err)
		return
	}

	respondJSON(w, h.log, http.StatusOK, dayResponse{
		Day:            next,
		IsDayCompleted: isCompleted(days, next),
		Recipes:        recipes,
	})
}

// DayRecipes returns the meals of one challenge day
func (h *ChallengeHandler) DayRecipes(w http.ResponseWriter, r *http.Request) {
	day, err := parseDay(r.PathValue("day"))
	if err != nil {
		h.respondChallengeError(w, err)
		return
	}

	recipes, err := h.challengeService.DayRecipes(r.Context(), day)
	if err != nil {
		h.respondChallengeError(w, err)
		return
	}
	respondJSON(w, h.log, http.StatusOK, recipes)
}
