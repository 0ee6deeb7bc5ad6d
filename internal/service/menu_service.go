package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"corpoleve/internal/models"
	"corpoleve/internal/validation"
)

var ErrMenuNotFound = errors.New("no generated menu yet")

// MenuStore persists generated menus
type MenuStore interface {
	SaveMenu(ctx context.Context, menu *models.GeneratedMenu) error
	LatestMenu(ctx context.Context, userID int64) (*models.GeneratedMenu, error)
}

// MenuOptions lists the questionnaire choices
type MenuOptions struct {
	Goals        []string             `json:"goals"`
	Equipment    []string             `json:"equipment"`
	HungerLevels []models.HungerLevel `json:"hungerLevels"`
}

// MenuService builds the smart menu from the questionnaire
type MenuService struct {
	menus MenuStore
	log   *zap.Logger
}

// NewMenuService creates a new menu service
func NewMenuService(menus MenuStore, log *zap.Logger) *MenuService {
	return &MenuService{menus: menus, log: log}
}

// Options returns the questionnaire choices
func (s *MenuService) Options() MenuOptions {
	return MenuOptions{
		Goals:        models.MenuGoals,
		Equipment:    models.MenuEquipment,
		HungerLevels: models.HungerLevels,
	}
}

// Generate validates the answers, stores them with the weekly plan and
// returns the stored menu
func (s *MenuService) Generate(ctx context.Context, userID int64, req models.MenuRequest) (*models.GeneratedMenu, error) {
	if err := validation.ValidateOneOf("goal", req.Goal, models.MenuGoals); err != nil {
		return nil, err
	}
	if err := validation.ValidateSubset("equipment", req.Equipment, models.MenuEquipment); err != nil {
		return nil, err
	}
	if err := validation.ValidateOneOf("hungerLevel", req.HungerLevel, models.HungerLevelValues()); err != nil {
		return nil, err
	}

	menu := &models.GeneratedMenu{
		UserID:      userID,
		Goal:        req.Goal,
		Equipment:   req.Equipment,
		Preferences: map[string]string{"hungerLevel": req.HungerLevel},
		Days:        models.WeeklyPlan(),
	}
	if err := s.menus.SaveMenu(ctx, menu); err != nil {
		return nil, fmt.Errorf("failed to save menu: %w", err)
	}

	s.log.Info("menu generated", zap.Int64("user_id", userID), zap.String("goal", req.Goal))
	return menu, nil
}

// Latest returns the user's most recent menu
func (s *MenuService) Latest(ctx context.Context, userID int64) (*models.GeneratedMenu, error) {
	menu, err := s.menus.LatestMenu(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load menu: %w", err)
	}
	if menu == nil {
		return nil, ErrMenuNotFound
	}
	return menu, nil
}
