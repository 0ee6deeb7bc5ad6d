package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"corpoleve/internal/models"
	"corpoleve/internal/validation"
)

// AccountService manages the signed-in user's own account
type AccountService struct {
	users    UserStore
	sessions SessionStore
	log      *zap.Logger
}

// NewAccountService creates a new account service
func NewAccountService(users UserStore, sessions SessionStore, log *zap.Logger) *AccountService {
	return &AccountService{users: users, sessions: sessions, log: log}
}

// UpdateName changes the display name and returns the updated user
func (s *AccountService) UpdateName(ctx context.Context, userID int64, name string) (*models.User, error) {
	name = strings.TrimSpace(name)
	if err := validation.ValidateName(name); err != nil {
		return nil, err
	}
	if err := s.users.UpdateName(ctx, userID, name); err != nil {
		return nil, err
	}
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload user: %w", err)
	}
	return user, nil
}

// DeleteAccount removes the user with all of their data
func (s *AccountService) DeleteAccount(ctx context.Context, userID int64) error {
	if err := s.users.DeleteUser(ctx, userID); err != nil {
		return fmt.Errorf("failed to delete account: %w", err)
	}
	// SQL sessions go with the user; an external session store needs its own purge.
	if err := s.sessions.DeleteUserSessions(ctx, userID); err != nil {
		s.log.Warn("failed to purge sessions of deleted user", zap.Int64("user_id", userID), zap.Error(err))
	}
	s.log.Info("account deleted", zap.Int64("user_id", userID))
	return nil
}
