package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"corpoleve/internal/models"
	"corpoleve/internal/repository"
	"corpoleve/internal/security"
	"corpoleve/internal/validation"
)

var (
	ErrEmailTaken         = errors.New("email already taken")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrSessionNotFound    = errors.New("session not found")
	ErrSessionExpired     = errors.New("session expired")
	ErrDemoLoginDisabled  = errors.New("demo login is disabled")
	ErrInvalidResetToken  = errors.New("invalid or expired reset token")
	ErrResetTokenUsed     = errors.New("this reset link has already been used")
)

const (
	demoPassword      = "demo123456"
	demoName          = "Demo User"
	resetTokenBytes   = 32
	resetTokenTimeout = time.Hour
)

// UserStore persists accounts and password reset tokens
type UserStore interface {
	CreateUser(ctx context.Context, email, passwordHash, name string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	GetUserByOAuth(ctx context.Context, provider, subject string) (*models.User, error)
	LinkOAuthProvider(ctx context.Context, userID int64, provider, subject string) error
	UpdateName(ctx context.Context, userID int64, name string) error
	UpdatePassword(ctx context.Context, userID int64, passwordHash string) error
	DeleteUser(ctx context.Context, userID int64) error

	CreatePasswordResetToken(ctx context.Context, token string, userID int64, expiresAt time.Time) error
	GetPasswordResetToken(ctx context.Context, token string) (*models.PasswordResetToken, error)
	MarkPasswordResetTokenAsUsed(ctx context.Context, token string) error
	DeleteUserPasswordResetTokens(ctx context.Context, userID int64) error
	DeleteExpiredPasswordResetTokens(ctx context.Context) error
}

// SessionStore persists login sessions. Implemented over SQL and Redis.
type SessionStore interface {
	CreateSession(ctx context.Context, sessionID string, userID int64, expiresAt time.Time) (*models.Session, error)
	GetSession(ctx context.Context, sessionID string) (*models.Session, error)
	DeleteSession(ctx context.Context, sessionID string) error
	DeleteUserSessions(ctx context.Context, userID int64) error
	DeleteExpiredSessions(ctx context.Context) error
}

// DemoSwitch reports the runtime demo login toggle
type DemoSwitch interface {
	IsDemoLoginEnabled(ctx context.Context) bool
}

// AuthService handles authentication business logic
type AuthService struct {
	users           UserStore
	sessions        SessionStore
	mailer          Mailer
	demo            DemoSwitch
	demoEnabled     bool
	sessionDuration time.Duration
	log             *zap.Logger
}

// AuthOptions configures optional AuthService collaborators
type AuthOptions struct {
	Mailer           Mailer
	Demo             DemoSwitch
	DemoLoginEnabled bool
}

// NewAuthService creates a new auth service
func NewAuthService(users UserStore, sessions SessionStore, sessionDuration time.Duration, opts AuthOptions, log *zap.Logger) *AuthService {
	return &AuthService{
		users:           users,
		sessions:        sessions,
		mailer:          opts.Mailer,
		demo:            opts.Demo,
		demoEnabled:     opts.DemoLoginEnabled,
		sessionDuration: sessionDuration,
		log:             log,
	}
}

// Register creates a new user account and sends a welcome email
func (s *AuthService) Register(ctx context.Context, email, password, name string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	name = strings.TrimSpace(name)

	if err := validation.ValidateEmail(email); err != nil {
		return nil, err
	}
	if err := validation.ValidatePassword(password); err != nil {
		return nil, err
	}
	if err := validation.ValidateName(name); err != nil {
		return nil, err
	}

	existing, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	passwordHash, err := security.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.users.CreateUser(ctx, email, passwordHash, name)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.log.Info("user registered", zap.Int64("user_id", user.ID))
	s.sendWelcome(ctx, user)

	return user, nil
}

func (s *AuthService) sendWelcome(ctx context.Context, user *models.User) {
	if s.mailer == nil {
		return
	}
	if err := s.mailer.SendWelcomeEmail(ctx, user.Email, user.DisplayName()); err != nil {
		s.log.Warn("failed to send welcome email", zap.Int64("user_id", user.ID), zap.Error(err))
	}
}

// Login authenticates a user and creates a session
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.Session, *models.User, error) {
	user, err := s.users.GetUserByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil || !security.CheckPassword(password, user.PasswordHash) {
		return nil, nil, ErrInvalidCredentials
	}

	session, err := s.createSession(ctx, user.ID)
	if err != nil {
		return nil, nil, err
	}
	return session, user, nil
}

// DemoLoginEnabled reports whether both the config flag and the settings
// toggle allow the demo account
func (s *AuthService) DemoLoginEnabled(ctx context.Context) bool {
	if !s.demoEnabled {
		return false
	}
	return s.demo == nil || s.demo.IsDemoLoginEnabled(ctx)
}

// DemoLogin signs in the shared demo account, creating it on first use
func (s *AuthService) DemoLogin(ctx context.Context) (*models.Session, *models.User, error) {
	if !s.DemoLoginEnabled(ctx) {
		return nil, nil, ErrDemoLoginDisabled
	}

	user, err := s.users.GetUserByEmail(ctx, models.DemoEmail)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get demo user: %w", err)
	}
	if user == nil {
		passwordHash, err := security.HashPassword(demoPassword)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to hash password: %w", err)
		}
		user, err = s.users.CreateUser(ctx, models.DemoEmail, passwordHash, demoName)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create demo user: %w", err)
		}
		s.log.Info("demo user created", zap.Int64("user_id", user.ID))
	}

	session, err := s.createSession(ctx, user.ID)
	if err != nil {
		return nil, nil, err
	}
	return session, user, nil
}

func (s *AuthService) createSession(ctx context.Context, userID int64) (*models.Session, error) {
	session, err := s.sessions.CreateSession(ctx, security.GenerateSessionID(), userID, time.Now().Add(s.sessionDuration))
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	return session, nil
}

// ValidateSession checks if a session is valid and returns the associated user
func (s *AuthService) ValidateSession(ctx context.Context, sessionID string) (*models.User, error) {
	session, err := s.sessions.GetSession(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}

	if session.IsExpired() {
		_ = s.sessions.DeleteSession(ctx, sessionID)
		return nil, ErrSessionExpired
	}

	user, err := s.users.GetUserByID(ctx, session.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, ErrSessionNotFound
	}

	return user, nil
}

// Logout invalidates a session
func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	if err := s.sessions.DeleteSession(ctx, sessionID); err != nil {
		return fmt.Errorf("failed to logout: %w", err)
	}
	return nil
}

// CleanupExpired removes expired sessions and password reset tokens
func (s *AuthService) CleanupExpired(ctx context.Context) error {
	if err := s.sessions.DeleteExpiredSessions(ctx); err != nil {
		return fmt.Errorf("failed to cleanup sessions: %w", err)
	}
	if err := s.users.DeleteExpiredPasswordResetTokens(ctx); err != nil {
		return fmt.Errorf("failed to cleanup reset tokens: %w", err)
	}
	return nil
}

// OAuthLogin authenticates or creates a user using an OAuth provider.
// An existing password account with the same email gets the provider linked.
func (s *AuthService) OAuthLogin(ctx context.Context, provider, subject, email, name string) (*models.Session, *models.User, error) {
	if provider == "" || subject == "" {
		return nil, nil, errors.New("missing oauth provider information")
	}
	email = strings.ToLower(strings.TrimSpace(email))
	if err := validation.ValidateEmail(email); err != nil {
		return nil, nil, err
	}

	user, err := s.users.GetUserByOAuth(ctx, provider, subject)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to lookup oauth user: %w", err)
	}

	if user == nil {
		user, err = s.users.GetUserByEmail(ctx, email)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to check existing user: %w", err)
		}
		if user != nil {
			if err := s.users.LinkOAuthProvider(ctx, user.ID, provider, subject); err != nil {
				if errors.Is(err, repository.ErrOAuthAlreadyLinked) {
					return nil, nil, ErrEmailTaken
				}
				return nil, nil, fmt.Errorf("failed to link oauth provider: %w", err)
			}
		} else {
			if name == "" {
				name = strings.Split(email, "@")[0]
			}
			user, err = s.users.CreateUser(ctx, email, "", name)
			if err != nil {
				return nil, nil, fmt.Errorf("failed to create oauth user: %w", err)
			}
			if err := s.users.LinkOAuthProvider(ctx, user.ID, provider, subject); err != nil {
				return nil, nil, fmt.Errorf("failed to link oauth provider: %w", err)
			}
			s.log.Info("oauth user registered", zap.Int64("user_id", user.ID), zap.String("provider", provider))
			s.sendWelcome(ctx, user)
		}
		user.OAuthProvider = provider
		user.OAuthSubject = subject
	}

	session, err := s.createSession(ctx, user.ID)
	if err != nil {
		return nil, nil, err
	}
	return session, user, nil
}

// RequestPasswordReset creates a reset token and emails it. Unknown emails
// and OAuth-only accounts succeed silently so callers cannot probe accounts.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) error {
	user, err := s.users.GetUserByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil || user.PasswordHash == "" {
		return nil
	}

	token, err := security.GenerateToken(resetTokenBytes)
	if err != nil {
		return fmt.Errorf("failed to generate token: %w", err)
	}

	_ = s.users.DeleteUserPasswordResetTokens(ctx, user.ID)

	if err := s.users.CreatePasswordResetToken(ctx, token, user.ID, time.Now().Add(resetTokenTimeout)); err != nil {
		return fmt.Errorf("failed to create reset token: %w", err)
	}

	if s.mailer != nil {
		if err := s.mailer.SendPasswordResetEmail(ctx, user.Email, user.DisplayName(), token); err != nil {
			return fmt.Errorf("failed to send reset email: %w", err)
		}
	}

	return nil
}

// ValidatePasswordResetToken checks if a reset token can still be used
func (s *AuthService) ValidatePasswordResetToken(ctx context.Context, token string) (bool, error) {
	resetToken, err := s.users.GetPasswordResetToken(ctx, token)
	if err != nil {
		return false, fmt.Errorf("failed to get reset token: %w", err)
	}
	return resetToken != nil && !resetToken.Used && !resetToken.IsExpired(), nil
}

// ResetPassword sets a new password using a valid token and signs the user
// out everywhere
func (s *AuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	resetToken, err := s.users.GetPasswordResetToken(ctx, token)
	if err != nil {
		return fmt.Errorf("failed to get reset token: %w", err)
	}
	if resetToken == nil || resetToken.IsExpired() {
		return ErrInvalidResetToken
	}
	if resetToken.Used {
		return ErrResetTokenUsed
	}

	if err := validation.ValidatePassword(newPassword); err != nil {
		return err
	}

	passwordHash, err := security.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.users.UpdatePassword(ctx, resetToken.UserID, passwordHash); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	if err := s.users.MarkPasswordResetTokenAsUsed(ctx, token); err != nil {
		return fmt.Errorf("failed to mark token as used: %w", err)
	}
	if err := s.sessions.DeleteUserSessions(ctx, resetToken.UserID); err != nil {
		s.log.Warn("failed to revoke sessions after password reset", zap.Int64("user_id", resetToken.UserID), zap.Error(err))
	}

	s.log.Info("password reset", zap.Int64("user_id", resetToken.UserID))
	return nil
}
