package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"corpoleve/internal/models"
	"corpoleve/internal/validation"
)

type authFixture struct {
	svc      *AuthService
	users    *memUserStore
	sessions *memSessionStore
	mailer   *fakeMailer
}

func newAuthFixture(demo bool) *authFixture {
	f := &authFixture{
		users:    newMemUserStore(),
		sessions: newMemSessionStore(),
		mailer:   &fakeMailer{},
	}
	f.svc = NewAuthService(f.users, f.sessions, time.Hour, AuthOptions{
		Mailer:           f.mailer,
		Demo:             staticDemoSwitch(demo),
		DemoLoginEnabled: true,
	}, zap.NewNop())
	return f
}

func TestRegister(t *testing.T) {
	f := newAuthFixture(true)
	ctx := context.Background()

	user, err := f.svc.Register(ctx, " Ana@Example.com ", "segredo123", "Ana")
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", user.Email)
	assert.NotEqual(t, "segredo123", user.PasswordHash)
	assert.Equal(t, []string{"ana@example.com"}, f.mailer.welcome)

	_, err = f.svc.Register(ctx, "ana@example.com", "segredo123", "Ana")
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestRegisterValidation(t *testing.T) {
	f := newAuthFixture(true)

	tests := []struct {
		name, email, password, userName string
	}{
		{"bad email", "not-an-email", "segredo123", "Ana"},
		{"short password", "ana@example.com", "123", "Ana"},
		{"missing name", "ana@example.com", "segredo123", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.Register(context.Background(), tt.email, tt.password, tt.userName)
			var verr validation.ValidationError
			assert.ErrorAs(t, err, &verr)
		})
	}
}

func TestRegisterSurvivesMailerFailure(t *testing.T) {
	f := newAuthFixture(true)
	f.mailer.err = assert.AnError

	_, err := f.svc.Register(context.Background(), "ana@example.com", "segredo123", "Ana")
	assert.NoError(t, err)
}

func TestLoginAndValidateSession(t *testing.T) {
	f := newAuthFixture(true)
	ctx := context.Background()
	_, err := f.svc.Register(ctx, "ana@example.com", "segredo123", "Ana")
	require.NoError(t, err)

	_, _, err = f.svc.Login(ctx, "ana@example.com", "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, _, err = f.svc.Login(ctx, "nobody@example.com", "segredo123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	session, user, err := f.svc.Login(ctx, "ANA@example.com", "segredo123")
	require.NoError(t, err)
	assert.Equal(t, "Ana", user.Name)

	got, err := f.svc.ValidateSession(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	require.NoError(t, f.svc.Logout(ctx, session.ID))
	_, err = f.svc.ValidateSession(ctx, session.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestValidateExpiredSession(t *testing.T) {
	f := newAuthFixture(true)
	ctx := context.Background()

	_, err := f.sessions.CreateSession(ctx, "old", 1, time.Now().Add(-time.Minute))
	require.NoError(t, err)

	_, err = f.svc.ValidateSession(ctx, "old")
	assert.ErrorIs(t, err, ErrSessionExpired)
	assert.Equal(t, 0, f.sessions.count())
}

func TestDemoLogin(t *testing.T) {
	f := newAuthFixture(true)
	ctx := context.Background()

	_, first, err := f.svc.DemoLogin(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.DemoEmail, first.Email)
	assert.Equal(t, "Demo User", first.Name)

	_, second, err := f.svc.DemoLogin(ctx)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	_, _, err = f.svc.Login(ctx, models.DemoEmail, "demo123456")
	assert.NoError(t, err)
}

func TestDemoLoginDisabled(t *testing.T) {
	f := newAuthFixture(false)
	_, _, err := f.svc.DemoLogin(context.Background())
	assert.ErrorIs(t, err, ErrDemoLoginDisabled)

	off := NewAuthService(newMemUserStore(), newMemSessionStore(), time.Hour, AuthOptions{}, zap.NewNop())
	assert.False(t, off.DemoLoginEnabled(context.Background()))
}

func TestOAuthLogin(t *testing.T) {
	f := newAuthFixture(true)
	ctx := context.Background()

	_, user, err := f.svc.OAuthLogin(ctx, "google", "sub-1", "bia@example.com", "")
	require.NoError(t, err)
	assert.Equal(t, "bia", user.Name)
	assert.Equal(t, "google", user.OAuthProvider)

	_, again, err := f.svc.OAuthLogin(ctx, "google", "sub-1", "bia@example.com", "")
	require.NoError(t, err)
	assert.Equal(t, user.ID, again.ID)

	_, _, err = f.svc.OAuthLogin(ctx, "facebook", "fb-9", "bia@example.com", "Bia")
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestOAuthLoginLinksPasswordAccount(t *testing.T) {
	f := newAuthFixture(true)
	ctx := context.Background()
	registered, err := f.svc.Register(ctx, "ana@example.com", "segredo123", "Ana")
	require.NoError(t, err)

	_, user, err := f.svc.OAuthLogin(ctx, "apple", "apple-1", "ana@example.com", "")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)
}

func TestPasswordResetFlow(t *testing.T) {
	f := newAuthFixture(true)
	ctx := context.Background()
	_, err := f.svc.Register(ctx, "ana@example.com", "segredo123", "Ana")
	require.NoError(t, err)
	_, _, err = f.svc.Login(ctx, "ana@example.com", "segredo123")
	require.NoError(t, err)

	require.NoError(t, f.svc.RequestPasswordReset(ctx, "nobody@example.com"))
	require.NoError(t, f.svc.RequestPasswordReset(ctx, "ana@example.com"))
	token := f.mailer.resetTokens["ana@example.com"]
	require.Len(t, token, 64)

	ok, err := f.svc.ValidatePasswordResetToken(ctx, token)
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, f.svc.ResetPassword(ctx, token, "novasenha123"))
	assert.Equal(t, 0, f.sessions.count(), "reset signs the user out")

	assert.ErrorIs(t, f.svc.ResetPassword(ctx, token, "outrasenha123"), ErrResetTokenUsed)
	assert.ErrorIs(t, f.svc.ResetPassword(ctx, "bogus", "outrasenha123"), ErrInvalidResetToken)

	_, _, err = f.svc.Login(ctx, "ana@example.com", "novasenha123")
	assert.NoError(t, err)
}

func TestCleanupExpired(t *testing.T) {
	f := newAuthFixture(true)
	ctx := context.Background()
	_, _ = f.sessions.CreateSession(ctx, "old", 1, time.Now().Add(-time.Hour))
	_, _ = f.sessions.CreateSession(ctx, "new", 1, time.Now().Add(time.Hour))
	_ = f.users.CreatePasswordResetToken(ctx, "stale", 1, time.Now().Add(-time.Hour))

	require.NoError(t, f.svc.CleanupExpired(ctx))
	assert.Equal(t, 1, f.sessions.count())
	tok, _ := f.users.GetPasswordResetToken(ctx, "stale")
	assert.Nil(t, tok)
}
