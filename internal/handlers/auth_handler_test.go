package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"corpoleve/internal/repository"
)

func TestRegisterLoginLogout(t *testing.T) {
	app := newTestApp(t)
	c := app.client(t)

	rec := c.do(http.MethodPost, "/api/auth/register", credentialsRequest{
		Email: "ana@example.com", Password: "segredo123", Name: "Ana",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode[sessionResponse](t, rec)
	assert.Equal(t, "ana@example.com", created.User.Email)
	assert.NotEmpty(t, created.CSRFToken)
	assert.NotContains(t, rec.Body.String(), "password")

	rec = c.do(http.MethodPost, "/api/auth/register", credentialsRequest{
		Email: "ana@example.com", Password: "segredo123", Name: "Ana",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = c.do(http.MethodGet, "/api/me", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Ana", decode[sessionResponse](t, rec).DisplayName)

	rec = c.do(http.MethodPost, "/api/auth/logout", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, http.StatusUnauthorized, c.do(http.MethodGet, "/api/me", nil).Code)

	rec = c.do(http.MethodPost, "/api/auth/login", credentialsRequest{Email: "ana@example.com", Password: "errada123"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = c.do(http.MethodPost, "/api/auth/login", credentialsRequest{Email: "ana@example.com", Password: "segredo123"})
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRegisterValidationErrors(t *testing.T) {
	app := newTestApp(t)
	c := app.client(t)

	rec := c.do(http.MethodPost, "/api/auth/register", credentialsRequest{
		Email: "ana@example.com", Password: "curta", Name: "Ana",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "at least 8 characters")
}

func TestDemoLoginToggle(t *testing.T) {
	app := newTestApp(t)
	c := app.client(t)

	rec := c.do(http.MethodGet, "/api/auth/config", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	cfg := decode[authConfigResponse](t, rec)
	assert.True(t, cfg.DemoLoginEnabled)
	assert.Empty(t, cfg.Providers)

	require.NoError(t, repository.NewSettingsRepository(app.db).SetDemoLoginEnabled(context.Background(), false))
	assert.Equal(t, http.StatusForbidden, c.do(http.MethodPost, "/api/auth/demo", nil).Code)
}

func TestPasswordResetEndpoints(t *testing.T) {
	app := newTestApp(t)
	c := app.client(t)

	rec := c.do(http.MethodPost, "/api/auth/password-reset", map[string]string{"email": "nobody@example.com"})
	assert.Equal(t, http.StatusAccepted, rec.Code)

	rec = c.do(http.MethodGet, "/api/auth/password-reset/validate?token=bogus", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"valid":false}`, rec.Body.String())

	rec = c.do(http.MethodPost, "/api/auth/password-reset/confirm", map[string]string{"token": "bogus", "password": "novasenha123"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
