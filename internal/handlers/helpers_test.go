package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"corpoleve/internal/database"
	"corpoleve/internal/repository"
	"corpoleve/internal/security"
	"corpoleve/internal/service"
)

type testApp struct {
	db        *database.DB
	mux       *http.ServeMux
	challenge *repository.ChallengeRepository
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping database test in short mode")
	}

	log := zap.NewNop()
	db, err := database.Initialize(filepath.Join(t.TempDir(), "handlers.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	ctx := context.Background()
	require.NoError(t, db.RunMigrations(ctx, "../../migrations", log))
	require.NoError(t, db.SeedContent(ctx, log))

	userRepo := repository.NewUserRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	challengeRepo := repository.NewChallengeRepository(db)
	recipeRepo := repository.NewRecipeRepository(db)

	authService := service.NewAuthService(userRepo, sessionRepo, time.Hour, service.AuthOptions{
		Demo:             repository.NewSettingsRepository(db),
		DemoLoginEnabled: true,
	}, log)
	csrf := security.NewCSRFGenerator("test-secret")

	mux := http.NewServeMux()
	RegisterRoutes(mux, Handlers{
		Middleware: NewMiddleware(authService, csrf, security.NewRateLimiter(100, time.Minute), log),
		Auth:       NewAuthHandler(authService, csrf, nil, "", log),
		Challenge:  NewChallengeHandler(service.NewChallengeService(challengeRepo, recipeRepo, userRepo, nil, log), log),
		Recipes:    NewRecipeHandler(service.NewRecipeService(recipeRepo, repository.NewFavoriteRepository(db), log), log),
		Menu:       NewMenuHandler(service.NewMenuService(repository.NewMenuRepository(db), log), log),
		Account:    NewAccountHandler(service.NewAccountService(userRepo, sessionRepo, log), log),
		Health:     Health(db, log),
		Ready:      NewStartupStatus().Handler(log),
	})

	return &testApp{db: db, mux: mux, challenge: challengeRepo}
}

// client carries a session cookie and CSRF token between requests
type client struct {
	t       *testing.T
	app     *testApp
	session string
	csrf    string
}

func (a *testApp) client(t *testing.T) *client {
	return &client{t: t, app: a}
}

func (c *client) do(method, path string, body any) *httptest.ResponseRecorder {
	c.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(c.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if c.session != "" {
		req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: c.session})
	}
	if c.csrf != "" {
		req.Header.Set(CSRFHeaderName, c.csrf)
	}

	rec := httptest.NewRecorder()
	c.app.mux.ServeHTTP(rec, req)

	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == SessionCookieName {
			c.session = cookie.Value
		}
	}
	return rec
}

// login signs in through the demo account and keeps the CSRF token
func (c *client) login() {
	c.t.Helper()
	rec := c.do(http.MethodPost, "/api/auth/demo", nil)
	require.Equal(c.t, http.StatusOK, rec.Code, rec.Body.String())

	var resp sessionResponse
	require.NoError(c.t, json.Unmarshal(rec.Body.Bytes(), &resp))
	c.csrf = resp.CSRFToken
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}
