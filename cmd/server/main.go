package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/facebook"
	"golang.org/x/oauth2/google"

	"corpoleve/internal/config"
	"corpoleve/internal/database"
	"corpoleve/internal/handlers"
	"corpoleve/internal/logger"
	"corpoleve/internal/repository"
	"corpoleve/internal/security"
	"corpoleve/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		// logger config depends on cfg, so fall back to a default one
		zap.NewExample().Fatal("failed to load configuration", zap.Error(err))
	}

	log, err := logger.New(cfg)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("server stopped with error", zap.Error(err))
		log.Sync()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, log *zap.Logger) error {
	status := handlers.NewStartupStatus(handlers.StepDatabase, handlers.StepMigrations, handlers.StepSeed, handlers.StepServices)

	// The readiness endpoint answers while the app is still initializing
	bootstrap := http.NewServeMux()
	bootstrap.HandleFunc("GET /readyz", status.Handler(log))
	var app atomic.Pointer[http.ServeMux]
	root := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if mux := app.Load(); mux != nil {
			mux.ServeHTTP(w, r)
			return
		}
		bootstrap.ServeHTTP(w, r)
	})

	server := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      handlers.Recover(log)(handlers.Logging(log)(status.RequireReady(log)(root))),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info("server starting", zap.String("addr", server.Addr), zap.String("env", cfg.Env))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	status.SetCurrentStep(handlers.StepDatabase)
	db, err := database.InitializeWithConfig(cfg)
	if err != nil {
		return err
	}
	defer db.Close()
	log.Info("database connection established", zap.String("type", cfg.DatabaseType))
	status.CompleteStep(handlers.StepDatabase)

	status.SetCurrentStep(handlers.StepMigrations)
	if err := db.RunMigrations(ctx, cfg.MigrationsPath, log); err != nil {
		return err
	}
	status.CompleteStep(handlers.StepMigrations)

	status.SetCurrentStep(handlers.StepSeed)
	if err := db.SeedContent(ctx, log); err != nil {
		return err
	}
	status.CompleteStep(handlers.StepSeed)

	status.SetCurrentStep(handlers.StepServices)
	mux, authService, limiter, closeSessions, err := buildApp(ctx, cfg, db, status, log)
	if err != nil {
		return err
	}
	defer closeSessions()
	app.Store(mux)
	status.CompleteStep(handlers.StepServices)
	status.MarkReady()
	log.Info("server ready")

	go limiter.Run(ctx, 5*time.Minute)
	go cleanupExpired(ctx, authService, log)

	select {
	case err, ok := <-serveErr:
		if ok {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// buildApp wires repositories, services and handlers into the API mux
func buildApp(ctx context.Context, cfg *config.Config, db *database.DB, status *handlers.StartupStatus, log *zap.Logger) (*http.ServeMux, *service.AuthService, *security.RateLimiter, func(), error) {
	userRepo := repository.NewUserRepository(db)
	challengeRepo := repository.NewChallengeRepository(db)
	recipeRepo := repository.NewRecipeRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)

	var sessions service.SessionStore = repository.NewSessionRepository(db)
	closeSessions := func() {}
	if cfg.RedisURL != "" {
		redisStore, err := repository.NewRedisSessionStore(ctx, cfg.RedisURL)
		if err != nil {
			return nil, nil, nil, nil, err
		}
		log.Info("using redis session store")
		sessions = redisStore
		closeSessions = func() { redisStore.Close() }
	}

	emailService, err := service.NewEmailService(ctx, cfg.AWSRegion, cfg.SESFrom, cfg.SESName, cfg.AppBaseURL, cfg.EmailDebug, log)
	if err != nil {
		closeSessions()
		return nil, nil, nil, nil, err
	}

	authService := service.NewAuthService(userRepo, sessions, cfg.SessionDuration, service.AuthOptions{
		Mailer:           emailService,
		Demo:             settingsRepo,
		DemoLoginEnabled: cfg.DemoLoginEnabled,
	}, log)
	challengeService := service.NewChallengeService(challengeRepo, recipeRepo, userRepo, emailService, log)
	recipeService := service.NewRecipeService(recipeRepo, repository.NewFavoriteRepository(db), log)
	menuService := service.NewMenuService(repository.NewMenuRepository(db), log)
	accountService := service.NewAccountService(userRepo, sessions, log)

	csrf := security.NewCSRFGenerator(cfg.SessionSecret)
	limiter := security.NewRateLimiter(cfg.RateLimitPerMinute, time.Minute)

	mux := http.NewServeMux()
	handlers.RegisterRoutes(mux, handlers.Handlers{
		Middleware: handlers.NewMiddleware(authService, csrf, limiter, log),
		Auth:       handlers.NewAuthHandler(authService, csrf, oauthProviders(cfg), cfg.OAuthRedirectBaseURL, log),
		Challenge:  handlers.NewChallengeHandler(challengeService, log),
		Recipes:    handlers.NewRecipeHandler(recipeService, log),
		Menu:       handlers.NewMenuHandler(menuService, log),
		Account:    handlers.NewAccountHandler(accountService, log),
		Health:     handlers.Health(db, log),
		Ready:      status.Handler(log),
	})

	return mux, authService, limiter, closeSessions, nil
}

func oauthProviders(cfg *config.Config) map[string]handlers.OAuthProvider {
	return map[string]handlers.OAuthProvider{
		"google": {
			Name:  "google",
			Label: "Google",
			Config: &oauth2.Config{
				ClientID:     cfg.GoogleClientID,
				ClientSecret: cfg.GoogleClientSecret,
				Endpoint:     google.Endpoint,
				Scopes:       []string{"openid", "email", "profile"},
			},
			UserInfoURL: "https://www.googleapis.com/oauth2/v2/userinfo",
		},
		"facebook": {
			Name:  "facebook",
			Label: "Facebook",
			Config: &oauth2.Config{
				ClientID:     cfg.FacebookClientID,
				ClientSecret: cfg.FacebookClientSecret,
				Endpoint:     facebook.Endpoint,
				Scopes:       []string{"email", "public_profile"},
			},
			UserInfoURL: "https://graph.facebook.com/me?fields=id,name,email",
		},
		"apple": {
			Name:  "apple",
			Label: "Apple",
			Config: &oauth2.Config{
				ClientID:     cfg.AppleClientID,
				ClientSecret: cfg.AppleClientSecret,
				Endpoint: oauth2.Endpoint{
					AuthURL:  "https://appleid.apple.com/auth/authorize",
					TokenURL: "https://appleid.apple.com/auth/token",
				},
				Scopes: []string{"name", "email"},
			},
			AuthParams: map[string]string{
				"response_mode": "query",
			},
		},
	}
}

// cleanupExpired periodically removes expired sessions and reset tokens
func cleanupExpired(ctx context.Context, authService *service.AuthService, log *zap.Logger) {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := authService.CleanupExpired(ctx); err != nil {
				log.Error("failed to clean up expired sessions", zap.Error(err))
				continue
			}
			log.Debug("expired sessions cleaned up")
		}
	}
}
