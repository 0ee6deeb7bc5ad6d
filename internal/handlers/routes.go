package handlers

import "net/http"

// Handlers bundles everything RegisterRoutes mounts
type Handlers struct {
	Middleware *Middleware
	Auth       *AuthHandler
	Challenge  *ChallengeHandler
	Recipes    *RecipeHandler
	Menu       *MenuHandler
	Account    *AccountHandler
	Health     http.HandlerFunc
	Ready      http.HandlerFunc
}

// RegisterRoutes mounts the API on mux
func RegisterRoutes(mux *http.ServeMux, h Handlers) {
	m := h.Middleware
	protected := func(next http.HandlerFunc) http.HandlerFunc {
		return m.RequireAuth(m.CSRFProtect(next))
	}

	// Operations
	mux.HandleFunc("GET /healthz", h.Health)
	mux.HandleFunc("GET /readyz", h.Ready)

	// Public auth routes
	mux.HandleFunc("GET /api/auth/config", h.Auth.Config)
	mux.HandleFunc("POST /api/auth/register", m.RateLimit(h.Auth.Register))
	mux.HandleFunc("POST /api/auth/login", m.RateLimit(h.Auth.Login))
	mux.HandleFunc("POST /api/auth/demo", m.RateLimit(h.Auth.DemoLogin))
	mux.HandleFunc("POST /api/auth/logout", h.Auth.Logout)
	mux.HandleFunc("POST /api/auth/password-reset", m.RateLimit(h.Auth.RequestPasswordReset))
	mux.HandleFunc("GET /api/auth/password-reset/validate", h.Auth.ValidateResetToken)
	mux.HandleFunc("POST /api/auth/password-reset/confirm", m.RateLimit(h.Auth.ResetPassword))
	mux.HandleFunc("GET /auth/{provider}/start", h.Auth.StartOAuth)
	mux.HandleFunc("GET /auth/{provider}/callback", h.Auth.OAuthCallback)

	// Account
	mux.HandleFunc("GET /api/me", m.RequireAuth(h.Auth.Me))
	mux.HandleFunc("PUT /api/me", protected(h.Account.UpdateProfile))
	mux.HandleFunc("DELETE /api/me", protected(h.Account.DeleteAccount))

	// Challenge dashboard
	mux.HandleFunc("GET /api/challenge", m.RequireAuth(h.Challenge.Dashboard))
	mux.HandleFunc("POST /api/challenge/days/{day}/complete", protected(h.Challenge.CompleteDay))
	mux.HandleFunc("POST /api/challenge/advance", protected(h.Challenge.Advance))
	mux.HandleFunc("GET /api/challenge/days/{day}/recipes", m.RequireAuth(h.Challenge.DayRecipes))

	// Recipes and favorites
	mux.HandleFunc("GET /api/recipes", m.RequireAuth(h.Recipes.List))
	mux.HandleFunc("GET /api/recipes/{id}", m.RequireAuth(h.Recipes.Get))
	mux.HandleFunc("POST /api/recipes/{id}/favorite", protected(h.Recipes.ToggleFavorite))
	mux.HandleFunc("GET /api/favorites", m.RequireAuth(h.Recipes.Favorites))

	// Smart menu
	mux.HandleFunc("GET /api/menu/options", m.RequireAuth(h.Menu.Options))
	mux.HandleFunc("POST /api/menu/generate", protected(h.Menu.Generate))
	mux.HandleFunc("GET /api/menu/latest", m.RequireAuth(h.Menu.Latest))
}
