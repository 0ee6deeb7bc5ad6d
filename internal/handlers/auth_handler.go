package handlers

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"corpoleve/internal/models"
	"corpoleve/internal/security"
	"corpoleve/internal/service"
	"corpoleve/internal/validation"
)

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	authService          *service.AuthService
	csrf                 *security.CSRFGenerator
	oauthProviders       map[string]OAuthProvider
	oauthRedirectBaseURL string
	log                  *zap.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *service.AuthService, csrf *security.CSRFGenerator, oauthProviders map[string]OAuthProvider, oauthRedirectBaseURL string, log *zap.Logger) *AuthHandler {
	return &AuthHandler{
		authService:          authService,
		csrf:                 csrf,
		oauthProviders:       oauthProviders,
		oauthRedirectBaseURL: oauthRedirectBaseURL,
		log:                  log,
	}
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name,omitempty"`
}

type sessionResponse struct {
	User        *models.User `json:"user"`
	DisplayName string       `json:"displayName"`
	CSRFToken   string       `json:"csrfToken"`
}

func (h *AuthHandler) startSession(w http.ResponseWriter, r *http.Request, session *models.Session, user *models.User, status int) {
	token, err := h.csrf.GenerateToken(session.ID)
	if err != nil {
		respondWithError(w, h.log, http.StatusInternalServerError, ErrInternalServerError, err)
		return
	}
	http.SetCookie(w, security.CreateSessionCookie(r, SessionCookieName, session.ID, session.ExpiresAt))
	respondJSON(w, h.log, status, sessionResponse{User: user, DisplayName: user.DisplayName(), CSRFToken: token})
}

// Register creates an account and signs it in
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondWithError(w, h.log, http.StatusBadRequest, ErrInvalidRequestBody, err)
		return
	}

	if _, err := h.authService.Register(r.Context(), req.Email, req.Password, req.Name); err != nil {
		var verr validation.ValidationError
		switch {
		case errors.As(err, &verr):
			respondWithError(w, h.log, http.StatusBadRequest, verr.Message, err)
		case errors.Is(err, service.ErrEmailTaken):
			respondWithError(w, h.log, http.StatusConflict, "An account with this email already exists", err)
		default:
			respondWithError(w, h.log, http.StatusInternalServerError, ErrInternalServerError, err)
		}
		return
	}

	session, user, err := h.authService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		respondWithError(w, h.log, http.StatusInternalServerError, ErrInternalServerError, err)
		return
	}
	h.startSession(w, r, session, user, http.StatusCreated)
}

// Login handles email and password sign in
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondWithError(w, h.log, http.StatusBadRequest, ErrInvalidRequestBody, err)
		return
	}

	session, user, err := h.authService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			respondWithError(w, h.log, http.StatusUnauthorized, "Invalid email or password", err)
			return
		}
		respondWithError(w, h.log, http.StatusInternalServerError, ErrInternalServerError, err)
		return
	}
	h.startSession(w, r, session, user, http.StatusOK)
}

// DemoLogin signs in the shared demo account
func (h *AuthHandler) DemoLogin(w http.ResponseWriter, r *http.Request) {
	session, user, err := h.authService.DemoLogin(r.Context())
	if err != nil {
		if errors.Is(err, service.ErrDemoLoginDisabled) {
			respondWithError(w, h.log, http.StatusForbidden, "Demo login is disabled", err)
			return
		}
		respondWithError(w, h.log, http.StatusInternalServerError, ErrInternalServerError, err)
		return
	}
	h.startSession(w, r, session, user, http.StatusOK)
}

// Logout handles logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(SessionCookieName); err == nil {
		if err := h.authService.Logout(r.Context(), cookie.Value); err != nil {
			h.log.Warn("failed to delete session on logout", zap.Error(err))
		}
	}
	http.SetCookie(w, security.CreateDeleteCookie(r, SessionCookieName))
	w.WriteHeader(http.StatusNoContent)
}

// Me returns the signed-in user with a fresh CSRF token
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	sessionID, _ := r.Context().Value(SessionContextKey).(string)
	token, err := h.csrf.GenerateToken(sessionID)
	if err != nil {
		respondWithError(w, h.log, http.StatusInternalServerError, ErrInternalServerError, err)
		return
	}
	respondJSON(w, h.log, http.StatusOK, sessionResponse{User: user, DisplayName: user.DisplayName(), CSRFToken: token})
}

type authConfigResponse struct {
	Providers        []OAuthProviderView `json:"providers"`
	DemoLoginEnabled bool                `json:"demoLoginEnabled"`
}

// Config lists the sign in options available on the login page
func (h *AuthHandler) Config(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, h.log, http.StatusOK, authConfigResponse{
		Providers:        h.oauthProviderViews(),
		DemoLoginEnabled: h.authService.DemoLoginEnabled(r.Context()),
	})
}

// RequestPasswordReset always answers 202 so the response does not reveal
// whether an account exists
func (h *AuthHandler) RequestPasswordReset(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		respondWithError(w, h.log, http.StatusBadRequest, ErrInvalidRequestBody, err)
		return
	}

	if err := h.authService.RequestPasswordReset(r.Context(), req.Email); err != nil {
		h.log.Error("password reset request failed", zap.Error(err))
	}
	respondJSON(w, h.log, http.StatusAccepted, map[string]string{
		"message": "If an account exists for this email, a reset link is on its way",
	})
}

// ValidateResetToken reports whether a reset link is still usable
func (h *AuthHandler) ValidateResetToken(w http.ResponseWriter, r *http.Request) {
	valid, err := h.authService.ValidatePasswordResetToken(r.Context(), r.URL.Query().Get("token"))
	if err != nil {
		respondWithError(w, h.log, http.StatusInternalServerError, ErrInternalServerError, err)
		return
	}
	respondJSON(w, h.log, http.StatusOK, map[string]bool{"valid": valid})
}

// ResetPassword sets a new password from a reset link
func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Token    string `json:"token"`
		Password string `json:"password"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		respondWithError(w, h.log, http.StatusBadRequest, ErrInvalidRequestBody, err)
		return
	}

	err := h.authService.ResetPassword(r.Context(), req.Token, req.Password)
	var verr validation.ValidationError
	switch {
	case err == nil:
		w.WriteHeader(http.StatusNoContent)
	case errors.As(err, &verr):
		respondWithError(w, h.log, http.StatusBadRequest, verr.Message, err)
	case errors.Is(err, service.ErrInvalidResetToken), errors.Is(err, service.ErrResetTokenUsed):
		respondWithError(w, h.log, http.StatusBadRequest, err.Error(), err)
	default:
		respondWithError(w, h.log, http.StatusInternalServerError, ErrInternalServerError, err)
	}
}
