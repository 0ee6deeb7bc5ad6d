package handlers

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"corpoleve/internal/security"
	"corpoleve/internal/service"
	"corpoleve/internal/validation"
)

// AccountHandler lets users manage their own account
type AccountHandler struct {
	accountService *service.AccountService
	log            *zap.Logger
}

// NewAccountHandler creates a new account handler
func NewAccountHandler(accountService *service.AccountService, log *zap.Logger) *AccountHandler {
	return &AccountHandler{accountService: accountService, log: log}
}

// UpdateProfile changes the display name
func (h *AccountHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	var req struct {
		Name string `json:"name"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		respondWithError(w, h.log, http.StatusBadRequest, ErrInvalidRequestBody, err)
		return
	}

	updated, err := h.accountService.UpdateName(r.Context(), user.ID, req.Name)
	if err != nil {
		var verr validation.ValidationError
		if errors.As(err, &verr) {
			respondWithError(w, h.log, http.StatusBadRequest, verr.Message, err)
			return
		}
		respondWithError(w, h.log, http.StatusInternalServerError, ErrInternalServerError, err)
		return
	}
	respondJSON(w, h.log, http.StatusOK, updated)
}

// DeleteAccount removes the user and all of their data
func (h *AccountHandler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	if err := h.accountService.DeleteAccount(r.Context(), user.ID); err != nil {
		respondWithError(w, h.log, http.StatusInternalServerError, ErrInternalServerError, err)
		return
	}
	http.SetCookie(w, security.CreateDeleteCookie(r, SessionCookieName))
	w.WriteHeader(http.StatusNoContent)
}
