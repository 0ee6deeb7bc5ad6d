package handlers

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"corpoleve/internal/models"
	"corpoleve/internal/service"
	"corpoleve/internal/validation"
)

// MenuHandler serves the smart menu questionnaire
type MenuHandler struct {
	menuService *service.MenuService
	log         *zap.Logger
}

// NewMenuHandler creates a new menu handler
func NewMenuHandler(menuService *service.MenuService, log *zap.Logger) *MenuHandler {
	return &MenuHandler{menuService: menuService, log: log}
}

// Options returns the questionnaire choices
func (h *MenuHandler) Options(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, h.log, http.StatusOK, h.menuService.Options())
}

// Generate stores the answers and returns the 7-day menu
func (h *MenuHandler) Generate(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	var req models.MenuRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondWithError(w, h.log, http.StatusBadRequest, ErrInvalidRequestBody, err)
		return
	}

	menu, err := h.menuService.Generate(r.Context(), user.ID, req)
	if err != nil {
		var verr validation.ValidationError
		if errors.As(err, &verr) {
			respondWithError(w, h.log, http.StatusBadRequest, verr.Error(), err)
			return
		}
		respondWithError(w, h.log, http.StatusInternalServerError, ErrInternalServerError, err)
		return
	}
	respondJSON(w, h.log, http.StatusCreated, menu)
}

// Latest returns the most recent generated menu
func (h *MenuHandler) Latest(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	menu, err := h.menuService.Latest(r.Context(), user.ID)
	if err != nil {
		if errors.Is(err, service.ErrMenuNotFound) {
			respondWithError(w, h.log, http.StatusNotFound, err.Error(), err)
			return
		}
		respondWithError(w, h.log, http.StatusInternalServerError, ErrInternalServerError, err)
		return
	}
	respondJSON(w, h.log, http.StatusOK, menu)
}
