package handlers

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"corpoleve/internal/service"
)

// RecipeHandler serves the recipe catalog and favorites
type RecipeHandler struct {
	recipeService *service.RecipeService
	log           *zap.Logger
}

// NewRecipeHandler creates a new recipe handler
func NewRecipeHandler(recipeService *service.RecipeService, log *zap.Logger) *RecipeHandler {
	return &RecipeHandler{recipeService: recipeService, log: log}
}

// List returns recipes, optionally filtered by ?category=
func (h *RecipeHandler) List(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	recipes, err := h.recipeService.List(r.Context(), user.ID, r.URL.Query().Get("category"))
	if err != nil {
		if errors.Is(err, service.ErrUnknownCategory) {
			respondWithError(w, h.log, http.StatusBadRequest, err.Error(), err)
			return
		}
		respondWithError(w, h.log, http.StatusInternalServerError, ErrInternalServerError, err)
		return
	}
	respondJSON(w, h.log, http.StatusOK, recipes)
}

// Get returns one recipe
func (h *RecipeHandler) Get(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	recipe, err := h.recipeService.Get(r.Context(), user.ID, r.PathValue("id"))
	if err != nil {
		h.respondRecipeError(w, err)
		return
	}
	respondJSON(w, h.log, http.StatusOK, recipe)
}

// Favorites returns the user's favorite recipes
func (h *RecipeHandler) Favorites(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	recipes, err := h.recipeService.Favorites(r.Context(), user.ID)
	if err != nil {
		respondWithError(w, h.log, http.StatusInternalServerError, ErrInternalServerError, err)
		return
	}
	respondJSON(w, h.log, http.StatusOK, recipes)
}

// ToggleFavorite adds or removes a recipe from the user's favorites
func (h *RecipeHandler) ToggleFavorite(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	favorite, err := h.recipeService.ToggleFavorite(r.Context(), user.ID, r.PathValue("id"))
	if err != nil {
		h.respondRecipeError(w, err)
		return
	}
	respondJSON(w, h.log, http.StatusOK, map[string]bool{"isFavorite": favorite})
}

func (h *RecipeHandler) respondRecipeError(w http.ResponseWriter, err error) {
	if errors.Is(err, service.ErrRecipeNotFound) {
		respondWithError(w, h.log, http.StatusNotFound, "Recipe not found", err)
		return
	}
	respondWithError(w, h.log, http.StatusInternalServerError, ErrInternalServerError, err)
}
