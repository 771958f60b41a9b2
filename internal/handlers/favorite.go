package handlers

import (
	"net/http"

	"recipe-share-backend/internal/middleware"
	"recipe-share-backend/internal/models"
	"recipe-share-backend/internal/services"

	"github.com/rs/zerolog/log"
)

// FavoriteHandler handles favorites HTTP requests
type FavoriteHandler struct {
	favorites *services.FavoriteService
}

// NewFavoriteHandler creates a new favorite handler
func NewFavoriteHandler(favorites *services.FavoriteService) *FavoriteHandler {
	return &FavoriteHandler{favorites: favorites}
}

// FavoritesResponse wraps the user's favorite recipes
type FavoritesResponse struct {
	Favorites []*models.Recipe `json:"favorites"`
}

// ListFavorites handles GET /api/recipes/favorites
func (h *FavoriteHandler) ListFavorites(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	recipes, err := h.favorites.List(r.Context(), userID)
	if err != nil {
		respondServiceError(w, r, err, "Failed to load favorites")
		return
	}

	respondJSON(w, http.StatusOK, FavoritesResponse{Favorites: recipes})
}

// AddFavorite handles POST /api/recipes/favorites/{id}
func (h *FavoriteHandler) AddFavorite(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	id, err := pathID(r, "id")
	if err != nil {
		respondServiceError(w, r, err, "")
		return
	}

	if err := h.favorites.Add(r.Context(), userID, id); err != nil {
		respondServiceError(w, r, err, "Failed to add favorite")
		return
	}

	log.Info().Int64("user_id", userID).Int64("recipe_id", id).Msg("Favorite added")
	respondJSON(w, http.StatusCreated, MessageResponse{Message: "Recipe added to favorites"})
}

// RemoveFavorite handles DELETE /api/recipes/favorites/{id}
func (h *FavoriteHandler) RemoveFavorite(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	id, err := pathID(r, "id")
	if err != nil {
		respondServiceError(w, r, err, "")
		return
	}

	if err := h.favorites.Remove(r.Context(), userID, id); err != nil {
		respondServiceError(w, r, err, "Failed to remove favorite")
		return
	}

	respondJSON(w, http.StatusOK, MessageResponse{Message: "Recipe removed from favorites"})
}
