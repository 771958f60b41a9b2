package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"recipe-share-backend/internal/common"
	"recipe-share-backend/internal/middleware"
	"recipe-share-backend/internal/models"
	"recipe-share-backend/internal/services"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

// RecipeHandler handles recipe and recipe image HTTP requests
type RecipeHandler struct {
	recipes   *services.RecipeService
	assets    *services.AssetStore
	maxUpload int64
}

// NewRecipeHandler creates a new recipe handler
func NewRecipeHandler(recipes *services.RecipeService, assets *services.AssetStore, maxUpload int64) *RecipeHandler {
	return &RecipeHandler{
		recipes:   recipes,
		assets:    assets,
		maxUpload: maxUpload,
	}
}

// CreateRecipeResponse is returned after a recipe is created
type CreateRecipeResponse struct {
	RecipeID int64 `json:"recipe_id"`
}

// ImagesResponse is returned after images are added
type ImagesResponse struct {
	Message   string   `json:"message,omitempty"`
	Error     string   `json:"error,omitempty"`
	NewImages []string `json:"newImages"`
}

// ReplaceImageResponse is returned after an image is replaced
type ReplaceImageResponse struct {
	Message      string `json:"message"`
	NewImageName string `json:"newImageName"`
}

// ListRecipes handles GET /api/recipes
func (h *RecipeHandler) ListRecipes(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := models.RecipeFilter{
		Search:     q.Get("search"),
		Category:   q.Get("category"),
		Difficulty: q.Get("difficulty"),
		Duration:   q.Get("duration"),
	}

	recipes, err := h.recipes.List(r.Context(), filter)
	if err != nil {
		respondServiceError(w, r, err, "Failed to load recipes")
		return
	}

	respondJSON(w, http.StatusOK, recipes)
}

// GetRecipe handles GET /api/recipes/{id}
func (h *RecipeHandler) GetRecipe(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondServiceError(w, r, err, "")
		return
	}

	recipe, err := h.recipes.Get(r.Context(), id)
	if err != nil {
		respondServiceError(w, r, err, "Failed to load recipe")
		return
	}

	respondJSON(w, http.StatusOK, recipe)
}

// CreateRecipe handles POST /api/recipes
func (h *RecipeHandler) CreateRecipe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	if err := parseMultipart(w, r, h.maxUpload); err != nil {
		respondServiceError(w, r, err, "")
		return
	}

	fields, err := recipeFieldsFromForm(r)
	if err != nil {
		respondServiceError(w, r, err, "")
		return
	}

	opened, err := formUploads(r, "images", services.MaxImagesPerUpload)
	if err != nil {
		respondServiceError(w, r, err, "Failed to read uploaded images")
		return
	}
	defer opened.Close()

	id, err := h.recipes.Create(ctx, userID, fields, opened.uploads)
	if err != nil {
		respondServiceError(w, r, err, "Failed to create recipe")
		return
	}

	log.Info().
		Int64("user_id", userID).
		Int64("recipe_id", id).
		Int("images", len(opened.uploads)).
		Msg("Recipe created")

	respondJSON(w, http.StatusCreated, CreateRecipeResponse{RecipeID: id})
}

// recipeFieldsFromForm reads the recipe fields of a multipart form.
// is_public is true unless the literal "false" is sent.
func recipeFieldsFromForm(r *http.Request) (models.RecipeFields, error) {
	f := models.RecipeFields{
		Title:       r.FormValue("title"),
		Ingredients: r.FormValue("ingredients"),
		Steps:       r.FormValue("steps"),
		IsPublic:    strings.TrimSpace(r.FormValue("is_public")) != "false",
		Category:    r.FormValue("category"),
		Difficulty:  r.FormValue("difficulty"),
	}

	if raw := strings.TrimSpace(r.FormValue("duration")); raw != "" {
		d, err := strconv.Atoi(raw)
		if err != nil {
			return f, fmt.Errorf("duration must be a number of minutes: %w", common.ErrValidation)
		}
		f.Duration = d
	}
	return f, nil
}

// UpdateRecipe handles PUT /api/recipes/{id}
func (h *RecipeHandler) UpdateRecipe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	id, err := pathID(r, "id")
	if err != nil {
		respondServiceError(w, r, err, "")
		return
	}

	var fields models.RecipeFields
	if err := decodeJSON(r, &fields); err != nil {
		respondServiceError(w, r, err, "")
		return
	}

	if err := h.recipes.Update(ctx, id, userID, fields); err != nil {
		respondServiceError(w, r, err, "Failed to update recipe")
		return
	}

	log.Info().Int64("user_id", userID).Int64("recipe_id", id).Msg("Recipe updated")
	respondJSON(w, http.StatusOK, MessageResponse{Message: "Recipe updated"})
}

// DeleteRecipe handles DELETE /api/recipes/{id}
func (h *RecipeHandler) DeleteRecipe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	id, err := pathID(r, "id")
	if err != nil {
		respondServiceError(w, r, err, "")
		return
	}

	if err := h.recipes.Delete(ctx, id, userID); err != nil {
		respondServiceError(w, r, err, "Failed to delete recipe")
		return
	}

	log.Info().Int64("user_id", userID).Int64("recipe_id", id).Msg("Recipe deleted")
	respondJSON(w, http.StatusOK, MessageResponse{Message: "Recipe deleted"})
}

// AddImages handles POST /api/recipes/{id}/images
func (h *RecipeHandler) AddImages(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	id, err := pathID(r, "id")
	if err != nil {
		respondServiceError(w, r, err, "")
		return
	}
	if err := parseMultipart(w, r, h.maxUpload); err != nil {
		respondServiceError(w, r, err, "")
		return
	}

	// count and content checks run in the asset store after the ownership check
	opened, err := formUploads(r, "images", 0)
	if err != nil {
		respondServiceError(w, r, err, "Failed to read uploaded images")
		return
	}
	defer opened.Close()

	names, err := h.assets.AddImages(ctx, id, userID, opened.uploads)
	if err != nil {
		if len(names) > 0 {
			// Partial batch: report what was committed alongside the failure
			status := statusFor(err)
			log.Error().Err(err).Int64("recipe_id", id).Strs("committed", names).Msg("Image upload partially failed")
			respondJSON(w, status, ImagesResponse{Error: "Failed to store all images", NewImages: names})
			return
		}
		respondServiceError(w, r, err, "Failed to store images")
		return
	}

	log.Info().Int64("user_id", userID).Int64("recipe_id", id).Int("images", len(names)).Msg("Images added")
	respondJSON(w, http.StatusOK, ImagesResponse{Message: "Images added", NewImages: names})
}

// ReplaceImage handles PUT /api/recipes/{id}/images/{name}
func (h *RecipeHandler) ReplaceImage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	id, err := pathID(r, "id")
	if err != nil {
		respondServiceError(w, r, err, "")
		return
	}
	oldName := chi.URLParam(r, "name")

	if err := parseMultipart(w, r, h.maxUpload); err != nil {
		respondServiceError(w, r, err, "")
		return
	}

	upload, opened, err := singleUpload(r, "newImage")
	if err != nil {
		respondServiceError(w, r, err, "Failed to read uploaded image")
		return
	}
	defer opened.Close()

	if upload == nil {
		upload = &services.Upload{}
	}

	name, err := h.assets.ReplaceImage(ctx, id, userID, oldName, *upload)
	if err != nil {
		respondServiceError(w, r, err, "Failed to replace image")
		return
	}

	log.Info().Int64("recipe_id", id).Str("old", oldName).Str("new", name).Msg("Image replaced")
	respondJSON(w, http.StatusOK, ReplaceImageResponse{Message: "Image replaced", NewImageName: name})
}

// DeleteImage handles DELETE /api/recipes/{id}/images/{name}
func (h *RecipeHandler) DeleteImage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	id, err := pathID(r, "id")
	if err != nil {
		respondServiceError(w, r, err, "")
		return
	}
	name := chi.URLParam(r, "name")

	if err := h.assets.DeleteImage(ctx, id, userID, name); err != nil {
		respondServiceError(w, r, err, "Failed to delete image")
		return
	}

	log.Info().Int64("recipe_id", id).Str("file", name).Msg("Image deleted")
	respondJSON(w, http.StatusOK, MessageResponse{Message: "Image deleted"})
}
