package services

import (
	"context"
	"fmt"
	"strings"

	"recipe-share-backend/internal/common"
	"recipe-share-backend/internal/models"

	"github.com/rs/zerolog/log"
)

// RecipeService handles recipe-related business logic
type RecipeService struct {
	recipes RecipeRepository
	images  ImageRepository
	assets  *AssetStore
}

// NewRecipeService creates a new recipe service
func NewRecipeService(recipes RecipeRepository, images ImageRepository, assets *AssetStore) *RecipeService {
	return &RecipeService{
		recipes: recipes,
		images:  images,
		assets:  assets,
	}
}

func validateFields(f models.RecipeFields) error {
	var missing []string
	if strings.TrimSpace(f.Title) == "" {
		missing = append(missing, "title")
	}
	if strings.TrimSpace(f.Ingredients) == "" {
		missing = append(missing, "ingredients")
	}
	if strings.TrimSpace(f.Steps) == "" {
		missing = append(missing, "steps")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required fields %s: %w", strings.Join(missing, ", "), common.ErrValidation)
	}
	if f.Duration < 0 {
		return fmt.Errorf("duration must not be negative: %w", common.ErrValidation)
	}
	return nil
}

// List returns public recipes matching the filter
func (s *RecipeService) List(ctx context.Context, f models.RecipeFilter) ([]*models.Recipe, error) {
	recipes, err := s.recipes.ListPublic(ctx, f)
	if err != nil {
		return nil, err
	}
	if err := enrich(ctx, s.images, recipes); err != nil {
		return nil, err
	}
	return recipes, nil
}

// Get returns a recipe regardless of visibility
func (s *RecipeService) Get(ctx context.Context, id int64) (*models.Recipe, error) {
	recipe, err := s.recipes.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := enrich(ctx, s.images, []*models.Recipe{recipe}); err != nil {
		return nil, err
	}
	return recipe, nil
}

// ListOwnedBy returns every recipe of a user, public and private
func (s *RecipeService) ListOwnedBy(ctx context.Context, userID int64) ([]*models.Recipe, error) {
	recipes, err := s.recipes.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := enrich(ctx, s.images, recipes); err != nil {
		return nil, err
	}
	return recipes, nil
}

// Create inserts a recipe and stores its images. If an image cannot be
// stored the recipe and the images committed so far are removed again.
func (s *RecipeService) Create(ctx context.Context, ownerID int64, f models.RecipeFields, files []Upload) (int64, error) {
	if err := validateFields(f); err != nil {
		return 0, err
	}
	if err := validateUploads(files); err != nil {
		return 0, err
	}

	recipe, err := s.recipes.Create(ctx, ownerID, f)
	if err != nil {
		return 0, err
	}

	if _, err := s.assets.addTo(ctx, recipe, files); err != nil {
		s.rollback(ctx, recipe.ID)
		return 0, err
	}

	return recipe.ID, nil
}

func (s *RecipeService) rollback(ctx context.Context, recipeID int64) {
	if err := s.assets.DeleteAllForRecipe(ctx, recipeID); err != nil {
		log.Warn().Err(err).Int64("recipe_id", recipeID).Msg("Failed to remove images of incomplete recipe")
		return
	}
	if err := s.recipes.Delete(ctx, recipeID); err != nil {
		log.Warn().Err(err).Int64("recipe_id", recipeID).Msg("Failed to remove incomplete recipe")
	}
}

// Update replaces every editable field of an owned recipe
func (s *RecipeService) Update(ctx context.Context, id, ownerID int64, f models.RecipeFields) error {
	if _, err := authorizeRecipe(ctx, s.recipes, id, ownerID); err != nil {
		return err
	}
	if err := validateFields(f); err != nil {
		return err
	}
	return s.recipes.Update(ctx, id, f)
}

// Delete removes an owned recipe with all of its images.
// Favorites and comments go with the row.
func (s *RecipeService) Delete(ctx context.Context, id, ownerID int64) error {
	if _, err := authorizeRecipe(ctx, s.recipes, id, ownerID); err != nil {
		return err
	}
	if err := s.assets.DeleteAllForRecipe(ctx, id); err != nil {
		return err
	}
	return s.recipes.Delete(ctx, id)
}
