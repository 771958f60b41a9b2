package services

import (
	"context"
	"fmt"

	"recipe-share-backend/internal/common"
	"recipe-share-backend/internal/models"
)

// authorizeRecipe loads a recipe and checks that userID owns it.
// A missing recipe is ErrNotFound, someone else's is ErrForbidden.
func authorizeRecipe(ctx context.Context, recipes RecipeRepository, recipeID, userID int64) (*models.Recipe, error) {
	recipe, err := recipes.GetByID(ctx, recipeID)
	if err != nil {
		return nil, err
	}
	if recipe.UserID != userID {
		return nil, fmt.Errorf("recipe %d is not owned by user %d: %w", recipeID, userID, common.ErrForbidden)
	}
	return recipe, nil
}

// enrich attaches image filenames to each recipe in insertion order
func enrich(ctx context.Context, images ImageRepository, recipes []*models.Recipe) error {
	if len(recipes) == 0 {
		return nil
	}

	ids := make([]int64, len(recipes))
	for i, r := range recipes {
		ids[i] = r.ID
	}

	byRecipe, err := images.ListByRecipes(ctx, ids)
	if err != nil {
		return fmt.Errorf("failed to load recipe images: %w", err)
	}

	for _, r := range recipes {
		if names, ok := byRecipe[r.ID]; ok {
			r.Images = names
		} else {
			r.Images = []string{}
		}
	}
	return nil
}
