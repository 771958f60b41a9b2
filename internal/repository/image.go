package repository

import (
	"context"
	"fmt"

	"recipe-share-backend/internal/common"
	"recipe-share-backend/internal/models"
)

// ImageRepository handles database operations for recipe images
type ImageRepository struct {
	db DBTX
}

// NewImageRepository creates a new image repository
func NewImageRepository(db DBTX) *ImageRepository {
	return &ImageRepository{db: db}
}

// Create records a stored file against a recipe
func (r *ImageRepository) Create(ctx context.Context, recipeID int64, filename string) (*models.RecipeImage, error) {
	query := `
		INSERT INTO recipe_images (recipe_id, filename)
		VALUES ($1, $2)
		RETURNING id
	`
	image := &models.RecipeImage{RecipeID: recipeID, Filename: filename}
	if err := r.db.QueryRow(ctx, query, recipeID, filename).Scan(&image.ID); err != nil {
		switch pgErrorCode(err) {
		case uniqueViolation:
			return nil, fmt.Errorf("image %s: %w", filename, common.ErrAssetCollision)
		case foreignKeyViolation:
			return nil, fmt.Errorf("recipe not found: %w", common.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to create image: %w", err)
	}
	return image, nil
}

// ListByRecipe returns the filenames of a recipe in insertion order
func (r *ImageRepository) ListByRecipe(ctx context.Context, recipeID int64) ([]string, error) {
	byRecipe, err := r.ListByRecipes(ctx, []int64{recipeID})
	if err != nil {
		return nil, err
	}
	if names, ok := byRecipe[recipeID]; ok {
		return names, nil
	}
	return []string{}, nil
}

// ListByRecipes returns filenames grouped by recipe id in insertion order
func (r *ImageRepository) ListByRecipes(ctx context.Context, recipeIDs []int64) (map[int64][]string, error) {
	result := make(map[int64][]string, len(recipeIDs))
	if len(recipeIDs) == 0 {
		return result, nil
	}

	query := `
		SELECT recipe_id, filename
		FROM recipe_images
		WHERE recipe_id = ANY($1)
		ORDER BY id
	`
	rows, err := r.db.Query(ctx, query, recipeIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to list images: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var recipeID int64
		var filename string
		if err := rows.Scan(&recipeID, &filename); err != nil {
			return nil, fmt.Errorf("failed to scan image: %w", err)
		}
		result[recipeID] = append(result[recipeID], filename)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list images: %w", err)
	}
	return result, nil
}

// Exists reports whether filename is attached to the recipe
func (r *ImageRepository) Exists(ctx context.Context, recipeID int64, filename string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM recipe_images WHERE recipe_id = $1 AND filename = $2)`
	var exists bool
	if err := r.db.QueryRow(ctx, query, recipeID, filename).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check image: %w", err)
	}
	return exists, nil
}

// Delete removes a single image row
func (r *ImageRepository) Delete(ctx context.Context, recipeID int64, filename string) error {
	result, err := r.db.Exec(ctx, `DELETE FROM recipe_images WHERE recipe_id = $1 AND filename = $2`, recipeID, filename)
	if err != nil {
		return fmt.Errorf("failed to delete image: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("image not found: %w", common.ErrNotFound)
	}
	return nil
}

// DeleteByRecipe removes every image row of a recipe
func (r *ImageRepository) DeleteByRecipe(ctx context.Context, recipeID int64) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM recipe_images WHERE recipe_id = $1`, recipeID); err != nil {
		return fmt.Errorf("failed to delete images: %w", err)
	}
	return nil
}
