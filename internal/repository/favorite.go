package repository

import (
	"context"
	"fmt"

	"recipe-share-backend/internal/common"
)

// FavoriteRepository handles database operations for favorites
type FavoriteRepository struct {
	db DBTX
}

// NewFavoriteRepository creates a new favorite repository
func NewFavoriteRepository(db DBTX) *FavoriteRepository {
	return &FavoriteRepository{db: db}
}

// Add marks a recipe as favorited. A second add for the same pair fails with ErrAlreadyExists.
func (r *FavoriteRepository) Add(ctx context.Context, userID, recipeID int64) error {
	_, err := r.db.Exec(ctx, `INSERT INTO favorites (user_id, recipe_id) VALUES ($1, $2)`, userID, recipeID)
	if err != nil {
		switch pgErrorCode(err) {
		case uniqueViolation:
			return fmt.Errorf("recipe already in favorites: %w", common.ErrAlreadyExists)
		case foreignKeyViolation:
			return fmt.Errorf("recipe not found: %w", common.ErrNotFound)
		}
		return fmt.Errorf("failed to add favorite: %w", err)
	}
	return nil
}

// Remove deletes a favorite. Removing an absent favorite is not an error.
func (r *FavoriteRepository) Remove(ctx context.Context, userID, recipeID int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM favorites WHERE user_id = $1 AND recipe_id = $2`, userID, recipeID)
	if err != nil {
		return fmt.Errorf("failed to remove favorite: %w", err)
	}
	return nil
}
