package services

import (
	"context"

	"recipe-share-backend/internal/models"
)

// FavoriteService handles the favorites relation
type FavoriteService struct {
	favorites FavoriteRepository
	recipes   RecipeRepository
	images    ImageRepository
}

// NewFavoriteService creates a new favorite service
func NewFavoriteService(favorites FavoriteRepository, recipes RecipeRepository, images ImageRepository) *FavoriteService {
	return &FavoriteService{
		favorites: favorites,
		recipes:   recipes,
		images:    images,
	}
}

// Add favorites a recipe. A repeated add returns ErrAlreadyExists and leaves one row.
func (s *FavoriteService) Add(ctx context.Context, userID, recipeID int64) error {
	if _, err := s.recipes.GetByID(ctx, recipeID); err != nil {
		return err
	}
	return s.favorites.Add(ctx, userID, recipeID)
}

// Remove un-favorites a recipe; removing an absent favorite succeeds
func (s *FavoriteService) Remove(ctx context.Context, userID, recipeID int64) error {
	return s.favorites.Remove(ctx, userID, recipeID)
}

// List returns the user's favorited recipes enriched with images
func (s *FavoriteService) List(ctx context.Context, userID int64) ([]*models.Recipe, error) {
	recipes, err := s.recipes.ListFavoritedBy(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := enrich(ctx, s.images, recipes); err != nil {
		return nil, err
	}
	return recipes, nil
}
