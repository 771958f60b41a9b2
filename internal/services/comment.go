package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"recipe-share-backend/internal/common"
	"recipe-share-backend/internal/models"
)

// CommentService handles comments on recipes
type CommentService struct {
	comments CommentRepository
	recipes  RecipeRepository
	now      func() time.Time
}

// NewCommentService creates a new comment service
func NewCommentService(comments CommentRepository, recipes RecipeRepository) *CommentService {
	return &CommentService{
		comments: comments,
		recipes:  recipes,
		now:      time.Now,
	}
}

// WithClock replaces the time source used for updated_at
func (s *CommentService) WithClock(now func() time.Time) *CommentService {
	s.now = now
	return s
}

func normalizeContent(content string) (string, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return "", fmt.Errorf("comment must not be empty: %w", common.ErrValidation)
	}
	return content, nil
}

// List returns the comments of a recipe, newest first
func (s *CommentService) List(ctx context.Context, recipeID int64) ([]*models.Comment, error) {
	return s.comments.ListByRecipe(ctx, recipeID)
}

// Create adds a comment to an existing recipe
func (s *CommentService) Create(ctx context.Context, recipeID, userID int64, content string) (*models.Comment, error) {
	content, err := normalizeContent(content)
	if err != nil {
		return nil, err
	}
	if _, err := s.recipes.GetByID(ctx, recipeID); err != nil {
		return nil, err
	}
	return s.comments.Create(ctx, recipeID, userID, content)
}

// Update changes the text of a comment written by userID
func (s *CommentService) Update(ctx context.Context, commentID, userID int64, content string) (*models.Comment, error) {
	content, err := normalizeContent(content)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(ctx, commentID, userID); err != nil {
		return nil, err
	}
	if err := s.comments.UpdateContent(ctx, commentID, content, s.now()); err != nil {
		return nil, err
	}
	return s.comments.GetByID(ctx, commentID)
}

// Delete removes a comment written by userID
func (s *CommentService) Delete(ctx context.Context, commentID, userID int64) error {
	if err := s.authorize(ctx, commentID, userID); err != nil {
		return err
	}
	return s.comments.Delete(ctx, commentID)
}

func (s *CommentService) authorize(ctx context.Context, commentID, userID int64) error {
	comment, err := s.comments.GetByID(ctx, commentID)
	if err != nil {
		return err
	}
	if comment.UserID != userID {
		return fmt.Errorf("comment %d is not written by user %d: %w", commentID, userID, common.ErrForbidden)
	}
	return nil
}
