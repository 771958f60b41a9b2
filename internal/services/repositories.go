package services

import (
	"context"
	"io"
	"time"

	"recipe-share-backend/internal/models"
)

// RecipeRepository is the recipe row store
type RecipeRepository interface {
	Create(ctx context.Context, userID int64, f models.RecipeFields) (*models.Recipe, error)
	GetByID(ctx context.Context, id int64) (*models.Recipe, error)
	ListPublic(ctx context.Context, f models.RecipeFilter) ([]*models.Recipe, error)
	ListByUser(ctx context.Context, userID int64) ([]*models.Recipe, error)
	ListFavoritedBy(ctx context.Context, userID int64) ([]*models.Recipe, error)
	Update(ctx context.Context, id int64, f models.RecipeFields) error
	Delete(ctx context.Context, id int64) error
	DeleteByUser(ctx context.Context, userID int64) (int64, error)
}

// ImageRepository is the recipe_id -> filename join table
type ImageRepository interface {
	Create(ctx context.Context, recipeID int64, filename string) (*models.RecipeImage, error)
	ListByRecipe(ctx context.Context, recipeID int64) ([]string, error)
	ListByRecipes(ctx context.Context, recipeIDs []int64) (map[int64][]string, error)
	Exists(ctx context.Context, recipeID int64, filename string) (bool, error)
	Delete(ctx context.Context, recipeID int64, filename string) error
	DeleteByRecipe(ctx context.Context, recipeID int64) error
}

// FavoriteRepository is the (user, recipe) favorites relation
type FavoriteRepository interface {
	Add(ctx context.Context, userID, recipeID int64) error
	Remove(ctx context.Context, userID, recipeID int64) error
}

// CommentRepository stores comments and joins them with their authors
type CommentRepository interface {
	Create(ctx context.Context, recipeID, userID int64, content string) (*models.Comment, error)
	GetByID(ctx context.Context, id int64) (*models.Comment, error)
	ListByRecipe(ctx context.Context, recipeID int64) ([]*models.Comment, error)
	UpdateContent(ctx context.Context, id int64, content string, at time.Time) error
	Delete(ctx context.Context, id int64) error
}

// UserRepository stores user accounts
type UserRepository interface {
	Create(ctx context.Context, user *models.User) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateProfile(ctx context.Context, user *models.User) error
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
	Delete(ctx context.Context, id int64) error
}

// BlobStore holds image files by flat name. Put never overwrites and Delete
// succeeds when the file is already gone.
type BlobStore interface {
	Put(ctx context.Context, name string, r io.Reader) error
	Open(ctx context.Context, name string) (io.ReadCloser, error)
	Exists(ctx context.Context, name string) (bool, error)
	Delete(ctx context.Context, name string) error
}
