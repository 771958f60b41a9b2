package repository

import (
	"context"
	"errors"
	"fmt"

	"recipe-share-backend/internal/common"
	"recipe-share-backend/internal/models"

	"github.com/jackc/pgx/v5"
)

// RecipeRepository handles database operations for recipes
type RecipeRepository struct {
	db DBTX
}

// NewRecipeRepository creates a new recipe repository
func NewRecipeRepository(db DBTX) *RecipeRepository {
	return &RecipeRepository{db: db}
}

// Create inserts a recipe owned by userID and returns it
func (r *RecipeRepository) Create(ctx context.Context, userID int64, f models.RecipeFields) (*models.Recipe, error) {
	query := `
		INSERT INTO recipes (user_id, title, ingredients, steps, is_public, category, duration, difficulty)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + recipeColumns
	row := r.db.QueryRow(ctx, query,
		userID, f.Title, f.Ingredients, f.Steps, f.IsPublic, f.Category, f.Duration, f.Difficulty,
	)
	recipe, err := scanRecipe(row)
	if err != nil {
		if pgErrorCode(err) == foreignKeyViolation {
			return nil, fmt.Errorf("owner does not exist: %w", common.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to create recipe: %w", err)
	}
	return recipe, nil
}

// GetByID retrieves a recipe by ID regardless of visibility
func (r *RecipeRepository) GetByID(ctx context.Context, id int64) (*models.Recipe, error) {
	query := `SELECT ` + recipeColumns + ` FROM recipes WHERE id = $1`
	recipe, err := scanRecipe(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("recipe not found: %w", common.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get recipe: %w", err)
	}
	return recipe, nil
}

// ListPublic returns public recipes matching the filter, newest first
func (r *RecipeRepository) ListPublic(ctx context.Context, f models.RecipeFilter) ([]*models.Recipe, error) {
	query, args := buildPublicQuery(f)
	return r.list(ctx, query, args...)
}

// ListByUser returns every recipe of a user, public or not, newest first
func (r *RecipeRepository) ListByUser(ctx context.Context, userID int64) ([]*models.Recipe, error) {
	query := `SELECT ` + recipeColumns + ` FROM recipes WHERE user_id = $1 ORDER BY created_at DESC, id DESC`
	return r.list(ctx, query, userID)
}

// ListFavoritedBy returns the recipes a user has favorited
func (r *RecipeRepository) ListFavoritedBy(ctx context.Context, userID int64) ([]*models.Recipe, error) {
	query := `
		SELECT r.id, r.user_id, r.title, r.ingredients, r.steps, r.is_public,
		       r.category, r.duration, r.difficulty, r.created_at
		FROM recipes r
		JOIN favorites f ON f.recipe_id = r.id
		WHERE f.user_id = $1
		ORDER BY r.created_at DESC, r.id DESC
	`
	return r.list(ctx, query, userID)
}

func (r *RecipeRepository) list(ctx context.Context, query string, args ...any) ([]*models.Recipe, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list recipes: %w", err)
	}
	defer rows.Close()

	recipes := []*models.Recipe{}
	for rows.Next() {
		recipe, err := scanRecipe(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan recipe: %w", err)
		}
		recipes = append(recipes, recipe)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list recipes: %w", err)
	}
	return recipes, nil
}

// Update overwrites every editable field of a recipe
func (r *RecipeRepository) Update(ctx context.Context, id int64, f models.RecipeFields) error {
	query := `
		UPDATE recipes
		SET title = $1, ingredients = $2, steps = $3, is_public = $4,
		    category = $5, duration = $6, difficulty = $7
		WHERE id = $8
	`
	result, err := r.db.Exec(ctx, query,
		f.Title, f.Ingredients, f.Steps, f.IsPublic, f.Category, f.Duration, f.Difficulty, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update recipe: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("recipe not found: %w", common.ErrNotFound)
	}
	return nil
}

// Delete removes a recipe row. Image rows must already be gone.
func (r *RecipeRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.Exec(ctx, `DELETE FROM recipes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete recipe: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("recipe not found: %w", common.ErrNotFound)
	}
	return nil
}

// DeleteByUser removes every recipe of a user and returns how many went
func (r *RecipeRepository) DeleteByUser(ctx context.Context, userID int64) (int64, error) {
	result, err := r.db.Exec(ctx, `DELETE FROM recipes WHERE user_id = $1`, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete recipes: %w", err)
	}
	return result.RowsAffected(), nil
}

func scanRecipe(row pgx.Row) (*models.Recipe, error) {
	var recipe models.Recipe
	err := row.Scan(
		&recipe.ID, &recipe.UserID, &recipe.Title, &recipe.Ingredients, &recipe.Steps,
		&recipe.IsPublic, &recipe.Category, &recipe.Duration, &recipe.Difficulty, &recipe.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	recipe.Images = []string{}
	return &recipe, nil
}
