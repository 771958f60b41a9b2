package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"recipe-share-backend/internal/common"
	"recipe-share-backend/internal/models"

	"github.com/jackc/pgx/v5"
)

const commentSelect = `
	SELECT c.id, c.recipe_id, c.user_id, c.content, c.created_at, c.updated_at,
	       u.first_name, u.last_name, u.image_url
	FROM comments c
	JOIN users u ON u.id = c.user_id
`

// CommentRepository handles database operations for comments
type CommentRepository struct {
	db DBTX
}

// NewCommentRepository creates a new comment repository
func NewCommentRepository(db DBTX) *CommentRepository {
	return &CommentRepository{db: db}
}

// Create inserts a comment and returns it joined with the author
func (r *CommentRepository) Create(ctx context.Context, recipeID, userID int64, content string) (*models.Comment, error) {
	var id int64
	err := r.db.QueryRow(ctx,
		`INSERT INTO comments (recipe_id, user_id, content) VALUES ($1, $2, $3) RETURNING id`,
		recipeID, userID, content,
	).Scan(&id)
	if err != nil {
		if pgErrorCode(err) == foreignKeyViolation {
			return nil, fmt.Errorf("recipe not found: %w", common.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}
	return r.GetByID(ctx, id)
}

// GetByID retrieves a comment joined with its author
func (r *CommentRepository) GetByID(ctx context.Context, id int64) (*models.Comment, error) {
	comment, err := scanComment(r.db.QueryRow(ctx, commentSelect+` WHERE c.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("comment not found: %w", common.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get comment: %w", err)
	}
	return comment, nil
}

// ListByRecipe returns the comments of a recipe, newest first
func (r *CommentRepository) ListByRecipe(ctx context.Context, recipeID int64) ([]*models.Comment, error) {
	rows, err := r.db.Query(ctx, commentSelect+` WHERE c.recipe_id = $1 ORDER BY c.created_at DESC, c.id DESC`, recipeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	defer rows.Close()

	comments := []*models.Comment{}
	for rows.Next() {
		comment, err := scanComment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan comment: %w", err)
		}
		comments = append(comments, comment)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	return comments, nil
}

// UpdateContent replaces the text of a comment and stamps updated_at
func (r *CommentRepository) UpdateContent(ctx context.Context, id int64, content string, at time.Time) error {
	result, err := r.db.Exec(ctx, `UPDATE comments SET content = $1, updated_at = $2 WHERE id = $3`, content, at, id)
	if err != nil {
		return fmt.Errorf("failed to update comment: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("comment not found: %w", common.ErrNotFound)
	}
	return nil
}

// Delete removes a comment
func (r *CommentRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.Exec(ctx, `DELETE FROM comments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("comment not found: %w", common.ErrNotFound)
	}
	return nil
}

func scanComment(row pgx.Row) (*models.Comment, error) {
	var c models.Comment
	err := row.Scan(
		&c.ID, &c.RecipeID, &c.UserID, &c.Content, &c.CreatedAt, &c.UpdatedAt,
		&c.FirstName, &c.LastName, &c.ImageURL,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}
