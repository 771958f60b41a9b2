package handlers

import (
	"net/http"

	"recipe-share-backend/internal/middleware"
	"recipe-share-backend/internal/services"

	"github.com/rs/zerolog/log"
)

// CommentHandler handles comment HTTP requests
type CommentHandler struct {
	comments *services.CommentService
}

// NewCommentHandler creates a new comment handler
func NewCommentHandler(comments *services.CommentService) *CommentHandler {
	return &CommentHandler{comments: comments}
}

// CommentRequest carries the text of a comment
type CommentRequest struct {
	Content string `json:"content"`
}

// ListComments handles GET /api/comments/{id} where id is a recipe
func (h *CommentHandler) ListComments(w http.ResponseWriter, r *http.Request) {
	recipeID, err := pathID(r, "id")
	if err != nil {
		respondServiceError(w, r, err, "")
		return
	}

	comments, err := h.comments.List(r.Context(), recipeID)
	if err != nil {
		respondServiceError(w, r, err, "Failed to load comments")
		return
	}

	respondJSON(w, http.StatusOK, comments)
}

// CreateComment handles POST /api/comments/{id} where id is a recipe
func (h *CommentHandler) CreateComment(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	recipeID, err := pathID(r, "id")
	if err != nil {
		respondServiceError(w, r, err, "")
		return
	}

	var req CommentRequest
	if err := decodeJSON(r, &req); err != nil {
		respondServiceError(w, r, err, "")
		return
	}

	comment, err := h.comments.Create(r.Context(), recipeID, userID, req.Content)
	if err != nil {
		respondServiceError(w, r, err, "Failed to create comment")
		return
	}

	log.Info().Int64("user_id", userID).Int64("recipe_id", recipeID).Int64("comment_id", comment.ID).Msg("Comment created")
	respondJSON(w, http.StatusCreated, comment)
}

// UpdateComment handles PUT /api/comments/{id} where id is a comment
func (h *CommentHandler) UpdateComment(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	commentID, err := pathID(r, "id")
	if err != nil {
		respondServiceError(w, r, err, "")
		return
	}

	var req CommentRequest
	if err := decodeJSON(r, &req); err != nil {
		respondServiceError(w, r, err, "")
		return
	}

	comment, err := h.comments.Update(r.Context(), commentID, userID, req.Content)
	if err != nil {
		respondServiceError(w, r, err, "Failed to update comment")
		return
	}

	respondJSON(w, http.StatusOK, comment)
}

// DeleteComment handles DELETE /api/comments/{id} where id is a comment
func (h *CommentHandler) DeleteComment(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	commentID, err := pathID(r, "id")
	if err != nil {
		respondServiceError(w, r, err, "")
		return
	}

	if err := h.comments.Delete(r.Context(), commentID, userID); err != nil {
		respondServiceError(w, r, err, "Failed to delete comment")
		return
	}

	respondJSON(w, http.StatusOK, MessageResponse{Message: "Comment deleted"})
}
