package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"recipe-share-backend/internal/common"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse represents a plain acknowledgement
type MessageResponse struct {
	Message string `json:"message"`
}

// respondError sends an error response
func respondError(w http.ResponseWriter, message string, statusCode int) {
	respondJSON(w, statusCode, ErrorResponse{Error: message})
}

// respondJSON sends v as a JSON body
func respondJSON(w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("Failed to encode response")
	}
}

// statusFor maps domain errors to HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, common.ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, common.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, common.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, common.ErrValidation), errors.Is(err, common.ErrInvalidAsset):
		return http.StatusBadRequest
	case errors.Is(err, common.ErrAlreadyExists), errors.Is(err, common.ErrAssetCollision):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// messageFor gives the client-facing text for a domain error. The wrapped
// detail stays in the log.
func messageFor(err error) string {
	switch {
	case errors.Is(err, common.ErrUnauthenticated):
		return "Invalid credentials"
	case errors.Is(err, common.ErrForbidden):
		return "Access denied"
	case errors.Is(err, common.ErrNotFound):
		return "Not found"
	case errors.Is(err, common.ErrInvalidAsset):
		return "Only image files are allowed"
	case errors.Is(err, common.ErrValidation):
		return "Invalid or missing fields"
	case errors.Is(err, common.ErrAssetCollision):
		return "Image name already in use"
	case errors.Is(err, common.ErrAlreadyExists):
		return "Already exists"
	default:
		return "Request failed"
	}
}

// respondServiceError logs err and writes the mapped status. Internal
// failures get fallback as their message so storage details stay private.
func respondServiceError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		log.Error().
			Err(err).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Msg(fallback)
		respondError(w, fallback, status)
		return
	}

	log.Debug().Err(err).Int("status", status).Str("path", r.URL.Path).Msg("Request rejected")
	respondError(w, messageFor(err), status)
}

// pathID parses a positive integer URL parameter
func pathID(r *http.Request, key string) (int64, error) {
	raw := chi.URLParam(r, key)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s %q: %w", key, raw, common.ErrValidation)
	}
	return id, nil
}

// decodeJSON reads a JSON body into v
func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("invalid request body: %w", common.ErrValidation)
	}
	return nil
}
