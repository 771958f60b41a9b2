package handlers

import (
	"net/http"

	"recipe-share-backend/internal/middleware"
	"recipe-share-backend/internal/models"
	"recipe-share-backend/internal/services"

	"github.com/rs/zerolog/log"
)

// UserHandler handles account HTTP requests
type UserHandler struct {
	users     *services.UserService
	recipes   *services.RecipeService
	maxUpload int64
}

// NewUserHandler creates a new user handler
func NewUserHandler(users *services.UserService, recipes *services.RecipeService, maxUpload int64) *UserHandler {
	return &UserHandler{
		users:     users,
		recipes:   recipes,
		maxUpload: maxUpload,
	}
}

// RegisterRequest is the JSON form of a registration
type RegisterRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

// RegisterResponse is returned after registration
type RegisterResponse struct {
	Message string `json:"message"`
	UserID  int64  `json:"userId"`
}

// LoginRequest carries login credentials
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse carries the issued token and the user
type LoginResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// ProfileResponse is returned after a profile update
type ProfileResponse struct {
	Message string       `json:"message"`
	User    *models.User `json:"user"`
}

// RecipesResponse wraps the user's own recipes
type RecipesResponse struct {
	Recipes []*models.Recipe `json:"recipes"`
}

// ChangePasswordRequest carries the current and new password
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// profileForm reads name and email fields from a multipart form or a JSON body,
// plus the optional image part of a multipart form
func (h *UserHandler) profileForm(w http.ResponseWriter, r *http.Request) (RegisterRequest, *services.Upload, *openedUploads, error) {
	var req RegisterRequest
	if !isMultipart(r) {
		err := decodeJSON(r, &req)
		return req, nil, nil, err
	}

	if err := parseMultipart(w, r, h.maxUpload); err != nil {
		return req, nil, nil, err
	}
	req = RegisterRequest{
		FirstName: r.FormValue("firstName"),
		LastName:  r.FormValue("lastName"),
		Email:     r.FormValue("email"),
		Password:  r.FormValue("password"),
	}

	image, opened, err := singleUpload(r, "image")
	if err != nil {
		return req, nil, nil, err
	}
	return req, image, opened, nil
}

// Register handles POST /api/users/register
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	req, image, opened, err := h.profileForm(w, r)
	if err != nil {
		respondServiceError(w, r, err, "Failed to read registration")
		return
	}
	defer opened.Close()

	user, err := h.users.Register(r.Context(), services.RegisterInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
	}, image)
	if err != nil {
		respondServiceError(w, r, err, "Failed to register user")
		return
	}

	log.Info().Int64("user_id", user.ID).Msg("User registered")
	respondJSON(w, http.StatusCreated, RegisterResponse{Message: "User registered", UserID: user.ID})
}

// Login handles POST /api/users/login
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		respondServiceError(w, r, err, "")
		return
	}

	token, user, err := h.users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		respondServiceError(w, r, err, "Failed to log in")
		return
	}

	log.Info().Int64("user_id", user.ID).Msg("User logged in")
	respondJSON(w, http.StatusOK, LoginResponse{Token: token, User: user})
}

// Logout handles GET /api/users/logout. Tokens are stateless; the client drops its copy.
func (h *UserHandler) Logout(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, MessageResponse{Message: "Logged out"})
}

// Me handles GET /api/users/me
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, err := h.users.Me(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		respondServiceError(w, r, err, "Failed to load user")
		return
	}
	respondJSON(w, http.StatusOK, user)
}

// MyRecipes handles GET /api/users/my-recipes
func (h *UserHandler) MyRecipes(w http.ResponseWriter, r *http.Request) {
	recipes, err := h.recipes.ListOwnedBy(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		respondServiceError(w, r, err, "Failed to load recipes")
		return
	}
	respondJSON(w, http.StatusOK, RecipesResponse{Recipes: recipes})
}

// UpdateProfile handles PUT /api/users/update-profile
func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	req, image, opened, err := h.profileForm(w, r)
	if err != nil {
		respondServiceError(w, r, err, "Failed to read profile")
		return
	}
	defer opened.Close()

	user, err := h.users.UpdateProfile(r.Context(), userID, services.ProfileInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
	}, image)
	if err != nil {
		respondServiceError(w, r, err, "Failed to update profile")
		return
	}

	log.Info().Int64("user_id", userID).Msg("Profile updated")
	respondJSON(w, http.StatusOK, ProfileResponse{Message: "Profile updated", User: user})
}

// ChangePassword handles PUT /api/users/change-password
func (h *UserHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var req ChangePasswordRequest
	if err := decodeJSON(r, &req); err != nil {
		respondServiceError(w, r, err, "")
		return
	}

	if err := h.users.ChangePassword(r.Context(), userID, req.CurrentPassword, req.NewPassword); err != nil {
		respondServiceError(w, r, err, "Failed to change password")
		return
	}

	log.Info().Int64("user_id", userID).Msg("Password changed")
	respondJSON(w, http.StatusOK, MessageResponse{Message: "Password changed"})
}

// DeleteAccount handles DELETE /api/users/delete-account
func (h *UserHandler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	if err := h.users.DeleteAccount(r.Context(), userID); err != nil {
		respondServiceError(w, r, err, "Failed to delete account")
		return
	}

	log.Info().Int64("user_id", userID).Msg("Account deleted")
	respondJSON(w, http.StatusOK, MessageResponse{Message: "Account deleted"})
}
