package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"recipe-share-backend/internal/common"
	"recipe-share-backend/internal/models"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 8

// TokenIssuer signs bearer tokens for a user
type TokenIssuer interface {
	Issue(userID int64, email string) (string, error)
}

// RegisterInput carries the registration form
type RegisterInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
}

// ProfileInput carries the profile form. Every field is required.
type ProfileInput struct {
	FirstName string
	LastName  string
	Email     string
}

// UserService handles accounts: registration, login, profile and deletion
type UserService struct {
	users    UserRepository
	recipes  RecipeRepository
	assets   *AssetStore
	profiles BlobStore
	tokens   TokenIssuer
	newName  func(ext string) string
}

// NewUserService creates a new user service
func NewUserService(users UserRepository, recipes RecipeRepository, assets *AssetStore, profiles BlobStore, tokens TokenIssuer) *UserService {
	return &UserService{
		users:    users,
		recipes:  recipes,
		assets:   assets,
		profiles: profiles,
		tokens:   tokens,
		newName: func(ext string) string {
			return fmt.Sprintf("profile-%s.%s", uuid.NewString(), ext)
		},
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates an account with an optional profile image
func (s *UserService) Register(ctx context.Context, in RegisterInput, image *Upload) (*models.User, error) {
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	in.Email = normalizeEmail(in.Email)
	if in.FirstName == "" || in.LastName == "" || in.Email == "" || in.Password == "" {
		return nil, fmt.Errorf("firstName, lastName, email and password are required: %w", common.ErrValidation)
	}
	if image != nil {
		if err := validateUpload(*image); err != nil {
			return nil, err
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Email:        in.Email,
		PasswordHash: string(hash),
	}

	if image != nil {
		name, err := s.storeProfileImage(ctx, *image)
		if err != nil {
			return nil, err
		}
		user.ImageURL = &name
	}

	if _, err := s.users.Create(ctx, user); err != nil {
		if user.ImageURL != nil {
			s.removeProfileImage(ctx, *user.ImageURL)
		}
		return nil, err
	}

	return user, nil
}

// Login checks credentials and returns a signed token with the user
func (s *UserService) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	user, err := s.users.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return "", nil, fmt.Errorf("invalid credentials: %w", common.ErrUnauthenticated)
		}
		return "", nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, fmt.Errorf("invalid credentials: %w", common.ErrUnauthenticated)
	}

	token, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return "", nil, fmt.Errorf("failed to issue token: %w", err)
	}
	return token, user, nil
}

// Me returns the user's own profile
func (s *UserService) Me(ctx context.Context, userID int64) (*models.User, error) {
	return s.users.GetByID(ctx, userID)
}

// UpdateProfile replaces name and email and, if given, the profile image
func (s *UserService) UpdateProfile(ctx context.Context, userID int64, in ProfileInput, image *Upload) (*models.User, error) {
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	in.Email = normalizeEmail(in.Email)
	if in.FirstName == "" || in.LastName == "" || in.Email == "" {
		return nil, fmt.Errorf("firstName, lastName and email are required: %w", common.ErrValidation)
	}
	if image != nil {
		if err := validateUpload(*image); err != nil {
			return nil, err
		}
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	previous := user.ImageURL

	user.FirstName = in.FirstName
	user.LastName = in.LastName
	user.Email = in.Email

	var stored string
	if image != nil {
		if stored, err = s.storeProfileImage(ctx, *image); err != nil {
			return nil, err
		}
		user.ImageURL = &stored
	}

	if err := s.users.UpdateProfile(ctx, user); err != nil {
		if stored != "" {
			s.removeProfileImage(ctx, stored)
		}
		return nil, err
	}

	if stored != "" && previous != nil {
		s.removeProfileImage(ctx, *previous)
	}
	return user, nil
}

// ChangePassword replaces the password after checking the current one
func (s *UserService) ChangePassword(ctx context.Context, userID int64, current, next string) error {
	if current == "" || next == "" {
		return fmt.Errorf("current and new password are required: %w", common.ErrValidation)
	}
	if len(next) < minPasswordLength {
		return fmt.Errorf("new password must have at least %d characters: %w", minPasswordLength, common.ErrValidation)
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(current)); err != nil {
		return fmt.Errorf("current password is wrong: %w", common.ErrUnauthenticated)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(next), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	return s.users.UpdatePassword(ctx, userID, string(hash))
}

// DeleteAccount removes the user's images, then recipes, then the user row.
// Favorites and comments go with the user row.
func (s *UserService) DeleteAccount(ctx context.Context, userID int64) error {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	recipes, err := s.recipes.ListByUser(ctx, userID)
	if err != nil {
		return err
	}
	for _, r := range recipes {
		if err := s.assets.DeleteAllForRecipe(ctx, r.ID); err != nil {
			return fmt.Errorf("failed to delete images of recipe %d: %w", r.ID, err)
		}
	}

	if _, err := s.recipes.DeleteByUser(ctx, userID); err != nil {
		return err
	}
	if err := s.users.Delete(ctx, userID); err != nil {
		return err
	}

	if user.ImageURL != nil {
		s.removeProfileImage(ctx, *user.ImageURL)
	}
	return nil
}

func (s *UserService) storeProfileImage(ctx context.Context, up Upload) (string, error) {
	name := s.newName(extensionOf(up))
	if err := s.profiles.Put(ctx, name, up.Body); err != nil {
		return "", fmt.Errorf("failed to store profile image: %w", err)
	}
	return name, nil
}

func (s *UserService) removeProfileImage(ctx context.Context, name string) {
	if err := s.profiles.Delete(ctx, name); err != nil {
		log.Warn().Err(err).Str("file", name).Msg("Failed to remove profile image")
	}
}
