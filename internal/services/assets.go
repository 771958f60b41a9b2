package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"recipe-share-backend/internal/common"
	"recipe-share-backend/internal/models"
	"recipe-share-backend/internal/slug"

	"github.com/rs/zerolog/log"
)

// MaxImagesPerUpload caps the files accepted by one recipe upload
const MaxImagesPerUpload = 10

var extPattern = regexp.MustCompile(`^[a-z0-9]{1,10}$`)

// Upload is a single file received from a client
type Upload struct {
	Filename    string
	ContentType string
	Body        io.Reader
}

// validateUpload rejects anything that is not an image
func validateUpload(up Upload) error {
	ct := strings.ToLower(strings.TrimSpace(up.ContentType))
	if !strings.HasPrefix(ct, "image/") {
		return fmt.Errorf("%s (%s): %w", up.Filename, up.ContentType, common.ErrInvalidAsset)
	}
	if up.Body == nil {
		return fmt.Errorf("%s: empty upload: %w", up.Filename, common.ErrInvalidAsset)
	}
	return nil
}

func validateUploads(files []Upload) error {
	if len(files) > MaxImagesPerUpload {
		return fmt.Errorf("at most %d images per upload: %w", MaxImagesPerUpload, common.ErrValidation)
	}
	for _, f := range files {
		if err := validateUpload(f); err != nil {
			return err
		}
	}
	return nil
}

// extensionOf takes the extension from the client filename and falls back
// to the content-type subtype
func extensionOf(up Upload) string {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(up.Filename), "."))
	if extPattern.MatchString(ext) {
		return ext
	}

	ct := strings.ToLower(up.ContentType)
	if i := strings.Index(ct, ";"); i >= 0 {
		ct = ct[:i]
	}
	sub := strings.TrimPrefix(strings.TrimSpace(ct), "image/")
	if i := strings.IndexAny(sub, "+."); i >= 0 {
		sub = sub[:i]
	}
	if extPattern.MatchString(sub) {
		return sub
	}
	return "img"
}

// AssetStore keeps image files and recipe_images rows in step
type AssetStore struct {
	recipes       RecipeRepository
	images        ImageRepository
	blobs         BlobStore
	now           func() time.Time
	disambiguator func(time.Time) string
}

// NewAssetStore creates a new asset store
func NewAssetStore(recipes RecipeRepository, images ImageRepository, blobs BlobStore) *AssetStore {
	return &AssetStore{
		recipes:       recipes,
		images:        images,
		blobs:         blobs,
		now:           time.Now,
		disambiguator: slug.Disambiguator,
	}
}

// WithClock replaces the time source and disambiguator used for filenames
func (a *AssetStore) WithClock(now func() time.Time, disambiguator func(time.Time) string) *AssetStore {
	a.now = now
	a.disambiguator = disambiguator
	return a
}

// AddImages stores files under an owned recipe. Ownership is checked before
// the uploads are validated. Files are committed one by one; on failure the
// names committed so far are returned with the error.
func (a *AssetStore) AddImages(ctx context.Context, recipeID, ownerID int64, files []Upload) ([]string, error) {
	recipe, err := authorizeRecipe(ctx, a.recipes, recipeID, ownerID)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no images uploaded: %w", common.ErrValidation)
	}
	if err := validateUploads(files); err != nil {
		return nil, err
	}
	return a.addTo(ctx, recipe, files)
}

func (a *AssetStore) addTo(ctx context.Context, recipe *models.Recipe, files []Upload) ([]string, error) {
	committed := make([]string, 0, len(files))
	for _, f := range files {
		name, err := a.addOne(ctx, recipe, f)
		if err != nil {
			return committed, err
		}
		committed = append(committed, name)
	}
	return committed, nil
}

// addOne writes the file first, then the row. A failed insert removes the file again.
func (a *AssetStore) addOne(ctx context.Context, recipe *models.Recipe, up Upload) (string, error) {
	name := slug.Filename(recipe.Title, recipe.UserID, extensionOf(up), a.disambiguator(a.now()))

	if err := a.blobs.Put(ctx, name, up.Body); err != nil {
		return "", fmt.Errorf("failed to store image %s: %w", name, err)
	}

	if _, err := a.images.Create(ctx, recipe.ID, name); err != nil {
		if delErr := a.blobs.Delete(ctx, name); delErr != nil {
			log.Warn().Err(delErr).Str("file", name).Int64("recipe_id", recipe.ID).Msg("Failed to remove image after insert failure")
		}
		return "", fmt.Errorf("failed to record image %s: %w", name, err)
	}

	return name, nil
}

// ReplaceImage swaps oldFilename for a new upload on an owned recipe
func (a *AssetStore) ReplaceImage(ctx context.Context, recipeID, ownerID int64, oldFilename string, up Upload) (string, error) {
	recipe, err := authorizeRecipe(ctx, a.recipes, recipeID, ownerID)
	if err != nil {
		return "", err
	}
	if err := validateUpload(up); err != nil {
		return "", err
	}
	if err := a.remove(ctx, recipe.ID, oldFilename); err != nil {
		return "", err
	}
	return a.addOne(ctx, recipe, up)
}

// DeleteImage removes one image of an owned recipe
func (a *AssetStore) DeleteImage(ctx context.Context, recipeID, ownerID int64, filename string) error {
	if _, err := authorizeRecipe(ctx, a.recipes, recipeID, ownerID); err != nil {
		return err
	}
	return a.remove(ctx, recipeID, filename)
}

// remove deletes the file and then the row, so a row never outlives its file
func (a *AssetStore) remove(ctx context.Context, recipeID int64, filename string) error {
	ok, err := a.images.Exists(ctx, recipeID, filename)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("image %s on recipe %d: %w", filename, recipeID, common.ErrNotFound)
	}

	if err := a.blobs.Delete(ctx, filename); err != nil {
		return fmt.Errorf("failed to remove image file %s: %w", filename, err)
	}
	return a.images.Delete(ctx, recipeID, filename)
}

// DeleteAllForRecipe removes every image of a recipe. File removal is
// best-effort; the rows are always deleted.
func (a *AssetStore) DeleteAllForRecipe(ctx context.Context, recipeID int64) error {
	names, err := a.images.ListByRecipe(ctx, recipeID)
	if err != nil {
		return err
	}

	for _, name := range names {
		if err := a.blobs.Delete(ctx, name); err != nil && !errors.Is(err, common.ErrNotFound) {
			log.Warn().Err(err).Str("file", name).Int64("recipe_id", recipeID).Msg("Failed to remove image file, leaving orphan")
		}
	}

	return a.images.DeleteByRecipe(ctx, recipeID)
}
