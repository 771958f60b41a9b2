package services

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"recipe-share-backend/internal/auth"
	"recipe-share-backend/internal/models"
	"recipe-share-backend/internal/storage"
	"recipe-share-backend/internal/testutil"

	"github.com/stretchr/testify/require"
)

type fixture struct {
	db       *testutil.MemoryDB
	clock    *testutil.StubClock
	dis      *testutil.StubDisambiguator
	uploads  *storage.FileSystemStore
	profiles *storage.FileSystemStore
	verifier *auth.Verifier

	assets    *AssetStore
	recipes   *RecipeService
	favorites *FavoriteService
	comments  *CommentService
	users     *UserService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	uploads, err := storage.NewFileSystemStore(filepath.Join(t.TempDir(), "uploads"))
	require.NoError(t, err)
	profiles, err := storage.NewFileSystemStore(filepath.Join(t.TempDir(), "profile_pics"))
	require.NoError(t, err)

	clock := testutil.FixedClock()
	dis := testutil.NewStubDisambiguator()
	db := testutil.NewMemoryDB(clock)
	verifier := auth.NewVerifier(auth.Config{Secret: "test-secret", TTL: time.Hour})

	assets := NewAssetStore(db.Recipes(), db.Images(), uploads).WithClock(clock.Now, dis.Next)

	return &fixture{
		db:        db,
		clock:     clock,
		dis:       dis,
		uploads:   uploads,
		profiles:  profiles,
		verifier:  verifier,
		assets:    assets,
		recipes:   NewRecipeService(db.Recipes(), db.Images(), assets),
		favorites: NewFavoriteService(db.Favorites(), db.Recipes(), db.Images()),
		comments:  NewCommentService(db.Comments(), db.Recipes()).WithClock(clock.Now),
		users:     NewUserService(db.Users(), db.Recipes(), assets, profiles, verifier),
	}
}

// user inserts a user row directly and returns its id
func (f *fixture) user(t *testing.T, email string) int64 {
	t.Helper()
	id, err := f.db.Users().Create(context.Background(), &models.User{
		FirstName:    "Anna",
		LastName:     "Koch",
		Email:        email,
		PasswordHash: "unused",
	})
	require.NoError(t, err)
	return id
}

// recipe creates a recipe through the service with n images
func (f *fixture) recipe(t *testing.T, ownerID int64, title string, public bool, n int) *models.Recipe {
	t.Helper()
	files := make([]Upload, n)
	for i := range files {
		files[i] = jpeg("photo.jpg")
	}
	id, err := f.recipes.Create(context.Background(), ownerID, fields(title, public), files)
	require.NoError(t, err)
	r, err := f.recipes.Get(context.Background(), id)
	require.NoError(t, err)
	return r
}

func fields(title string, public bool) models.RecipeFields {
	return models.RecipeFields{
		Title:       title,
		Ingredients: "Sahne, Zucker, Eier",
		Steps:       "Mischen und backen",
		IsPublic:    public,
		Category:    "Dessert",
		Duration:    45,
		Difficulty:  "Mittel",
	}
}

func jpeg(name string) Upload {
	return Upload{Filename: name, ContentType: "image/jpeg", Body: strings.NewReader("jpeg:" + name)}
}

func fileExists(t *testing.T, store *storage.FileSystemStore, name string) bool {
	t.Helper()
	_, err := os.Stat(filepath.Join(store.Root(), name))
	return err == nil
}

func fileCount(t *testing.T, store *storage.FileSystemStore) int {
	t.Helper()
	entries, err := os.ReadDir(store.Root())
	require.NoError(t, err)
	return len(entries)
}
