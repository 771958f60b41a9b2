package testutil

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"recipe-share-backend/internal/common"
	"recipe-share-backend/internal/models"
	"recipe-share-backend/internal/repository"
)

// errRestrict mirrors an ON DELETE RESTRICT violation
var errRestrict = errors.New("foreign key violation: referenced rows still exist")

// MemoryDB is an in-memory stand-in for the Postgres schema. It enforces the
// same unique keys, RESTRICT and CASCADE rules as the migrations.
// Use the accessor methods to get repository views over the shared state.
type MemoryDB struct {
	mu     sync.Mutex
	clock  *StubClock
	nextID int64

	users     map[int64]*models.User
	recipes   map[int64]*models.Recipe
	images    []*models.RecipeImage
	favorites map[models.Favorite]struct{}
	comments  map[int64]*models.Comment

	// ImageInsertErr, when set, fails every image insert.
	ImageInsertErr error
}

// NewMemoryDB creates an empty database stamped by clock
func NewMemoryDB(clock *StubClock) *MemoryDB {
	return &MemoryDB{
		clock:     clock,
		users:     make(map[int64]*models.User),
		recipes:   make(map[int64]*models.Recipe),
		favorites: make(map[models.Favorite]struct{}),
		comments:  make(map[int64]*models.Comment),
	}
}

func (db *MemoryDB) id() int64 {
	db.nextID++
	return db.nextID
}

func (db *MemoryDB) Users() *MemoryUsers         { return &MemoryUsers{db} }
func (db *MemoryDB) Recipes() *MemoryRecipes     { return &MemoryRecipes{db} }
func (db *MemoryDB) Images() *MemoryImages       { return &MemoryImages{db} }
func (db *MemoryDB) Favorites() *MemoryFavorites { return &MemoryFavorites{db} }
func (db *MemoryDB) Comments() *MemoryComments   { return &MemoryComments{db} }

// Counts returns the number of user, recipe and image rows
func (db *MemoryDB) Counts() (users, recipes, images int) {
	db.mu.Lock()
	defer db.mu.Unlock()
	return len(db.users), len(db.recipes), len(db.images)
}

// HasFavorite reports whether the favorite row exists
func (db *MemoryDB) HasFavorite(userID, recipeID int64) bool {
	db.mu.Lock()
	defer db.mu.Unlock()
	_, ok := db.favorites[models.Favorite{UserID: userID, RecipeID: recipeID}]
	return ok
}

// CommentCount returns the number of comment rows
func (db *MemoryDB) CommentCount() int {
	db.mu.Lock()
	defer db.mu.Unlock()
	return len(db.comments)
}

func (db *MemoryDB) imagesOf(recipeID int64) []string {
	names := []string{}
	for _, img := range db.images {
		if img.RecipeID == recipeID {
			names = append(names, img.Filename)
		}
	}
	return names
}

func (db *MemoryDB) cascadeRecipe(recipeID int64) {
	for fav := range db.favorites {
		if fav.RecipeID == recipeID {
			delete(db.favorites, fav)
		}
	}
	for id, c := range db.comments {
		if c.RecipeID == recipeID {
			delete(db.comments, id)
		}
	}
}

// MemoryUsers implements the user repository
type MemoryUsers struct{ db *MemoryDB }

func (r *MemoryUsers) Create(_ context.Context, user *models.User) (int64, error) {
	db := r.db
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, u := range db.users {
		if u.Email == user.Email {
			return 0, fmt.Errorf("email already registered: %w", common.ErrAlreadyExists)
		}
	}
	user.ID = db.id()
	user.CreatedAt = db.clock.Now()
	stored := *user
	db.users[user.ID] = &stored
	return user.ID, nil
}

func (r *MemoryUsers) GetByID(_ context.Context, id int64) (*models.User, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	u, ok := r.db.users[id]
	if !ok {
		return nil, fmt.Errorf("user not found: %w", common.ErrNotFound)
	}
	cp := *u
	return &cp, nil
}

func (r *MemoryUsers) GetByEmail(_ context.Context, email string) (*models.User, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, u := range r.db.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("user not found: %w", common.ErrNotFound)
}

func (r *MemoryUsers) UpdateProfile(_ context.Context, user *models.User) error {
	db := r.db
	db.mu.Lock()
	defer db.mu.Unlock()

	stored, ok := db.users[user.ID]
	if !ok {
		return fmt.Errorf("user not found: %w", common.ErrNotFound)
	}
	for _, u := range db.users {
		if u.ID != user.ID && u.Email == user.Email {
			return fmt.Errorf("email already registered: %w", common.ErrAlreadyExists)
		}
	}
	stored.FirstName = user.FirstName
	stored.LastName = user.LastName
	stored.Email = user.Email
	stored.ImageURL = user.ImageURL
	return nil
}

func (r *MemoryUsers) UpdatePassword(_ context.Context, id int64, passwordHash string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	u, ok := r.db.users[id]
	if !ok {
		return fmt.Errorf("user not found: %w", common.ErrNotFound)
	}
	u.PasswordHash = passwordHash
	return nil
}

func (r *MemoryUsers) Delete(_ context.Context, id int64) error {
	db := r.db
	db.mu.Lock()
	defer db.mu.Unlock()

	if _, ok := db.users[id]; !ok {
		return fmt.Errorf("user not found: %w", common.ErrNotFound)
	}
	for _, rec := range db.recipes {
		if rec.UserID == id {
			return fmt.Errorf("failed to delete user: %w", errRestrict)
		}
	}
	for fav := range db.favorites {
		if fav.UserID == id {
			delete(db.favorites, fav)
		}
	}
	for cid, c := range db.comments {
		if c.UserID == id {
			delete(db.comments, cid)
		}
	}
	delete(db.users, id)
	return nil
}

// MemoryRecipes implements the recipe repository
type MemoryRecipes struct{ db *MemoryDB }

func (r *MemoryRecipes) Create(_ context.Context, userID int64, f models.RecipeFields) (*models.Recipe, error) {
	db := r.db
	db.mu.Lock()
	defer db.mu.Unlock()

	if _, ok := db.users[userID]; !ok {
		return nil, fmt.Errorf("owner does not exist: %w", common.ErrNotFound)
	}
	rec := &models.Recipe{
		ID:          db.id(),
		UserID:      userID,
		Title:       f.Title,
		Ingredients: f.Ingredients,
		Steps:       f.Steps,
		IsPublic:    f.IsPublic,
		Category:    f.Category,
		Duration:    f.Duration,
		Difficulty:  f.Difficulty,
		CreatedAt:   db.clock.Now(),
	}
	db.recipes[rec.ID] = rec
	return copyRecipe(rec), nil
}

func (r *MemoryRecipes) GetByID(_ context.Context, id int64) (*models.Recipe, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	rec, ok := r.db.recipes[id]
	if !ok {
		return nil, fmt.Errorf("recipe not found: %w", common.ErrNotFound)
	}
	return copyRecipe(rec), nil
}

func (r *MemoryRecipes) ListPublic(_ context.Context, f models.RecipeFilter) ([]*models.Recipe, error) {
	return r.list(func(rec *models.Recipe) bool { return rec.IsPublic && matches(rec, f) }), nil
}

func (r *MemoryRecipes) ListByUser(_ context.Context, userID int64) ([]*models.Recipe, error) {
	return r.list(func(rec *models.Recipe) bool { return rec.UserID == userID }), nil
}

func (r *MemoryRecipes) ListFavoritedBy(_ context.Context, userID int64) ([]*models.Recipe, error) {
	favs := r.db
	return r.list(func(rec *models.Recipe) bool {
		_, ok := favs.favorites[models.Favorite{UserID: userID, RecipeID: rec.ID}]
		return ok
	}), nil
}

func (r *MemoryRecipes) list(keep func(*models.Recipe) bool) []*models.Recipe {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	out := []*models.Recipe{}
	for _, rec := range r.db.recipes {
		if keep(rec) {
			out = append(out, copyRecipe(rec))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out
}

func (r *MemoryRecipes) Update(_ context.Context, id int64, f models.RecipeFields) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	rec, ok := r.db.recipes[id]
	if !ok {
		return fmt.Errorf("recipe not found: %w", common.ErrNotFound)
	}
	rec.Title = f.Title
	rec.Ingredients = f.Ingredients
	rec.Steps = f.Steps
	rec.IsPublic = f.IsPublic
	rec.Category = f.Category
	rec.Duration = f.Duration
	rec.Difficulty = f.Difficulty
	return nil
}

func (r *MemoryRecipes) Delete(_ context.Context, id int64) error {
	db := r.db
	db.mu.Lock()
	defer db.mu.Unlock()

	if _, ok := db.recipes[id]; !ok {
		return fmt.Errorf("recipe not found: %w", common.ErrNotFound)
	}
	if len(db.imagesOf(id)) > 0 {
		return fmt.Errorf("failed to delete recipe: %w", errRestrict)
	}
	db.cascadeRecipe(id)
	delete(db.recipes, id)
	return nil
}

func (r *MemoryRecipes) DeleteByUser(_ context.Context, userID int64) (int64, error) {
	db := r.db
	db.mu.Lock()
	defer db.mu.Unlock()

	var ids []int64
	for id, rec := range db.recipes {
		if rec.UserID == userID {
			if len(db.imagesOf(id)) > 0 {
				return 0, fmt.Errorf("failed to delete recipes: %w", errRestrict)
			}
			ids = append(ids, id)
		}
	}
	for _, id := range ids {
		db.cascadeRecipe(id)
		delete(db.recipes, id)
	}
	return int64(len(ids)), nil
}

func copyRecipe(rec *models.Recipe) *models.Recipe {
	cp := *rec
	cp.Images = []string{}
	return &cp
}

func matches(rec *models.Recipe, f models.RecipeFilter) bool {
	if s := strings.ToLower(strings.TrimSpace(f.Search)); s != "" {
		if !strings.Contains(strings.ToLower(rec.Title), s) &&
			!strings.Contains(strings.ToLower(rec.Ingredients), s) &&
			!strings.Contains(strings.ToLower(rec.Steps), s) {
			return false
		}
	}
	if c := strings.TrimSpace(f.Category); c != "" && rec.Category != c {
		return false
	}
	if d := strings.TrimSpace(f.Difficulty); d != "" && rec.Difficulty != d {
		return false
	}
	switch repository.NormalizeDuration(f.Duration) {
	case models.DurationShort:
		return rec.Duration < 15
	case models.DurationMedium:
		return rec.Duration >= 15 && rec.Duration <= 30
	case models.DurationLong:
		return rec.Duration > 30
	}
	return true
}

// MemoryImages implements the recipe image repository
type MemoryImages struct{ db *MemoryDB }

func (r *MemoryImages) Create(_ context.Context, recipeID int64, filename string) (*models.RecipeImage, error) {
	db := r.db
	db.mu.Lock()
	defer db.mu.Unlock()

	if db.ImageInsertErr != nil {
		return nil, db.ImageInsertErr
	}
	if _, ok := db.recipes[recipeID]; !ok {
		return nil, fmt.Errorf("recipe not found: %w", common.ErrNotFound)
	}
	for _, img := range db.images {
		if img.Filename == filename {
			return nil, fmt.Errorf("image %s: %w", filename, common.ErrAssetCollision)
		}
	}
	img := &models.RecipeImage{ID: db.id(), RecipeID: recipeID, Filename: filename}
	db.images = append(db.images, img)
	cp := *img
	return &cp, nil
}

func (r *MemoryImages) ListByRecipe(_ context.Context, recipeID int64) ([]string, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	return r.db.imagesOf(recipeID), nil
}

func (r *MemoryImages) ListByRecipes(_ context.Context, recipeIDs []int64) (map[int64][]string, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	out := make(map[int64][]string, len(recipeIDs))
	for _, id := range recipeIDs {
		if names := r.db.imagesOf(id); len(names) > 0 {
			out[id] = names
		}
	}
	return out, nil
}

func (r *MemoryImages) Exists(_ context.Context, recipeID int64, filename string) (bool, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, img := range r.db.images {
		if img.RecipeID == recipeID && img.Filename == filename {
			return true, nil
		}
	}
	return false, nil
}

func (r *MemoryImages) Delete(_ context.Context, recipeID int64, filename string) error {
	db := r.db
	db.mu.Lock()
	defer db.mu.Unlock()
	for i, img := range db.images {
		if img.RecipeID == recipeID && img.Filename == filename {
			db.images = append(db.images[:i], db.images[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("image not found: %w", common.ErrNotFound)
}

func (r *MemoryImages) DeleteByRecipe(_ context.Context, recipeID int64) error {
	db := r.db
	db.mu.Lock()
	defer db.mu.Unlock()
	kept := db.images[:0]
	for _, img := range db.images {
		if img.RecipeID != recipeID {
			kept = append(kept, img)
		}
	}
	db.images = kept
	return nil
}

// MemoryFavorites implements the favorites repository
type MemoryFavorites struct{ db *MemoryDB }

func (r *MemoryFavorites) Add(_ context.Context, userID, recipeID int64) error {
	db := r.db
	db.mu.Lock()
	defer db.mu.Unlock()

	if _, ok := db.recipes[recipeID]; !ok {
		return fmt.Errorf("recipe not found: %w", common.ErrNotFound)
	}
	if _, ok := db.users[userID]; !ok {
		return fmt.Errorf("user not found: %w", common.ErrNotFound)
	}
	key := models.Favorite{UserID: userID, RecipeID: recipeID}
	if _, ok := db.favorites[key]; ok {
		return fmt.Errorf("recipe already in favorites: %w", common.ErrAlreadyExists)
	}
	db.favorites[key] = struct{}{}
	return nil
}

func (r *MemoryFavorites) Remove(_ context.Context, userID, recipeID int64) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	delete(r.db.favorites, models.Favorite{UserID: userID, RecipeID: recipeID})
	return nil
}

// MemoryComments implements the comment repository
type MemoryComments struct{ db *MemoryDB }

func (r *MemoryComments) Create(ctx context.Context, recipeID, userID int64, content string) (*models.Comment, error) {
	db := r.db
	db.mu.Lock()
	if _, ok := db.recipes[recipeID]; !ok {
		db.mu.Unlock()
		return nil, fmt.Errorf("recipe not found: %w", common.ErrNotFound)
	}
	if _, ok := db.users[userID]; !ok {
		db.mu.Unlock()
		return nil, fmt.Errorf("user not found: %w", common.ErrNotFound)
	}
	c := &models.Comment{
		ID:        db.id(),
		RecipeID:  recipeID,
		UserID:    userID,
		Content:   content,
		CreatedAt: db.clock.Now(),
	}
	db.comments[c.ID] = c
	db.mu.Unlock()

	return r.GetByID(ctx, c.ID)
}

func (r *MemoryComments) GetByID(_ context.Context, id int64) (*models.Comment, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	c, ok := r.db.comments[id]
	if !ok {
		return nil, fmt.Errorf("comment not found: %w", common.ErrNotFound)
	}
	return r.joined(c), nil
}

func (r *MemoryComments) ListByRecipe(_ context.Context, recipeID int64) ([]*models.Comment, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	out := []*models.Comment{}
	for _, c := range r.db.comments {
		if c.RecipeID == recipeID {
			out = append(out, r.joined(c))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (r *MemoryComments) UpdateContent(_ context.Context, id int64, content string, at time.Time) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	c, ok := r.db.comments[id]
	if !ok {
		return fmt.Errorf("comment not found: %w", common.ErrNotFound)
	}
	c.Content = content
	c.UpdatedAt = &at
	return nil
}

func (r *MemoryComments) Delete(_ context.Context, id int64) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.comments[id]; !ok {
		return fmt.Errorf("comment not found: %w", common.ErrNotFound)
	}
	delete(r.db.comments, id)
	return nil
}

func (r *MemoryComments) joined(c *models.Comment) *models.Comment {
	cp := *c
	if u, ok := r.db.users[c.UserID]; ok {
		cp.FirstName = u.FirstName
		cp.LastName = u.LastName
		cp.ImageURL = u.ImageURL
	}
	return &cp
}
