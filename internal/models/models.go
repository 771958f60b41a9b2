package models

import "time"

// User represents a registered user
type User struct {
	ID           int64     `json:"id"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	ImageURL     *string   `json:"image_url"`
	CreatedAt    time.Time `json:"created_at"`
}

// Recipe represents a recipe row enriched with its image filenames
type Recipe struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	Title       string    `json:"title"`
	Ingredients string    `json:"ingredients"`
	Steps       string    `json:"steps"`
	IsPublic    bool      `json:"is_public"`
	Category    string    `json:"category"`
	Duration    int       `json:"duration"`
	Difficulty  string    `json:"difficulty"`
	CreatedAt   time.Time `json:"created_at"`
	Images      []string  `json:"images"`
}

// RecipeFields holds the client-editable recipe fields.
// Updates always carry every field.
type RecipeFields struct {
	Title       string `json:"title"`
	Ingredients string `json:"ingredients"`
	Steps       string `json:"steps"`
	IsPublic    bool   `json:"is_public"`
	Category    string `json:"category"`
	Duration    int    `json:"duration"`
	Difficulty  string `json:"difficulty"`
}

// RecipeImage links a stored image file to a recipe
type RecipeImage struct {
	ID       int64  `json:"id"`
	RecipeID int64  `json:"recipe_id"`
	Filename string `json:"image_url"`
}

// Favorite marks a recipe as favorited by a user
type Favorite struct {
	UserID   int64 `json:"user_id"`
	RecipeID int64 `json:"recipe_id"`
}

// Comment represents a comment joined with its author's profile fields
type Comment struct {
	ID        int64      `json:"id"`
	RecipeID  int64      `json:"recipe_id"`
	UserID    int64      `json:"user_id"`
	Content   string     `json:"content"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
	FirstName string     `json:"firstName"`
	LastName  string     `json:"lastName"`
	ImageURL  *string    `json:"image_url"`
}

// Duration buckets accepted by the public recipe filter
const (
	DurationShort  = "<15"
	DurationMedium = "15-30"
	DurationLong   = ">30"
)

// RecipeFilter narrows the public recipe listing. Empty fields are ignored.
type RecipeFilter struct {
	Search     string // substring of title, ingredients or steps
	Category   string // exact match
	Difficulty string // exact match
	Duration   string // one of the Duration* buckets
}
