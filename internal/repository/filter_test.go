package repository

import (
	"testing"

	"recipe-share-backend/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestBuildPublicQuery_NoFilters(t *testing.T) {
	query, args := buildPublicQuery(models.RecipeFilter{})

	assert.Contains(t, query, "WHERE is_public = true ORDER BY")
	assert.Empty(t, args)
}

func TestBuildPublicQuery_EmptyValuesAddNoClause(t *testing.T) {
	query, args := buildPublicQuery(models.RecipeFilter{
		Search:     "  ",
		Category:   "",
		Difficulty: "\t",
		Duration:   "forever",
	})

	assert.NotContains(t, query, "category =")
	assert.NotContains(t, query, "difficulty =")
	assert.NotContains(t, query, "ILIKE")
	assert.NotContains(t, query, "duration <")
	assert.NotContains(t, query, "BETWEEN")
	assert.NotContains(t, query, "duration >")
	assert.Empty(t, args)
}

func TestBuildPublicQuery_SearchMatchesLiterally(t *testing.T) {
	tests := []struct {
		search string
		want   string
	}{
		{"50%", `%50\%%`},
		{"a_b", `%a\_b%`},
		{`c:\temp`, `%c:\\temp%`},
		{"plain", "%plain%"},
	}

	for _, tt := range tests {
		t.Run(tt.search, func(t *testing.T) {
			_, args := buildPublicQuery(models.RecipeFilter{Search: tt.search})
			assert.Equal(t, []any{tt.want}, args)
		})
	}
}

func TestBuildPublicQuery_AllFilters(t *testing.T) {
	query, args := buildPublicQuery(models.RecipeFilter{
		Search:     "chocolate",
		Category:   "Dessert",
		Difficulty: "Einfach",
		Duration:   "<15",
	})

	assert.Contains(t, query, `(title ILIKE $1 ESCAPE '\' OR ingredients ILIKE $1 ESCAPE '\' OR steps ILIKE $1 ESCAPE '\')`)
	assert.Contains(t, query, "category = $2")
	assert.Contains(t, query, "difficulty = $3")
	assert.Contains(t, query, "duration < 15")
	assert.Equal(t, []any{"%chocolate%", "Dessert", "Einfach"}, args)
}

func TestBuildPublicQuery_PlaceholdersFollowPresentFilters(t *testing.T) {
	query, args := buildPublicQuery(models.RecipeFilter{Difficulty: "Schwer"})

	assert.Contains(t, query, "difficulty = $1")
	assert.Equal(t, []any{"Schwer"}, args)
}

func TestNormalizeDuration(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"<15", models.DurationShort},
		{"15-30", models.DurationMedium},
		{">30", models.DurationLong},
		{"Unter 15 Min", models.DurationShort},
		{"15–30 Min", models.DurationMedium},
		{"Über 30 Min", models.DurationLong},
		{" >30 ", models.DurationLong},
		{"", ""},
		{"an hour", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeDuration(tt.in))
		})
	}
}

func TestBuildPublicQuery_DurationBuckets(t *testing.T) {
	q, _ := buildPublicQuery(models.RecipeFilter{Duration: "15-30"})
	assert.Contains(t, q, "duration BETWEEN 15 AND 30")

	q, _ = buildPublicQuery(models.RecipeFilter{Duration: "Über 30 Min"})
	assert.Contains(t, q, "duration > 30")
}
