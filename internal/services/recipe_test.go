package services

import (
	"context"
	"errors"
	"testing"

	"recipe-share-backend/internal/common"
	"recipe-share-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecipeCreate_Validation(t *testing.T) {
	f := newFixture(t)
	owner := f.user(t, "a@example.com")

	tests := []struct {
		name   string
		modify func(*models.RecipeFields)
	}{
		{name: "no title", modify: func(r *models.RecipeFields) { r.Title = "" }},
		{name: "blank ingredients", modify: func(r *models.RecipeFields) { r.Ingredients = "   " }},
		{name: "no steps", modify: func(r *models.RecipeFields) { r.Steps = "" }},
		{name: "negative duration", modify: func(r *models.RecipeFields) { r.Duration = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := fields("Gulasch", true)
			tt.modify(&in)
			_, err := f.recipes.Create(context.Background(), owner, in, []Upload{jpeg("a.jpg")})
			assert.ErrorIs(t, err, common.ErrValidation)
		})
	}

	_, recipes, images := f.db.Counts()
	assert.Equal(t, 0, recipes)
	assert.Equal(t, 0, images)
	assert.Equal(t, 0, fileCount(t, f.uploads))
}

func TestRecipeCreate_ImageFailureRollsBack(t *testing.T) {
	f := newFixture(t)
	owner := f.user(t, "a@example.com")
	f.db.ImageInsertErr = errors.New("connection refused")

	_, err := f.recipes.Create(context.Background(), owner, fields("Gulasch", true), []Upload{jpeg("a.jpg")})
	assert.Error(t, err)

	_, recipes, images := f.db.Counts()
	assert.Equal(t, 0, recipes)
	assert.Equal(t, 0, images)
	assert.Equal(t, 0, fileCount(t, f.uploads))
}

func TestRecipeDelete_RemovesImagesAndRow(t *testing.T) {
	f := newFixture(t)
	owner := f.user(t, "a@example.com")
	r := f.recipe(t, owner, "Gulasch", true, 3)
	ctx := context.Background()
	require.Equal(t, 3, fileCount(t, f.uploads))

	require.NoError(t, f.recipes.Delete(ctx, r.ID, owner))

	assert.Equal(t, 0, fileCount(t, f.uploads))
	_, recipes, images := f.db.Counts()
	assert.Equal(t, 0, recipes)
	assert.Equal(t, 0, images)

	_, err := f.recipes.Get(ctx, r.ID)
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestRecipeDelete_CascadesFavoritesAndComments(t *testing.T) {
	f := newFixture(t)
	owner := f.user(t, "a@example.com")
	fan := f.user(t, "fan@example.com")
	r := f.recipe(t, owner, "Gulasch", true, 0)
	ctx := context.Background()

	require.NoError(t, f.favorites.Add(ctx, fan, r.ID))
	_, err := f.comments.Create(ctx, r.ID, fan, "Lecker!")
	require.NoError(t, err)

	require.NoError(t, f.recipes.Delete(ctx, r.ID, owner))
	assert.False(t, f.db.HasFavorite(fan, r.ID))
	assert.Equal(t, 0, f.db.CommentCount())
}

func TestRecipeMutations_NonOwnerForbidden(t *testing.T) {
	f := newFixture(t)
	owner := f.user(t, "owner@example.com")
	other := f.user(t, "other@example.com")
	r := f.recipe(t, owner, "Gulasch", true, 1)
	ctx := context.Background()

	changed := fields("Gestohlen", false)
	err := f.recipes.Update(ctx, r.ID, other, changed)
	assert.ErrorIs(t, err, common.ErrForbidden)

	err = f.recipes.Delete(ctx, r.ID, other)
	assert.ErrorIs(t, err, common.ErrForbidden)

	err = f.recipes.Update(ctx, r.ID, other, models.RecipeFields{})
	assert.ErrorIs(t, err, common.ErrForbidden)

	after, err := f.recipes.Get(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, r, after)
	assert.Equal(t, 1, fileCount(t, f.uploads))
}

func TestRecipeMutations_Missing(t *testing.T) {
	f := newFixture(t)
	owner := f.user(t, "owner@example.com")

	err := f.recipes.Update(context.Background(), 404, owner, fields("x", true))
	assert.ErrorIs(t, err, common.ErrNotFound)

	err = f.recipes.Delete(context.Background(), 404, owner)
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestRecipeUpdate_FullReplace(t *testing.T) {
	f := newFixture(t)
	owner := f.user(t, "a@example.com")
	r := f.recipe(t, owner, "Gulasch", true, 1)
	ctx := context.Background()

	in := models.RecipeFields{
		Title:       "Szegediner Gulasch",
		Ingredients: "Sauerkraut",
		Steps:       "Schmoren",
		IsPublic:    false,
		Category:    "Hauptgericht",
		Duration:    90,
		Difficulty:  "Schwer",
	}
	require.NoError(t, f.recipes.Update(ctx, r.ID, owner, in))

	after, err := f.recipes.Get(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, in.Title, after.Title)
	assert.False(t, after.IsPublic)
	assert.Equal(t, 90, after.Duration)
	assert.Equal(t, r.Images, after.Images)
}

func TestRecipeList_OnlyPublicAndFiltered(t *testing.T) {
	f := newFixture(t)
	owner := f.user(t, "a@example.com")
	ctx := context.Background()

	public := f.recipe(t, owner, "Schokoladenkuchen", true, 2)
	f.recipe(t, owner, "Geheimrezept", false, 1)

	quick := fields("Rührei", true)
	quick.Duration = 10
	quick.Category = "Frühstück"
	_, err := f.recipes.Create(ctx, owner, quick, nil)
	require.NoError(t, err)

	all, err := f.recipes.List(ctx, models.RecipeFilter{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	for _, r := range all {
		assert.True(t, r.IsPublic)
	}

	found, err := f.recipes.List(ctx, models.RecipeFilter{Search: "schoko"})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, public.ID, found[0].ID)
	assert.Len(t, found[0].Images, 2)

	short, err := f.recipes.List(ctx, models.RecipeFilter{Duration: "Unter 15 Min"})
	require.NoError(t, err)
	require.Len(t, short, 1)
	assert.Equal(t, "Rührei", short[0].Title)

	none, err := f.recipes.List(ctx, models.RecipeFilter{Search: "Geheim"})
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestRecipeListOwnedBy_IncludesPrivate(t *testing.T) {
	f := newFixture(t)
	owner := f.user(t, "a@example.com")
	other := f.user(t, "b@example.com")

	f.recipe(t, owner, "Öffentlich", true, 1)
	f.recipe(t, owner, "Privat", false, 2)
	f.recipe(t, other, "Fremd", true, 0)

	mine, err := f.recipes.ListOwnedBy(context.Background(), owner)
	require.NoError(t, err)
	require.Len(t, mine, 2)

	var private int
	for _, r := range mine {
		assert.Equal(t, owner, r.UserID)
		if !r.IsPublic {
			private++
			assert.Len(t, r.Images, 2)
		}
	}
	assert.Equal(t, 1, private)
}
