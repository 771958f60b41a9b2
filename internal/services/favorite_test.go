package services

import (
	"context"
	"testing"

	"recipe-share-backend/internal/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFavoriteAdd_SecondAddConflicts(t *testing.T) {
	f := newFixture(t)
	owner := f.user(t, "owner@example.com")
	fan := f.user(t, "fan@example.com")
	r := f.recipe(t, owner, "Kaiserschmarrn", true, 1)
	ctx := context.Background()

	require.NoError(t, f.favorites.Add(ctx, fan, r.ID))
	err := f.favorites.Add(ctx, fan, r.ID)
	assert.ErrorIs(t, err, common.ErrAlreadyExists)

	favs, err := f.favorites.List(ctx, fan)
	require.NoError(t, err)
	require.Len(t, favs, 1)
	assert.Equal(t, r.Images, favs[0].Images)
}

func TestFavoriteAdd_MissingRecipe(t *testing.T) {
	f := newFixture(t)
	fan := f.user(t, "fan@example.com")

	err := f.favorites.Add(context.Background(), fan, 12345)
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestFavoriteRemove_Idempotent(t *testing.T) {
	f := newFixture(t)
	owner := f.user(t, "owner@example.com")
	fan := f.user(t, "fan@example.com")
	r := f.recipe(t, owner, "Kaiserschmarrn", true, 0)
	ctx := context.Background()

	assert.NoError(t, f.favorites.Remove(ctx, fan, r.ID))

	require.NoError(t, f.favorites.Add(ctx, fan, r.ID))
	assert.NoError(t, f.favorites.Remove(ctx, fan, r.ID))
	assert.NoError(t, f.favorites.Remove(ctx, fan, r.ID))
	assert.False(t, f.db.HasFavorite(fan, r.ID))

	favs, err := f.favorites.List(ctx, fan)
	require.NoError(t, err)
	assert.Empty(t, favs)
}
