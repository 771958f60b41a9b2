package services

import (
	"context"
	"strings"
	"testing"

	"recipe-share-backend/internal/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func register(t *testing.T, f *fixture, email string, image *Upload) int64 {
	t.Helper()
	u, err := f.users.Register(context.Background(), RegisterInput{
		FirstName: "Max",
		LastName:  "Mustermann",
		Email:     email,
		Password:  "geheim123",
	}, image)
	require.NoError(t, err)
	return u.ID
}

func TestRegisterAndLogin(t *testing.T) {
	f := newFixture(t)
	img := jpeg("me.png")
	id := register(t, f, "  Max@Example.com ", &img)
	ctx := context.Background()

	me, err := f.users.Me(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "max@example.com", me.Email)
	assert.NotEqual(t, "geheim123", me.PasswordHash)
	require.NotNil(t, me.ImageURL)
	assert.True(t, strings.HasPrefix(*me.ImageURL, "profile-"))
	assert.True(t, fileExists(t, f.profiles, *me.ImageURL))

	token, user, err := f.users.Login(ctx, "max@example.com", "geheim123")
	require.NoError(t, err)
	assert.Equal(t, id, user.ID)

	identity, err := f.verifier.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, id, identity.UserID)
	assert.Equal(t, "max@example.com", identity.Email)

	_, _, err = f.users.Login(ctx, "max@example.com", "falsch")
	assert.ErrorIs(t, err, common.ErrUnauthenticated)
	_, _, err = f.users.Login(ctx, "nobody@example.com", "geheim123")
	assert.ErrorIs(t, err, common.ErrUnauthenticated)
}

func TestRegister_Validation(t *testing.T) {
	f := newFixture(t)

	_, err := f.users.Register(context.Background(), RegisterInput{Email: "a@b.c", Password: "x"}, nil)
	assert.ErrorIs(t, err, common.ErrValidation)

	bad := Upload{Filename: "cv.pdf", ContentType: "application/pdf", Body: strings.NewReader("%PDF")}
	_, err = f.users.Register(context.Background(), RegisterInput{
		FirstName: "A", LastName: "B", Email: "a@b.c", Password: "geheim123",
	}, &bad)
	assert.ErrorIs(t, err, common.ErrInvalidAsset)
	assert.Equal(t, 0, fileCount(t, f.profiles))
}

func TestRegister_DuplicateEmailRemovesImage(t *testing.T) {
	f := newFixture(t)
	register(t, f, "max@example.com", nil)

	img := jpeg("me.jpg")
	_, err := f.users.Register(context.Background(), RegisterInput{
		FirstName: "Max", LastName: "Zwei", Email: "MAX@example.com", Password: "geheim123",
	}, &img)
	assert.ErrorIs(t, err, common.ErrAlreadyExists)
	assert.Equal(t, 0, fileCount(t, f.profiles))
}

func TestUpdateProfile_ReplacesImage(t *testing.T) {
	f := newFixture(t)
	first := jpeg("a.jpg")
	id := register(t, f, "max@example.com", &first)
	ctx := context.Background()

	before, err := f.users.Me(ctx, id)
	require.NoError(t, err)

	second := jpeg("b.jpg")
	after, err := f.users.UpdateProfile(ctx, id, ProfileInput{
		FirstName: "Maxi", LastName: "Muster", Email: "maxi@example.com",
	}, &second)
	require.NoError(t, err)

	assert.Equal(t, "Maxi", after.FirstName)
	assert.Equal(t, "maxi@example.com", after.Email)
	require.NotNil(t, after.ImageURL)
	assert.NotEqual(t, *before.ImageURL, *after.ImageURL)
	assert.False(t, fileExists(t, f.profiles, *before.ImageURL))
	assert.True(t, fileExists(t, f.profiles, *after.ImageURL))
}

func TestUpdateProfile_EmailTaken(t *testing.T) {
	f := newFixture(t)
	register(t, f, "taken@example.com", nil)
	id := register(t, f, "max@example.com", nil)

	img := jpeg("b.jpg")
	_, err := f.users.UpdateProfile(context.Background(), id, ProfileInput{
		FirstName: "Max", LastName: "M", Email: "taken@example.com",
	}, &img)
	assert.ErrorIs(t, err, common.ErrAlreadyExists)
	assert.Equal(t, 0, fileCount(t, f.profiles))
}

func TestChangePassword(t *testing.T) {
	f := newFixture(t)
	id := register(t, f, "max@example.com", nil)
	ctx := context.Background()

	tests := []struct {
		name    string
		current string
		next    string
		wantErr error
	}{
		{name: "missing", current: "", next: "neuesPasswort", wantErr: common.ErrValidation},
		{name: "too short", current: "geheim123", next: "kurz", wantErr: common.ErrValidation},
		{name: "wrong current", current: "falsch", next: "neuesPasswort", wantErr: common.ErrUnauthenticated},
		{name: "ok", current: "geheim123", next: "neuesPasswort"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := f.users.ChangePassword(ctx, id, tt.current, tt.next)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
		})
	}

	_, _, err := f.users.Login(ctx, "max@example.com", "neuesPasswort")
	assert.NoError(t, err)
}

func TestDeleteAccount_RemovesEverythingInOrder(t *testing.T) {
	f := newFixture(t)
	img := jpeg("me.jpg")
	id := register(t, f, "max@example.com", &img)
	other := f.user(t, "other@example.com")
	ctx := context.Background()

	f.recipe(t, id, "Erbsensuppe", true, 2)
	f.recipe(t, id, "Bratkartoffeln", false, 3)
	kept := f.recipe(t, other, "Fremdes Rezept", true, 1)

	require.NoError(t, f.favorites.Add(ctx, id, kept.ID))
	_, err := f.comments.Create(ctx, kept.ID, id, "Toll")
	require.NoError(t, err)

	require.Equal(t, 6, fileCount(t, f.uploads))
	require.NoError(t, f.users.DeleteAccount(ctx, id))

	users, recipes, images := f.db.Counts()
	assert.Equal(t, 1, users)
	assert.Equal(t, 1, recipes)
	assert.Equal(t, 1, images)
	assert.Equal(t, 1, fileCount(t, f.uploads))
	assert.Equal(t, 0, fileCount(t, f.profiles))
	assert.False(t, f.db.HasFavorite(id, kept.ID))
	assert.Equal(t, 0, f.db.CommentCount())

	mine, err := f.recipes.ListOwnedBy(ctx, id)
	require.NoError(t, err)
	assert.Empty(t, mine)

	_, err = f.users.Me(ctx, id)
	assert.ErrorIs(t, err, common.ErrNotFound)

	err = f.users.DeleteAccount(ctx, id)
	assert.ErrorIs(t, err, common.ErrNotFound)
}
