package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCreateUser_DefaultsAndConflict(t *testing.T) {
	// Arrange
	ctx := context.Background()

	// Act
	user, err := testStore.CreateUser(ctx, "nowy_uzytkownik", nil, "hash123")

	// Assert
	require.NoError(t, err)
	require.Equal(t, "nowy_uzytkownik", user.Username)
	require.Equal(t, "FREE", user.Tier)
	require.Equal(t, int64(0), user.StorageUsedBytes)

	_, err = testStore.CreateUser(ctx, "nowy_uzytkownik", nil, "innyhash")
	require.ErrorIs(t, err, ErrUsernameTaken)
}

func TestGetUserByUsername_NotFoundReturnsNil(t *testing.T) {
	user, err := testStore.GetUserByUsername(context.Background(), "nie_istnieje")
	require.NoError(t, err)
	require.Nil(t, user)
}

func TestAddStorageUsed_AtomicAndFloored(t *testing.T) {
	// Arrange
	ctx := context.Background()
	user, err := testStore.CreateUser(ctx, "licznik_miejsca", nil, "hash")
	require.NoError(t, err)

	// Act
	total, err := testStore.AddStorageUsed(ctx, user.ID, 1000)
	require.NoError(t, err)
	require.Equal(t, int64(1000), total)

	total, err = testStore.AddStorageUsed(ctx, user.ID, -400)
	require.NoError(t, err)
	require.Equal(t, int64(600), total)

	// Assert: odjęcie więcej niż jest nie schodzi poniżej zera
	total, err = testStore.AddStorageUsed(ctx, user.ID, -5000)
	require.NoError(t, err)
	require.Equal(t, int64(0), total)
}

func TestUpdateUserProfile_PartialPatch(t *testing.T) {
	// Arrange
	ctx := context.Background()
	user, err := testStore.CreateUser(ctx, "profil_testowy", nil, "hash")
	require.NoError(t, err)

	bio := "Street photography"
	updated, err := testStore.UpdateUserProfile(ctx, user.ID, UpdateUserProfileParams{Bio: &bio})
	require.NoError(t, err)
	require.NotNil(t, updated.Bio)
	require.Equal(t, "Street photography", *updated.Bio)

	// Act: kolejny patch innego pola nie rusza bio
	website := "https://example.com"
	updated, err = testStore.UpdateUserProfile(ctx, user.ID, UpdateUserProfileParams{Website: &website})

	// Assert
	require.NoError(t, err)
	require.NotNil(t, updated.Bio)
	require.Equal(t, "Street photography", *updated.Bio)
	require.NotNil(t, updated.Website)
	require.Equal(t, "https://example.com", *updated.Website)
}
