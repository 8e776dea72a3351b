package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPantryStoreCreate(t *testing.T) {
	d := openTestDB(t)
	pantries := NewPantryStore(d)
	ctx := context.Background()

	ownerID := createTestUser(t, d, "alice")

	pantry, err := pantries.Create(ctx, ownerID, "Baking shelf")
	require.NoError(t, err)
	assert.NotEmpty(t, pantry.ID)
	assert.Equal(t, "Baking shelf", pantry.Title)
	assert.Equal(t, ownerID, pantry.OwnerID)
}

func TestPantryStoreGetByIDAndOwner(t *testing.T) {
	d := openTestDB(t)
	pantries := NewPantryStore(d)
	ctx := context.Background()

	aliceID := createTestUser(t, d, "alice")
	bobID := createTestUser(t, d, "bob")

	pantry, err := pantries.Create(ctx, aliceID, "Fridge")
	require.NoError(t, err)

	got, err := pantries.GetByIDAndOwner(ctx, pantry.ID, aliceID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, pantry.ID, got.ID)

	got, err = pantries.GetByIDAndOwner(ctx, pantry.ID, bobID)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestPantryStoreListByOwnerID(t *testing.T) {
	d := openTestDB(t)
	pantries := NewPantryStore(d)
	ctx := context.Background()

	aliceID := createTestUser(t, d, "alice")
	bobID := createTestUser(t, d, "bob")

	_, err := pantries.Create(ctx, aliceID, "Freezer")
	require.NoError(t, err)
	_, err = pantries.Create(ctx, aliceID, "Cellar")
	require.NoError(t, err)
	_, err = pantries.Create(ctx, bobID, "Garage")
	require.NoError(t, err)

	list, err := pantries.ListByOwnerID(ctx, aliceID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Cellar", list[0].Title)
	assert.Equal(t, "Freezer", list[1].Title)
}

func TestPantryStoreUpdate(t *testing.T) {
	d := openTestDB(t)
	pantries := NewPantryStore(d)
	ctx := context.Background()

	ownerID := createTestUser(t, d, "alice")
	pantry, err := pantries.Create(ctx, ownerID, "Fridge")
	require.NoError(t, err)

	err = pantries.Update(ctx, pantry.ID, "Garage Fridge")
	require.NoError(t, err)

	got, err := pantries.GetByID(ctx, pantry.ID)
	require.NoError(t, err)
	assert.Equal(t, "Garage Fridge", got.Title)
}

func TestPantryStoreDelete(t *testing.T) {
	d := openTestDB(t)
	pantries := NewPantryStore(d)
	ctx := context.Background()

	ownerID := createTestUser(t, d, "alice")
	pantry, err := pantries.Create(ctx, ownerID, "Fridge")
	require.NoError(t, err)

	err = pantries.Delete(ctx, pantry.ID)
	require.NoError(t, err)

	got, err := pantries.GetByID(ctx, pantry.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestImageStoreCreateAndGet(t *testing.T) {
	d := openTestDB(t)
	images := NewImageStore(d)
	ctx := context.Background()

	image, err := images.Create(ctx, "scans/abc.jpg", "image/jpeg")
	require.NoError(t, err)
	assert.NotEmpty(t, image.ID)

	got, err := images.GetByID(ctx, image.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "scans/abc.jpg", got.StorageKey)
	assert.Equal(t, "image/jpeg", got.MimeType)

	missing, err := images.GetByID(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, missing)
}
