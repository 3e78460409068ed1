package service_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rdogf/AppImovel/internal/model"
	"github.com/rdogf/AppImovel/internal/service"
)

func createListing(t *testing.T, propSvc *service.PropertyService, owner uint) *model.Property {
	t.Helper()
	property, err := propSvc.Create(adminActor(owner), validInput())
	require.NoError(t, err)
	return property
}

func TestAddPhotoAppendsFromZero(t *testing.T) {
	db := setupTestDB(t)
	photoSvc := service.NewPhotoService(db)
	property := createListing(t, service.NewPropertyService(db), 2)

	first, err := photoSvc.AddPhoto(property.ID, "/uploads/1/a.jpg", "fachada")
	require.NoError(t, err)
	second, err := photoSvc.AddPhoto(property.ID, "/uploads/1/b.jpg", "sala")
	require.NoError(t, err)

	assert.Equal(t, 0, first.Order)
	assert.Equal(t, 1, second.Order)
}

func TestAddPhotoCountsPerProperty(t *testing.T) {
	db := setupTestDB(t)
	photoSvc := service.NewPhotoService(db)
	propSvc := service.NewPropertyService(db)
	a := createListing(t, propSvc, 2)
	b := createListing(t, propSvc, 2)

	_, err := photoSvc.AddPhoto(a.ID, "/uploads/a/1.jpg", "")
	require.NoError(t, err)
	_, err = photoSvc.AddPhoto(a.ID, "/uploads/a/2.jpg", "")
	require.NoError(t, err)

	firstOfB, err := photoSvc.AddPhoto(b.ID, "/uploads/b/1.jpg", "")
	require.NoError(t, err)
	assert.Equal(t, 0, firstOfB.Order)
}

func TestReorder(t *testing.T) {
	db := setupTestDB(t)
	photoSvc := service.NewPhotoService(db)
	property := createListing(t, service.NewPropertyService(db), 2)

	a, err := photoSvc.AddPhoto(property.ID, "/uploads/1/a.jpg", "")
	require.NoError(t, err)
	b, err := photoSvc.AddPhoto(property.ID, "/uploads/1/b.jpg", "")
	require.NoError(t, err)
	c, err := photoSvc.AddPhoto(property.ID, "/uploads/1/c.jpg", "")
	require.NoError(t, err)

	require.NoError(t, photoSvc.Reorder(property.ID, []uint{c.ID, a.ID, b.ID}))

	photos, err := photoSvc.ListPhotos(property.ID)
	require.NoError(t, err)
	require.Len(t, photos, 3)

	assert.Equal(t, c.ID, photos[0].ID)
	assert.Equal(t, 0, photos[0].Order)
	assert.Equal(t, a.ID, photos[1].ID)
	assert.Equal(t, 1, photos[1].Order)
	assert.Equal(t, b.ID, photos[2].ID)
	assert.Equal(t, 2, photos[2].Order)
}

func TestReorderRejectsForeignPhoto(t *testing.T) {
	db := setupTestDB(t)
	photoSvc := service.NewPhotoService(db)
	propSvc := service.NewPropertyService(db)
	mine := createListing(t, propSvc, 2)
	other := createListing(t, propSvc, 3)

	own, err := photoSvc.AddPhoto(mine.ID, "/uploads/1/a.jpg", "")
	require.NoError(t, err)
	foreign, err := photoSvc.AddPhoto(other.ID, "/uploads/2/x.jpg", "")
	require.NoError(t, err)

	err = photoSvc.Reorder(mine.ID, []uint{foreign.ID})
	var verr *service.ValidationError
	require.True(t, errors.As(err, &verr))

	// nothing moved
	photos, err := photoSvc.ListPhotos(other.ID)
	require.NoError(t, err)
	require.Len(t, photos, 1)
	assert.Equal(t, 0, photos[0].Order)
	assert.Equal(t, foreign.ID, photos[0].ID)

	mineAfter, err := photoSvc.ListPhotos(mine.ID)
	require.NoError(t, err)
	assert.Equal(t, own.ID, mineAfter[0].ID)
}

func TestReorderRequiresCompleteSequence(t *testing.T) {
	db := setupTestDB(t)
	photoSvc := service.NewPhotoService(db)
	property := createListing(t, service.NewPropertyService(db), 2)

	a, err := photoSvc.AddPhoto(property.ID, "/uploads/1/a.jpg", "")
	require.NoError(t, err)
	_, err = photoSvc.AddPhoto(property.ID, "/uploads/1/b.jpg", "")
	require.NoError(t, err)

	err = photoSvc.Reorder(property.ID, []uint{a.ID})
	var verr *service.ValidationError
	assert.True(t, errors.As(err, &verr))

	err = photoSvc.Reorder(property.ID, []uint{a.ID, a.ID})
	assert.True(t, errors.As(err, &verr))
}

func TestDeleteLeavesGapInOrdering(t *testing.T) {
	db := setupTestDB(t)
	photoSvc := service.NewPhotoService(db)
	property := createListing(t, service.NewPropertyService(db), 2)

	a, err := photoSvc.AddPhoto(property.ID, "/uploads/1/a.jpg", "")
	require.NoError(t, err)
	_, err = photoSvc.AddPhoto(property.ID, "/uploads/1/b.jpg", "")
	require.NoError(t, err)
	c, err := photoSvc.AddPhoto(property.ID, "/uploads/1/c.jpg", "")
	require.NoError(t, err)

	middle, err := photoSvc.ListPhotos(property.ID)
	require.NoError(t, err)
	require.NoError(t, photoSvc.DeletePhoto(middle[1].ID))

	photos, err := photoSvc.ListPhotos(property.ID)
	require.NoError(t, err)
	require.Len(t, photos, 2)

	// siblings keep their ranks, the gap is fine
	assert.Equal(t, a.ID, photos[0].ID)
	assert.Equal(t, 0, photos[0].Order)
	assert.Equal(t, c.ID, photos[1].ID)
	assert.Equal(t, 2, photos[1].Order)

	// the next append continues past the highest surviving rank
	next, err := photoSvc.AddPhoto(property.ID, "/uploads/1/d.jpg", "")
	require.NoError(t, err)
	assert.Equal(t, 3, next.Order)
}

func TestDeleteUnknownPhoto(t *testing.T) {
	db := setupTestDB(t)
	photoSvc := service.NewPhotoService(db)

	err := photoSvc.DeletePhoto(424242)
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestOrderTiesFallBackToInsertionOrder(t *testing.T) {
	db := setupTestDB(t)
	photoSvc := service.NewPhotoService(db)
	property := createListing(t, service.NewPropertyService(db), 2)

	// simulate the duplicate-rank race two concurrent appends can produce
	first := model.Photo{PropertyID: property.ID, URL: "/uploads/1/a.jpg", Order: 0}
	second := model.Photo{PropertyID: property.ID, URL: "/uploads/1/b.jpg", Order: 0}
	require.NoError(t, db.Create(&first).Error)
	require.NoError(t, db.Create(&second).Error)

	photos, err := photoSvc.ListPhotos(property.ID)
	require.NoError(t, err)
	require.Len(t, photos, 2)
	assert.Equal(t, first.ID, photos[0].ID)
	assert.Equal(t, second.ID, photos[1].ID)
}
