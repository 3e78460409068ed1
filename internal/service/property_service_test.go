package service_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rdogf/AppImovel/internal/model"
	"github.com/rdogf/AppImovel/internal/service"
)

func TestCreateSetsOwnerAndDefaults(t *testing.T) {
	db := setupTestDB(t)
	svc := service.NewPropertyService(db)
	actor := adminActor(2)

	property, err := svc.Create(actor, validInput())
	require.NoError(t, err)

	assert.Equal(t, uint(2), property.UserID)
	assert.True(t, property.Active)
	assert.Equal(t, model.PropertyStatusDisponivel, property.Status)
	assert.NotEmpty(t, property.ShareCode)
}

func TestCreateShareCodesAreUnique(t *testing.T) {
	db := setupTestDB(t)
	svc := service.NewPropertyService(db)

	a, err := svc.Create(adminActor(2), validInput())
	require.NoError(t, err)
	b, err := svc.Create(adminActor(2), validInput())
	require.NoError(t, err)

	assert.NotEqual(t, a.ShareCode, b.ShareCode)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestCreateRequiresAuthentication(t *testing.T) {
	db := setupTestDB(t)
	svc := service.NewPropertyService(db)

	_, err := svc.Create(service.Actor{}, validInput())
	assert.ErrorIs(t, err, service.ErrUnauthenticated)
}

func TestCreateValidation(t *testing.T) {
	db := setupTestDB(t)
	svc := service.NewPropertyService(db)

	input := validInput()
	input.Title = ""
	input.Bedrooms = -1

	_, err := svc.Create(adminActor(2), input)
	require.Error(t, err)

	var verr *service.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Fields, "Title")
	assert.Contains(t, verr.Fields, "Bedrooms")
}

func TestCreateRejectsUnknownStatus(t *testing.T) {
	db := setupTestDB(t)
	svc := service.NewPropertyService(db)

	input := validInput()
	input.Status = "penhorado"

	_, err := svc.Create(adminActor(2), input)

	var verr *service.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Fields, "Status")
}

func TestListIsScopedToOwner(t *testing.T) {
	db := setupTestDB(t)
	svc := service.NewPropertyService(db)

	mine, err := svc.Create(adminActor(2), validInput())
	require.NoError(t, err)
	_, err = svc.Create(adminActor(3), validInput())
	require.NoError(t, err)

	listed, err := svc.List(adminActor(2), service.ListFilters{})
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, mine.ID, listed[0].ID)

	other, err := svc.List(adminActor(3), service.ListFilters{})
	require.NoError(t, err)
	require.Len(t, other, 1)
	assert.NotEqual(t, mine.ID, other[0].ID)
}

func TestMasterSeesAllOwners(t *testing.T) {
	db := setupTestDB(t)
	svc := service.NewPropertyService(db)

	_, err := svc.Create(adminActor(2), validInput())
	require.NoError(t, err)
	_, err = svc.Create(adminActor(3), validInput())
	require.NoError(t, err)

	listed, err := svc.List(masterActor(), service.ListFilters{})
	require.NoError(t, err)
	assert.Len(t, listed, 2)
}

func TestListFilters(t *testing.T) {
	db := setupTestDB(t)
	svc := service.NewPropertyService(db)
	actor := adminActor(2)

	_, err := svc.Create(actor, validInput())
	require.NoError(t, err)

	casa := validInput()
	casa.Title = "Casa Itanhangá"
	casa.Neighborhood = "Itanhangá"
	casa.PropertyType = model.PropertyTypeCasa
	_, err = svc.Create(actor, casa)
	require.NoError(t, err)

	byType, err := svc.List(actor, service.ListFilters{PropertyType: model.PropertyTypeCasa})
	require.NoError(t, err)
	require.Len(t, byType, 1)
	assert.Equal(t, "Casa Itanhangá", byType[0].Title)

	byHood, err := svc.List(actor, service.ListFilters{Neighborhood: "Barra da Tijuca"})
	require.NoError(t, err)
	assert.Len(t, byHood, 1)

	bySearch, err := svc.List(actor, service.ListFilters{Search: "Riserva"})
	require.NoError(t, err)
	assert.Len(t, bySearch, 1)
}

func TestSoftDeleteThenRestore(t *testing.T) {
	db := setupTestDB(t)
	svc := service.NewPropertyService(db)
	actor := adminActor(2)

	property, err := svc.Create(actor, validInput())
	require.NoError(t, err)

	require.NoError(t, svc.SoftDelete(actor, property.ID))

	listed, err := svc.List(actor, service.ListFilters{})
	require.NoError(t, err)
	assert.Empty(t, listed)

	// calling twice is a no-op, not an error
	require.NoError(t, svc.SoftDelete(actor, property.ID))

	require.NoError(t, svc.Restore(actor, property.ID))
	require.NoError(t, svc.Restore(actor, property.ID))

	listed, err = svc.List(actor, service.ListFilters{})
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, property.Title, listed[0].Title)
	assert.Equal(t, property.Price, listed[0].Price)
	assert.Equal(t, property.ShareCode, listed[0].ShareCode)
}

func TestInactiveViewIsMasterOnly(t *testing.T) {
	db := setupTestDB(t)
	svc := service.NewPropertyService(db)
	actor := adminActor(2)

	property, err := svc.Create(actor, validInput())
	require.NoError(t, err)
	require.NoError(t, svc.SoftDelete(actor, property.ID))

	_, err = svc.List(actor, service.ListFilters{Inactive: true})
	assert.ErrorIs(t, err, service.ErrUnauthorized)

	inactive, err := svc.List(masterActor(), service.ListFilters{Inactive: true})
	require.NoError(t, err)
	require.Len(t, inactive, 1)
	assert.Equal(t, property.ID, inactive[0].ID)
	assert.Equal(t, model.PropertyStatusDisponivel, inactive[0].Status)
}

func TestUpdateByNonOwnerFails(t *testing.T) {
	db := setupTestDB(t)
	svc := service.NewPropertyService(db)

	input := validInput()
	input.Title = "X"
	input.Price = 100
	property, err := svc.Create(adminActor(1), validInput())
	require.NoError(t, err)
	property, err = svc.Update(adminActor(1), property.ID, input)
	require.NoError(t, err)

	attempt := validInput()
	attempt.Title = "Y"
	_, err = svc.Update(adminActor(2), property.ID, attempt)
	assert.ErrorIs(t, err, service.ErrUnauthorized)

	stored, err := svc.Get(adminActor(1), property.ID)
	require.NoError(t, err)
	assert.Equal(t, "X", stored.Title)
	assert.Equal(t, float64(100), stored.Price)
}

func TestMasterCanUpdateAnyListing(t *testing.T) {
	db := setupTestDB(t)
	svc := service.NewPropertyService(db)

	property, err := svc.Create(adminActor(2), validInput())
	require.NoError(t, err)

	input := validInput()
	input.Title = "Atualizado"
	input.Status = model.PropertyStatusReservado
	updated, err := svc.Update(masterActor(), property.ID, input)
	require.NoError(t, err)

	assert.Equal(t, "Atualizado", updated.Title)
	assert.Equal(t, model.PropertyStatusReservado, updated.Status)
	// ownership never moves on update
	assert.Equal(t, uint(2), updated.UserID)
	assert.Equal(t, property.ShareCode, updated.ShareCode)
}

func TestUpdateDoesNotTouchActiveFlag(t *testing.T) {
	db := setupTestDB(t)
	svc := service.NewPropertyService(db)
	actor := adminActor(2)

	property, err := svc.Create(actor, validInput())
	require.NoError(t, err)
	require.NoError(t, svc.SoftDelete(actor, property.ID))

	_, err = svc.Update(actor, property.ID, validInput())
	require.NoError(t, err)

	var stored model.Property
	require.NoError(t, db.First(&stored, property.ID).Error)
	assert.False(t, stored.Active)
}

func TestUpdateUnknownIDReturnsNotFound(t *testing.T) {
	db := setupTestDB(t)
	svc := service.NewPropertyService(db)

	_, err := svc.Update(adminActor(2), 9999, validInput())
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestPermanentDeleteIsMasterOnly(t *testing.T) {
	db := setupTestDB(t)
	propSvc := service.NewPropertyService(db)
	photoSvc := service.NewPhotoService(db)

	property, err := propSvc.Create(adminActor(2), validInput())
	require.NoError(t, err)
	photo, err := photoSvc.AddPhoto(property.ID, "/uploads/1/a.jpg", "fachada")
	require.NoError(t, err)

	// even the owner cannot hard-delete
	err = propSvc.PermanentDelete(adminActor(2), property.ID)
	assert.ErrorIs(t, err, service.ErrUnauthorized)

	require.NoError(t, propSvc.PermanentDelete(masterActor(), property.ID))

	_, err = propSvc.Get(masterActor(), property.ID)
	assert.ErrorIs(t, err, service.ErrNotFound)
	_, err = photoSvc.GetPhoto(photo.ID)
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestCloneBuildsDraftFields(t *testing.T) {
	db := setupTestDB(t)
	propSvc := service.NewPropertyService(db)
	photoSvc := service.NewPhotoService(db)
	actor := adminActor(2)

	input := validInput()
	input.Title = "Casa"
	input.Status = model.PropertyStatusVendido
	property, err := propSvc.Create(actor, input)
	require.NoError(t, err)
	_, err = photoSvc.AddPhoto(property.ID, "/uploads/1/a.jpg", "")
	require.NoError(t, err)

	draft, err := propSvc.Clone(actor, property.ID)
	require.NoError(t, err)

	assert.Equal(t, "Casa (Cópia)", draft.Title)
	assert.Equal(t, model.PropertyStatusDisponivel, draft.Status)
	assert.Equal(t, property.Address, draft.Address)
	assert.Equal(t, property.Price, draft.Price)

	// the draft is a pre-fill, nothing was created
	listed, err := propSvc.List(actor, service.ListFilters{})
	require.NoError(t, err)
	assert.Len(t, listed, 1)
}

func TestCloneOfForeignListingLooksAbsent(t *testing.T) {
	db := setupTestDB(t)
	svc := service.NewPropertyService(db)

	property, err := svc.Create(adminActor(2), validInput())
	require.NoError(t, err)

	_, err = svc.Clone(adminActor(3), property.ID)
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestGetByShareCode(t *testing.T) {
	db := setupTestDB(t)
	svc := service.NewPropertyService(db)
	actor := adminActor(2)

	property, err := svc.Create(actor, validInput())
	require.NoError(t, err)

	found, err := svc.GetByShareCode(property.ShareCode)
	require.NoError(t, err)
	assert.Equal(t, property.ID, found.ID)

	// deactivated listings disappear from the public page
	require.NoError(t, svc.SoftDelete(actor, property.ID))
	_, err = svc.GetByShareCode(property.ShareCode)
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestAssignOrphansToMaster(t *testing.T) {
	db := setupTestDB(t)
	svc := service.NewPropertyService(db)

	orphan := model.Property{
		Title:        "Sem dono",
		Address:      "Rua A",
		Neighborhood: "Centro",
		City:         "Rio de Janeiro",
		State:        "RJ",
		PropertyType: model.PropertyTypeCasa,
		Price:        1,
		Active:       true,
	}
	require.NoError(t, db.Create(&orphan).Error)

	moved, err := svc.AssignOrphansToMaster(1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), moved)

	var stored model.Property
	require.NoError(t, db.First(&stored, orphan.ID).Error)
	assert.Equal(t, uint(1), stored.UserID)
}
