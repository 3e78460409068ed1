package service_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/rdogf/AppImovel/internal/model"
	"github.com/rdogf/AppImovel/internal/service"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&model.User{},
		&model.UserSettings{},
		&model.Property{},
		&model.Photo{},
		&model.PropertyView{},
		&model.PropertyStats{},
	)
	require.NoError(t, err)
	return db
}

func masterActor() service.Actor {
	return service.Actor{ID: 1, Role: model.RoleMaster}
}

func adminActor(id uint) service.Actor {
	return service.Actor{ID: id, Role: model.RoleAdmin}
}

func validInput() service.CreatePropertyInput {
	return service.CreatePropertyInput{
		Title:        "Cobertura Riserva Golf",
		Address:      "Av. Ermanno Dallari, 363",
		Neighborhood: "Barra da Tijuca",
		City:         "Rio de Janeiro",
		State:        "RJ",
		PropertyType: model.PropertyTypeCobertura,
		TotalArea:    555.81,
		Bedrooms:     5,
		Suites:       3,
		Bathrooms:    6,
		Price:        16900000,
	}
}
