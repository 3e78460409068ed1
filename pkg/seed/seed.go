package seed

import (
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/rdogf/AppImovel/internal/model"
	"github.com/rdogf/AppImovel/internal/service"
)

// SeedMasterUser guarantees the bootstrap master account exists and owns
// any orphaned listings left behind by earlier imports.
func SeedMasterUser(db *gorm.DB, email, password string) (*model.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	master := model.User{
		Email:    email,
		Password: string(hashed),
		Name:     "Administrador Master",
		Role:     model.RoleMaster,
		Active:   true,
	}
	result := db.Where(model.User{Email: email}).Attrs(master).FirstOrCreate(&master)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected > 0 {
		log.Printf("Created master user: %s", email)
	}

	// one-time ownership migration for rows created before multi-tenancy
	moved, err := service.NewPropertyService(db).AssignOrphansToMaster(master.ID)
	if err != nil {
		return nil, err
	}
	if moved > 0 {
		log.Printf("Assigned %d orphaned properties to master", moved)
	}

	return &master, nil
}

// SeedDefaultSettings creates the master account's branding row when absent.
func SeedDefaultSettings(db *gorm.DB, userID uint) error {
	settings := model.DefaultSettings(userID)
	settings.CompanyName = "Minha Imobiliária"
	settings.AboutText = "Somos uma imobiliária especializada em imóveis de alto padrão. " +
		"Nossa missão é ajudar você a encontrar o imóvel dos seus sonhos."

	result := db.Where(model.UserSettings{UserID: userID}).Attrs(settings).FirstOrCreate(&settings)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected > 0 {
		log.Printf("Created settings: %s", settings.CompanyName)
	}
	return nil
}

// SeedSampleProperty inserts one showcase listing for fresh installs.
func SeedSampleProperty(db *gorm.DB, ownerID uint) error {
	var count int64
	if err := db.Model(&model.Property{}).Where("title = ?", "Cobertura Riserva Golf").Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	condoFee := 12000.0
	iptu := 29000.0
	property := model.Property{
		Title:         "Cobertura Riserva Golf",
		Address:       "Av. Ermanno Dallari, 363",
		Neighborhood:  "Barra da Tijuca",
		City:          "Rio de Janeiro",
		State:         "RJ",
		TotalArea:     555.81,
		PropertyType:  model.PropertyTypeCobertura,
		Bedrooms:      5,
		Suites:        3,
		Bathrooms:     6,
		ParkingSpaces: 5,
		Characteristics: "Apartamento de 5 suítes, sendo transformada em 3 suítes, " +
			"5 vagas de garagem + 1 vaga box.\nApartamento superexclusivo vendido com porteira fechada.",
		Price:    16900000,
		CondoFee: &condoFee,
		IPTU:     &iptu,
		Status:   model.PropertyStatusDisponivel,
		Featured: true,
		Active:   true,
		UserID:   ownerID,
	}

	if err := db.Create(&property).Error; err != nil {
		return err
	}
	log.Printf("Created property: %s", property.Title)
	return nil
}
