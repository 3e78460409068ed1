package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/rdogf/AppImovel/internal/model"
	"github.com/rdogf/AppImovel/pkg/database"
)

// GetPublicProperty serves the share page data: the listing looked up by
// its share code plus the owner's branding. Internal ids never appear in
// the URL and deactivated listings 404.
func GetPublicProperty(c *fiber.Ctx) error {
	shareCode := c.Params("share_code")

	property, err := propertyService().GetByShareCode(shareCode)
	if err != nil {
		return serviceError(c, err)
	}

	settings := ownerSettings(property.UserID)

	return c.JSON(fiber.Map{
		"property": property,
		"settings": settings,
	})
}

// ownerSettings falls back to the stock branding when the owner never
// saved a settings row.
func ownerSettings(userID uint) model.UserSettings {
	var settings model.UserSettings
	err := database.GetDB().Where("user_id = ?", userID).First(&settings).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.DefaultSettings(userID)
	}
	if err != nil {
		return model.DefaultSettings(userID)
	}
	return settings
}
