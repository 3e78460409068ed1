package controller

import (
	"encoding/json"
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/rdogf/AppImovel/internal/model"
	"github.com/rdogf/AppImovel/pkg/database"
	"github.com/rdogf/AppImovel/pkg/utils/image"
	"github.com/rdogf/AppImovel/pkg/utils/jwt"
	"github.com/rdogf/AppImovel/pkg/utils/storage"
)

type SettingsInput struct {
	CompanyName    string            `json:"company_name"`
	PrimaryColor   string            `json:"primary_color"`
	SecondaryColor string            `json:"secondary_color"`
	AccentColor    string            `json:"accent_color"`
	AboutTitle     string            `json:"about_title"`
	AboutText      string            `json:"about_text"`
	WhatsappNumber string            `json:"whatsapp_number"`
	Email          string            `json:"email"`
	Address        string            `json:"address"`
	SocialLinks    map[string]string `json:"social_links"`
}

// GetSettings returns the caller's branding row, creating it with
// defaults on first access.
func GetSettings(c *fiber.Ctx) error {
	claims := c.Locals("user").(*jwt.Claims)

	var settings model.UserSettings
	err := database.GetDB().Where("user_id = ?", claims.UserID).First(&settings).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		settings = model.DefaultSettings(claims.UserID)
		if err := database.GetDB().Create(&settings).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Could not create settings",
			})
		}
	} else if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not fetch settings",
		})
	}

	return c.JSON(settings)
}

// UpdateSettings upserts the caller's branding row
func UpdateSettings(c *fiber.Ctx) error {
	claims := c.Locals("user").(*jwt.Claims)

	input := new(SettingsInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid input",
		})
	}

	var settings model.UserSettings
	err := database.GetDB().Where("user_id = ?", claims.UserID).First(&settings).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		settings = model.DefaultSettings(claims.UserID)
		if err := database.GetDB().Create(&settings).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Could not create settings",
			})
		}
	} else if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not fetch settings",
		})
	}

	updates := map[string]interface{}{
		"company_name":    input.CompanyName,
		"primary_color":   input.PrimaryColor,
		"secondary_color": input.SecondaryColor,
		"accent_color":    input.AccentColor,
		"about_title":     input.AboutTitle,
		"about_text":      input.AboutText,
		"whatsapp_number": input.WhatsappNumber,
		"email":           input.Email,
		"address":         input.Address,
	}
	if input.SocialLinks != nil {
		links, err := json.Marshal(input.SocialLinks)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid social links",
			})
		}
		updates["social_links"] = datatypes.JSON(links)
	}

	if err := database.GetDB().Model(&settings).Updates(updates).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not update settings",
		})
	}

	return c.JSON(fiber.Map{
		"message":  "Settings updated successfully",
		"settings": settings,
	})
}

// UploadLogo stores a new logo image and points the caller's settings at it
func UploadLogo(c *fiber.Ctx) error {
	claims := c.Locals("user").(*jwt.Claims)

	file, err := c.FormFile("logo")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No logo image provided",
		})
	}

	if err := image.Validate(file); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	buf, contentType, err := image.ProcessImage(file)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	key := storage.MakeKey("logos", file.Filename)
	url, err := blobStore.Save(c.Context(), key, buf, contentType)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not save file",
		})
	}

	var settings model.UserSettings
	err = database.GetDB().Where("user_id = ?", claims.UserID).First(&settings).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		settings = model.DefaultSettings(claims.UserID)
		settings.LogoURL = url
		if err := database.GetDB().Create(&settings).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Could not create settings",
			})
		}
		return c.JSON(fiber.Map{"logo_url": url})
	} else if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not fetch settings",
		})
	}

	oldLogo := settings.LogoURL
	if err := database.GetDB().Model(&settings).Update("logo_url", url).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not update settings",
		})
	}

	if oldLogo != "" {
		if err := blobStore.Delete(c.Context(), oldLogo); err != nil {
			log.Printf("Could not delete old logo: %v", err)
		}
	}

	return c.JSON(fiber.Map{"logo_url": url})
}
