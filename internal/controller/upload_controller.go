package controller

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/rdogf/AppImovel/internal/model"
	"github.com/rdogf/AppImovel/pkg/database"
	"github.com/rdogf/AppImovel/pkg/utils/image"
	"github.com/rdogf/AppImovel/pkg/utils/storage"
)

const MaxPropertyPhotos = 16

var blobStore storage.Driver

// InitUploadController wires the configured blob-store driver. Must run
// before any upload route is served.
func InitUploadController(driver storage.Driver) {
	blobStore = driver
}

// UploadPropertyPhotos accepts one or more images in the "photos"
// multipart field, optimizes each and appends them to the property's
// sequence. Captions default to the filename without extension.
// Ownership is enforced by the route middleware.
func UploadPropertyPhotos(c *fiber.Ctx) error {
	propertyID, err := paramID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid property ID",
		})
	}

	form, err := c.MultipartForm()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No files uploaded",
		})
	}
	files := form.File["photos"]
	if len(files) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No files uploaded",
		})
	}

	var photoCount int64
	database.GetDB().Model(&model.Photo{}).
		Where("property_id = ?", propertyID).
		Count(&photoCount)

	if photoCount+int64(len(files)) > MaxPropertyPhotos {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("Maximum %d photos allowed", MaxPropertyPhotos),
		})
	}

	uploaded := make([]model.Photo, 0, len(files))
	for _, file := range files {
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

		key := storage.MakeKey(fmt.Sprintf("%d", propertyID), file.Filename)
		url, err := blobStore.Save(c.Context(), key, buf, contentType)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Could not save file",
			})
		}

		photo, err := photoService().AddPhoto(propertyID, url, storage.CaptionFromFilename(file.Filename))
		if err != nil {
			return serviceError(c, err)
		}
		uploaded = append(uploaded, *photo)
	}

	return c.JSON(fiber.Map{
		"success":  true,
		"uploaded": len(uploaded),
		"photos":   uploaded,
	})
}
