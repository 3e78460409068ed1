package controller

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/rdogf/AppImovel/internal/middleware"
	"github.com/rdogf/AppImovel/internal/service"
	"github.com/rdogf/AppImovel/pkg/database"
)

func photoService() *service.PhotoService {
	return service.NewPhotoService(database.GetDB())
}

type ReorderInput struct {
	PhotoIDs []uint `json:"photo_ids" validate:"required"`
}

// ReorderPhotos replaces the property's photo ranking with the supplied
// sequence. Ownership is enforced by the route middleware.
func ReorderPhotos(c *fiber.Ctx) error {
	propertyID, err := paramID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid property ID",
		})
	}

	input := new(ReorderInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid input",
		})
	}

	if err := photoService().Reorder(propertyID, input.PhotoIDs); err != nil {
		return serviceError(c, err)
	}

	return c.JSON(fiber.Map{"success": true})
}

// DeletePhoto removes one photo row and its stored file
func DeletePhoto(c *fiber.Ctx) error {
	actor := middleware.ActorFromCtx(c)

	photoID, err := paramID(c, "photo_id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid photo ID",
		})
	}

	photo, err := photoService().GetPhoto(photoID)
	if err != nil {
		return serviceError(c, err)
	}

	if !actor.CanMutate(&photo.Property) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Not authorized to delete this photo",
		})
	}

	if err := photoService().DeletePhoto(photo.ID); err != nil {
		return serviceError(c, err)
	}

	// best effort: a stale blob is better than a dangling DB row
	if err := blobStore.Delete(c.Context(), photo.URL); err != nil {
		log.Printf("Could not delete photo file %s: %v", photo.URL, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// ListPropertyPhotos returns the photos of one property in display order
func ListPropertyPhotos(c *fiber.Ctx) error {
	propertyID, err := paramID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid property ID",
		})
	}

	photos, err := photoService().ListPhotos(propertyID)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(photos)
}
