package middleware

import (
	"github.com/gofiber/fiber/v2"

	"github.com/rdogf/AppImovel/internal/model"
	"github.com/rdogf/AppImovel/pkg/database"
)

// CheckPropertyOwnership rejects the request early when the actor may not
// mutate the addressed property. Masters pass for every row.
func CheckPropertyOwnership() fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor := ActorFromCtx(c)
		propertyID := c.Params("id")

		var property model.Property
		if err := database.GetDB().First(&property, propertyID).Error; err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Property not found",
			})
		}

		if !actor.CanMutate(&property) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "You don't have permission to access this property",
			})
		}

		return c.Next()
	}
}

// RequireMaster gates the cross-tenant routes: user management and the
// inactive-listings view.
func RequireMaster() fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor := ActorFromCtx(c)
		if !actor.IsMaster() {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "Master role required",
			})
		}
		return c.Next()
	}
}
