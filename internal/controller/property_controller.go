package controller

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/rdogf/AppImovel/internal/middleware"
	"github.com/rdogf/AppImovel/internal/model"
	"github.com/rdogf/AppImovel/internal/service"
	"github.com/rdogf/AppImovel/pkg/database"
)

func propertyService() *service.PropertyService {
	return service.NewPropertyService(database.GetDB())
}

func paramID(c *fiber.Ctx, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Params(name), 10, 32)
	return uint(id), err
}

// CreateProperty registers a new listing owned by the caller
func CreateProperty(c *fiber.Ctx) error {
	actor := middleware.ActorFromCtx(c)

	input := new(service.CreatePropertyInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid input",
		})
	}

	property, err := propertyService().Create(actor, *input)
	if err != nil {
		return serviceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(property)
}

// UpdateProperty overwrites a listing's descriptive fields and status
func UpdateProperty(c *fiber.Ctx) error {
	actor := middleware.ActorFromCtx(c)
	id, err := paramID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid property ID",
		})
	}

	input := new(service.UpdatePropertyInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid input",
		})
	}

	property, err := propertyService().Update(actor, id, *input)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(property)
}

// ListMyProperties lists the caller's active listings; masters see every
// owner's. Supports ?tipo=, ?bairro= and ?busca= filters.
func ListMyProperties(c *fiber.Ctx) error {
	actor := middleware.ActorFromCtx(c)

	filters := service.ListFilters{
		PropertyType: model.PropertyType(c.Query("tipo")),
		Neighborhood: c.Query("bairro"),
		Search:       c.Query("busca"),
	}

	properties, err := propertyService().List(actor, filters)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(properties)
}

// ListInactiveProperties is the master-only deactivated-listings view
func ListInactiveProperties(c *fiber.Ctx) error {
	actor := middleware.ActorFromCtx(c)

	properties, err := propertyService().List(actor, service.ListFilters{Inactive: true})
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(properties)
}

// GetProperty loads one listing with photos in display order
func GetProperty(c *fiber.Ctx) error {
	actor := middleware.ActorFromCtx(c)
	id, err := paramID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid property ID",
		})
	}

	property, err := propertyService().Get(actor, id)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(property)
}

// DeleteProperty soft-deletes: the listing disappears from every default
// view but keeps its row, photos and status.
func DeleteProperty(c *fiber.Ctx) error {
	actor := middleware.ActorFromCtx(c)
	id, err := paramID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid property ID",
		})
	}

	if err := propertyService().SoftDelete(actor, id); err != nil {
		return serviceError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// RestoreProperty brings a soft-deleted listing back into the active views
func RestoreProperty(c *fiber.Ctx) error {
	actor := middleware.ActorFromCtx(c)
	id, err := paramID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid property ID",
		})
	}

	if err := propertyService().Restore(actor, id); err != nil {
		return serviceError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// PermanentDeleteProperty removes the listing and its photos for good.
// Master only; there is no undo.
func PermanentDeleteProperty(c *fiber.Ctx) error {
	actor := middleware.ActorFromCtx(c)
	id, err := paramID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid property ID",
		})
	}

	if err := propertyService().PermanentDelete(actor, id); err != nil {
		return serviceError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// CloneProperty returns draft fields copied from an existing listing for
// pre-filling the new-listing form. Nothing is created here.
func CloneProperty(c *fiber.Ctx) error {
	actor := middleware.ActorFromCtx(c)
	id, err := paramID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid property ID",
		})
	}

	draft, err := propertyService().Clone(actor, id)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(draft)
}
