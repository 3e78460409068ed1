package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/rdogf/AppImovel/internal/model"
	"github.com/rdogf/AppImovel/internal/service"
	"github.com/rdogf/AppImovel/pkg/utils/jwt"
)

// AuthMiddleware resolves the request's actor from the Bearer token and
// stores the claims in locals under "user". No token, no access.
func AuthMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get("Authorization")
		if header == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Missing authorization header",
			})
		}

		tokenString, ok := strings.CutPrefix(header, "Bearer ")
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid authorization header",
			})
		}

		claims, err := jwt.ValidateToken(tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid or expired token",
			})
		}

		c.Locals("user", claims)
		return c.Next()
	}
}

// ActorFromCtx maps the stored claims onto the service-layer actor. The
// zero actor comes back when the route skipped AuthMiddleware.
func ActorFromCtx(c *fiber.Ctx) service.Actor {
	claims, ok := c.Locals("user").(*jwt.Claims)
	if !ok {
		return service.Actor{}
	}
	return service.Actor{ID: claims.UserID, Role: model.Role(claims.Role)}
}
