package helper

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// GetUserIDFromToken reads c.Locals("user_id").
// 401 when not logged in, 400 when the stored value is not a uuid.
func GetUserIDFromToken(c *fiber.Ctx) (uuid.UUID, error) {
	return uuidLocal(c, "user_id", "User is not logged in")
}

// GetRegionIDFromToken reads c.Locals("region_id"). Admins may have none.
func GetRegionIDFromToken(c *fiber.Ctx) (uuid.UUID, error) {
	return uuidLocal(c, "region_id", "No region in token")
}

func uuidLocal(c *fiber.Ctx, key, missing string) (uuid.UUID, error) {
	switch t := c.Locals(key).(type) {
	case uuid.UUID:
		if t == uuid.Nil {
			return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, missing)
		}
		return t, nil
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, missing)
		}
		id, err := uuid.Parse(s)
		if err != nil {
			return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, key+" in token is not valid")
		}
		return id, nil
	default:
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, missing)
	}
}

// ParseUUIDParam parses a path parameter as uuid (400 on failure).
func ParseUUIDParam(c *fiber.Ctx, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(c.Params(name)))
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, name+" is not a valid uuid")
	}
	return id, nil
}
