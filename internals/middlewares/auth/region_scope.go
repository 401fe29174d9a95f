package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	helper "personel_backend/internals/helpers"
	helperAuth "personel_backend/internals/helpers/auth"
)

// RequireRegionScope rejects non-admins acting on a :region_id path param
// other than the region in their token. Routes without the param pass.
func RequireRegionScope() fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := strings.TrimSpace(c.Params("region_id"))
		if raw == "" {
			return c.Next()
		}
		regionID, err := uuid.Parse(raw)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "region_id is not a valid uuid")
		}
		if !helperAuth.CanAccessRegion(c, regionID) {
			return helper.JsonError(c, fiber.StatusForbidden, "Forbidden: region is outside your scope")
		}
		return c.Next()
	}
}
