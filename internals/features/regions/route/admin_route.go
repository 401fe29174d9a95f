// file: internals/features/regions/route/admin_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"personel_backend/internals/constants"
	"personel_backend/internals/features/regions/controller"
	"personel_backend/internals/features/regions/repository"
	authMiddleware "personel_backend/internals/middlewares/auth"
)

// RegionAdminRoutes mounts under /api/a. Reads are region-scoped,
// writes are admin only.
func RegionAdminRoutes(admin fiber.Router, db *gorm.DB) {
	RegisterRegionRoutes(admin, controller.NewRegionController(repository.NewRegionRepository(db)))
}

// RegisterRegionRoutes binds handlers to any RegionStore.
func RegisterRegionRoutes(admin fiber.Router, ctrl *controller.RegionController) {
	adminOnly := authMiddleware.OnlyRoles(constants.RoleErrorAdmin("region management"), constants.AdminOnly...)

	regions := admin.Group("/regions")
	regions.Get("/", ctrl.List)
	regions.Post("/", adminOnly, ctrl.Create)

	one := admin.Group("/regions/:region_id", authMiddleware.RequireRegionScope())
	one.Get("/", ctrl.GetByID)
	one.Patch("/", adminOnly, ctrl.Patch)
	one.Delete("/", adminOnly, ctrl.Delete)
}
