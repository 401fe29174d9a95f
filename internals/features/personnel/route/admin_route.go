// file: internals/features/personnel/route/admin_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"personel_backend/internals/features/personnel/controller"
	"personel_backend/internals/features/personnel/repository"
	helperOSS "personel_backend/internals/helpers/oss"
	"personel_backend/internals/middlewares"
	authMiddleware "personel_backend/internals/middlewares/auth"
)

// PersonnelAdminRoutes mounts under /api/a (coordinator + admin).
func PersonnelAdminRoutes(admin fiber.Router, db *gorm.DB, blobs helperOSS.BlobStore) {
	RegisterPersonnelRoutes(admin, controller.NewPersonnelController(repository.NewPersonnelRepository(db), blobs))
}

// RegisterPersonnelRoutes binds handlers to any PersonnelStore.
func RegisterPersonnelRoutes(admin fiber.Router, ctrl *controller.PersonnelController) {

	byRegion := admin.Group("/regions/:region_id/personnel", authMiddleware.RequireRegionScope())
	byRegion.Get("/", ctrl.List)
	byRegion.Post("/", ctrl.Create)

	p := admin.Group("/personnel")
	p.Get("/:id", ctrl.GetByID)
	p.Patch("/:id", ctrl.Patch)
	p.Delete("/:id", ctrl.Delete)
	p.Post("/:id/photo", middlewares.UploadRateLimiter(), ctrl.UploadPhoto)
	p.Delete("/:id/photo", ctrl.DeletePhoto)
}
