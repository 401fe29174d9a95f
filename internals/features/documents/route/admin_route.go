// file: internals/features/documents/route/admin_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"personel_backend/internals/constants"
	"personel_backend/internals/features/documents/controller"
	"personel_backend/internals/features/documents/repository"
	helperOSS "personel_backend/internals/helpers/oss"
	"personel_backend/internals/middlewares"
	authMiddleware "personel_backend/internals/middlewares/auth"
)

// DocumentAdminRoutes mounts under /api/a.
func DocumentAdminRoutes(admin fiber.Router, db *gorm.DB, blobs helperOSS.BlobStore) {
	RegisterDocumentRoutes(admin, controller.NewDocumentTemplateController(repository.NewDocumentRepository(db), blobs))
}

// RegisterDocumentRoutes binds handlers; global uploads are admin only.
func RegisterDocumentRoutes(admin fiber.Router, ctrl *controller.DocumentTemplateController) {
	adminOnly := authMiddleware.OnlyRoles(constants.RoleErrorAdmin("global document templates"), constants.AdminOnly...)

	byRegion := admin.Group("/regions/:region_id/documents", authMiddleware.RequireRegionScope())
	byRegion.Get("/", ctrl.ListByRegion)
	byRegion.Post("/", middlewares.UploadRateLimiter(), ctrl.UploadRegional)

	d := admin.Group("/documents")
	d.Get("/global", ctrl.ListGlobal)
	d.Post("/global", adminOnly, middlewares.UploadRateLimiter(), ctrl.UploadGlobal)
	d.Get("/:id", ctrl.GetByID)
	d.Get("/:id/download", ctrl.Download)
	d.Patch("/:id", ctrl.Patch)
	d.Delete("/:id", ctrl.Delete)
}
