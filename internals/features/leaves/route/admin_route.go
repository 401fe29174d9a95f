// file: internals/features/leaves/route/admin_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"personel_backend/internals/features/leaves/controller"
	"personel_backend/internals/features/leaves/repository"
	"personel_backend/internals/features/leaves/service"
	helperOSS "personel_backend/internals/helpers/oss"
	authMiddleware "personel_backend/internals/middlewares/auth"
)

// LeaveAdminRoutes mounts under /api/a (coordinator + admin).
func LeaveAdminRoutes(admin fiber.Router, db *gorm.DB, blobs helperOSS.BlobStore) {
	svc := service.NewLeaveService(repository.NewLeaveRepository(db))
	ctrl := controller.NewLeaveRequestController(svc, blobs)

	byRegion := admin.Group("/regions/:region_id/leaves", authMiddleware.RequireRegionScope())
	byRegion.Get("/", ctrl.List)
	byRegion.Post("/", ctrl.Create)

	l := admin.Group("/leaves")
	l.Get("/:id", ctrl.GetByID)
	l.Post("/:id/approve", ctrl.Approve)
	l.Post("/:id/reject", ctrl.Reject)
	l.Delete("/:id", ctrl.Delete)
}
