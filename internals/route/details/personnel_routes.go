package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	documentRoute "personel_backend/internals/features/documents/route"
	leaveRoute "personel_backend/internals/features/leaves/route"
	personnelRoute "personel_backend/internals/features/personnel/route"
	regionRoute "personel_backend/internals/features/regions/route"
	timesheetRoute "personel_backend/internals/features/timesheets/route"
	helperOSS "personel_backend/internals/helpers/oss"
)

// PersonnelAdminRoutes mounts every region-scoped feature on /api/a.
func PersonnelAdminRoutes(admin fiber.Router, db *gorm.DB, blobs helperOSS.BlobStore) {
	regionRoute.RegionAdminRoutes(admin, db)
	personnelRoute.PersonnelAdminRoutes(admin, db, blobs)
	timesheetRoute.TimesheetAdminRoutes(admin, db)
	leaveRoute.LeaveAdminRoutes(admin, db, blobs)
	documentRoute.DocumentAdminRoutes(admin, db, blobs)
}
