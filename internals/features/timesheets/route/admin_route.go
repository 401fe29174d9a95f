// file: internals/features/timesheets/route/admin_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"personel_backend/internals/constants"
	regionRepo "personel_backend/internals/features/regions/repository"
	"personel_backend/internals/features/timesheets/controller"
	"personel_backend/internals/features/timesheets/repository"
	"personel_backend/internals/features/timesheets/service"
	authMiddleware "personel_backend/internals/middlewares/auth"
)

// TimesheetAdminRoutes mounts under /api/a (coordinator + admin).
func TimesheetAdminRoutes(admin fiber.Router, db *gorm.DB) {
	svc := service.New(repository.NewGormStore(db))
	RegisterTimesheetRoutes(admin, controller.NewTimesheetController(svc, regionRepo.NewRegionRepository(db).Name))
}

// RegisterTimesheetRoutes binds handlers; split out so tests can mount a
// controller over the memory store.
func RegisterTimesheetRoutes(admin fiber.Router, ctrl *controller.TimesheetController) {
	// region-keyed (scope checked on the path param)
	scoped := admin.Group("/regions/:region_id/timesheets", authMiddleware.RequireRegionScope())
	scoped.Get("/templates", ctrl.GetLatestTemplates)
	scoped.Get("/months", ctrl.ListMonths)
	scoped.Post("/months", ctrl.StartMonth)
	scoped.Get("/months/:year_month", ctrl.GetMonthByKey)

	// month-keyed (scope checked against the loaded record)
	ts := admin.Group("/timesheets")
	ts.Get("/templates/defaults", ctrl.GetDefaultTemplates)
	ts.Get("/months/:id", ctrl.GetMonth)
	ts.Put("/months/:id/days", ctrl.PaintDays)
	ts.Put("/months/:id/days/:date", ctrl.PaintDay)
	ts.Post("/months/:id/save", ctrl.SaveMonth)
	ts.Post("/months/:id/reopen",
		authMiddleware.OnlyRoles(constants.RoleErrorAdmin("reopening a saved month"), constants.AdminOnly...),
		ctrl.ReopenMonth,
	)
	ts.Post("/months/:id/usage", ctrl.Usage)
	ts.Get("/months/:id/export", ctrl.ExportMonth)
}
