// file: internals/features/users/user/route/user_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"personel_backend/internals/constants"
	userController "personel_backend/internals/features/users/user/controller"
	authMiddleware "personel_backend/internals/middlewares/auth"
)

// UserAdminRoutes mounts account management under /api/a (admin only).
func UserAdminRoutes(admin fiber.Router, db *gorm.DB) {
	ctrl := userController.NewUserController(db)

	users := admin.Group("/users", authMiddleware.OnlyRoles(constants.RoleErrorAdmin("user management"), constants.AdminOnly...))
	users.Get("/", ctrl.List)
	users.Post("/", ctrl.Create)
	users.Get("/:id", ctrl.GetByID)
	users.Patch("/:id", ctrl.Patch)
	users.Post("/:id/password", ctrl.ResetPassword)
	users.Delete("/:id", ctrl.Delete)
}
