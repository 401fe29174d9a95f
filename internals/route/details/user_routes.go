package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	userRoute "personel_backend/internals/features/users/user/route"
)

// UserAdminRoutes: account management, /api/a/users (admin only).
func UserAdminRoutes(admin fiber.Router, db *gorm.DB) {
	userRoute.UserAdminRoutes(admin, db)
}
