// file: internals/route/index.go
package routes

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"personel_backend/internals/configs"
	"personel_backend/internals/constants"
	authRepo "personel_backend/internals/features/users/auth/repository"
	helperOSS "personel_backend/internals/helpers/oss"
	"personel_backend/internals/middlewares"
	authMiddleware "personel_backend/internals/middlewares/auth"
	routeDetails "personel_backend/internals/route/details"
)

var startTime time.Time

// SetupRoutes mounts every route. blobs may be nil when object storage
// is not configured; upload endpoints then answer 503.
func SetupRoutes(app *fiber.App, db *gorm.DB, blobs helperOSS.BlobStore) {
	startTime = time.Now()

	log.Println("[INFO] Setting up BaseRoutes...")
	BaseRoutes(app, db)

	// ===================== AUTH =====================
	log.Println("[INFO] Setting up AuthRoutes...")
	routeDetails.AuthRoutes(app, db)

	// ===================== ADMIN (coordinator + admin, region scoped) =====================
	log.Println("[INFO] Setting up ADMIN group (Auth + RoleCheck)...")
	admin := app.Group("/api/a",
		middlewares.GlobalRateLimiter(),
		authMiddleware.AuthMiddleware(authRepo.NewAuthRepository(db), configs.JWTSecret),
		authMiddleware.OnlyRoles(constants.RoleErrorCoordinator("this area"), constants.CoordinatorAndAbove...),
	)

	// ===================== MOUNT ROUTES =====================
	log.Println("[INFO] Mounting User routes...")
	routeDetails.UserAdminRoutes(admin, db)

	log.Println("[INFO] Mounting Personnel routes...")
	routeDetails.PersonnelAdminRoutes(admin, db, blobs)
}
