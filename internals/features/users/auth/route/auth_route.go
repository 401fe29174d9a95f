// file: internals/features/users/auth/route/auth_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"personel_backend/internals/configs"
	controller "personel_backend/internals/features/users/auth/controller"
	authRepo "personel_backend/internals/features/users/auth/repository"
	"personel_backend/internals/features/users/auth/service"
	rateLimiter "personel_backend/internals/middlewares"
	authMiddleware "personel_backend/internals/middlewares/auth"
)

// AuthRoutes mounts /api/auth. Login is public, the rest needs a token.
func AuthRoutes(app *fiber.App, db *gorm.DB) {
	repo := authRepo.NewAuthRepository(db)
	svc := service.NewAuthService(repo, configs.JWTSecret, configs.JWTTTL)
	authCtrl := controller.NewAuthController(repo, svc)

	baseAuth := app.Group("/api/auth")
	baseAuth.Post("/login", rateLimiter.LoginRateLimiter(), authCtrl.Login)

	// per-route: a Group("") middleware would also catch /login
	requireAuth := authMiddleware.AuthMiddleware(repo, configs.JWTSecret)
	baseAuth.Post("/logout", requireAuth, authCtrl.Logout)
	baseAuth.Get("/me", requireAuth, authCtrl.Me)
	baseAuth.Post("/change-password", requireAuth, authCtrl.ChangePassword)
}
