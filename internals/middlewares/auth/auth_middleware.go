// internals/middlewares/auth/auth_middleware.go
package auth

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	helperAuth "personel_backend/internals/helpers/auth"
)

// SessionChecker answers the two per-request questions that need the DB.
type SessionChecker interface {
	IsTokenBlacklisted(ctx context.Context, rawToken string) (bool, error)
	IsUserActive(ctx context.Context, userID uuid.UUID) (bool, error)
}

// AuthMiddleware verifies the bearer token and stores user_id, user_role,
// region_id and user_name in locals.
func AuthMiddleware(checker SessionChecker, secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		// 1) Authorization header or cookie
		tokenString, err := helperAuth.BearerToken(c)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - "+err.Error())
		}

		if secret == "" {
			log.Println("[ERROR] JWT_SECRET is empty")
			return fiber.NewError(fiber.StatusInternalServerError, "Missing JWT Secret")
		}

		// 2) signature + exp
		claims, err := helperAuth.ParseAccessToken(secret, tokenString, time.Now())
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - Token expired")
			}
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - Token parse error")
		}

		// 3) blacklist
		ctx := c.UserContext()
		blacklisted, err := checker.IsTokenBlacklisted(ctx, tokenString)
		if err != nil {
			log.Println("[ERROR] blacklist check:", err)
			return fiber.NewError(fiber.StatusInternalServerError, "Internal Server Error")
		}
		if blacklisted {
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - Token is blacklisted")
		}

		// 4) user still active
		userID, _ := uuid.Parse(claims.UserID)
		active, err := checker.IsUserActive(ctx, userID)
		if err != nil {
			log.Println("[ERROR] user status check:", err)
			return fiber.NewError(fiber.StatusInternalServerError, "Internal Server Error")
		}
		if !active {
			return fiber.NewError(fiber.StatusForbidden, "Account is deactivated")
		}

		c.Locals(helperAuth.LocUserID, userID.String())
		c.Locals(helperAuth.LocRole, claims.Role)
		c.Locals(helperAuth.LocRegionID, claims.RegionID)
		c.Locals(helperAuth.LocUserName, claims.UserName)
		c.Locals(helperAuth.LocToken, tokenString)
		c.Locals(helperAuth.LocTokenExp, claims.ExpiresAt.Time)
		return c.Next()
	}
}
