package controller

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	authRepo "personel_backend/internals/features/users/auth/repository"
	"personel_backend/internals/features/users/auth/service"
	helper "personel_backend/internals/helpers"
	helperAuth "personel_backend/internals/helpers/auth"
)

type AuthController struct {
	Repo *authRepo.AuthRepository
	Svc  *service.AuthService
}

func NewAuthController(repo *authRepo.AuthRepository, svc *service.AuthService) *AuthController {
	return &AuthController{Repo: repo, Svc: svc}
}

type loginRequest struct {
	Identifier string `json:"identifier" validate:"required,min=3,max=255"`
	Password   string `json:"password" validate:"required"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8,max=72"`
}

// POST /api/auth/login
func (ac *AuthController) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := helper.Validate.Struct(&req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationFieldErrors(err))
	}

	res, err := ac.Svc.Login(c.UserContext(), req.Identifier, req.Password)
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		return helper.JsonError(c, fiber.StatusUnauthorized, "Identifier or password is wrong")
	case errors.Is(err, service.ErrUserInactive):
		return helper.JsonError(c, fiber.StatusForbidden, "Account is deactivated")
	case err != nil:
		log.Printf("[ERROR] login: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Login failed")
	}

	c.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    res.AccessToken,
		Expires:  res.ExpiresAt,
		HTTPOnly: true,
		Secure:   true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Path:     "/",
	})
	return helper.JsonOK(c, "Login successful", res)
}

// POST /api/auth/logout (protected)
func (ac *AuthController) Logout(c *fiber.Ctx) error {
	tok, _ := c.Locals(helperAuth.LocToken).(string)
	if strings.TrimSpace(tok) == "" {
		return helper.JsonError(c, fiber.StatusUnauthorized, "No token")
	}
	exp, _ := c.Locals(helperAuth.LocTokenExp).(time.Time)
	if err := ac.Svc.Logout(c.UserContext(), tok, exp); err != nil {
		log.Printf("[ERROR] logout blacklist: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Logout failed")
	}
	c.ClearCookie("access_token")
	return helper.JsonOK(c, "Logged out", nil)
}

// GET /api/auth/me (protected)
func (ac *AuthController) Me(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	user, err := ac.Repo.FindUserByID(c.UserContext(), userID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load user")
	}
	if user == nil {
		return helper.JsonError(c, fiber.StatusNotFound, "User not found")
	}
	return helper.JsonOK(c, "ok", user)
}

// POST /api/auth/change-password (protected)
func (ac *AuthController) ChangePassword(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	var req changePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := helper.Validate.Struct(&req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationFieldErrors(err))
	}

	switch err := ac.Svc.ChangePassword(c.UserContext(), userID, req.CurrentPassword, req.NewPassword); {
	case errors.Is(err, service.ErrInvalidCredentials):
		return helper.JsonError(c, fiber.StatusUnauthorized, "Current password is wrong")
	case errors.Is(err, service.ErrWeakPassword):
		return helper.JsonValidationError(c, map[string][]string{"new_password": {err.Error()}})
	case err != nil:
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update password")
	}
	return helper.JsonUpdated(c, "Password updated", nil)
}
