// file: internals/features/users/user/controller/user_controller.go
package controller

import (
	"errors"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	authService "personel_backend/internals/features/users/auth/service"
	"personel_backend/internals/features/users/user/dto"
	"personel_backend/internals/features/users/user/model"
	helper "personel_backend/internals/helpers"
)

type UserController struct {
	DB *gorm.DB
}

func NewUserController(db *gorm.DB) *UserController {
	return &UserController{DB: db}
}

func (uc *UserController) load(c *fiber.Ctx) (*model.UserModel, error) {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return nil, err
	}
	var u model.UserModel
	if err := uc.DB.WithContext(c.UserContext()).First(&u, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, helper.JsonError(c, fiber.StatusNotFound, "User not found")
		}
		return nil, helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load user")
	}
	return &u, nil
}

func (uc *UserController) regionExists(c *fiber.Ctx, id *uuid.UUID) (bool, error) {
	if id == nil {
		return true, nil
	}
	var n int64
	err := uc.DB.WithContext(c.UserContext()).Table("regions").
		Where("region_id = ? AND region_deleted_at IS NULL", *id).
		Count(&n).Error
	return n > 0, err
}

func writeUserWriteError(c *fiber.Ctx, err error) error {
	if helper.IsUniqueViolation(err) {
		return helper.JsonError(c, fiber.StatusConflict, "user_name or email already in use")
	}
	return helper.WritePGError(c, err)
}

// GET /api/a/users?q=&role=&region_id=&is_active=
func (uc *UserController) List(c *fiber.Ctx) error {
	var q dto.UserListQuery
	if err := c.QueryParser(&q); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid query")
	}
	if err := helper.Validate.Struct(&q); err != nil {
		return helper.JsonValidationError(c, helper.ValidationFieldErrors(err))
	}
	paging := helper.ResolvePaging(c, 20, 100)

	tx := uc.DB.WithContext(c.UserContext()).Model(&model.UserModel{})
	if s := strings.TrimSpace(q.Q); s != "" {
		needle := "%" + s + "%"
		tx = tx.Where("user_name ILIKE ? OR email ILIKE ?", needle, needle)
	}
	if q.Role != "" {
		tx = tx.Where("role = ?", q.Role)
	}
	if q.RegionID != "" {
		tx = tx.Where("region_id = ?", q.RegionID)
	}
	if q.IsActive != nil {
		tx = tx.Where("is_active = ?", *q.IsActive)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to count users")
	}
	var users []model.UserModel
	if err := tx.Order("user_name ASC").Offset(paging.Offset).Limit(paging.Limit).Find(&users).Error; err != nil {
		log.Println("[ERROR] Failed to fetch users:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to retrieve users")
	}
	pg := helper.BuildPagination(total, paging, len(users))
	return helper.JsonList(c, "ok", dto.ToUserResponses(users), &pg)
}

// GET /api/a/users/:id
func (uc *UserController) GetByID(c *fiber.Ctx) error {
	u, err := uc.load(c)
	if u == nil {
		return err
	}
	return helper.JsonOK(c, "ok", dto.ToUserResponse(u))
}

// POST /api/a/users
func (uc *UserController) Create(c *fiber.Ctx) error {
	var req dto.CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Normalize()
	if err := helper.Validate.Struct(&req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationFieldErrors(err))
	}
	if err := req.CheckRegion(); err != nil {
		return helper.JsonValidationError(c, map[string][]string{"region_id": {err.Error()}})
	}
	if ok, err := uc.regionExists(c, req.RegionID); err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to check region")
	} else if !ok {
		return helper.JsonError(c, fiber.StatusNotFound, "Region not found")
	}

	hashed, err := authService.HashPassword(req.Password)
	if errors.Is(err, authService.ErrWeakPassword) {
		return helper.JsonValidationError(c, map[string][]string{"password": {err.Error()}})
	}
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to hash password")
	}

	u := req.ToModel(hashed)
	if err := uc.DB.WithContext(c.UserContext()).Create(u).Error; err != nil {
		return writeUserWriteError(c, err)
	}
	log.Printf("[INFO] user created id=%s role=%s", u.ID, u.Role)
	return helper.JsonCreated(c, "User created", dto.ToUserResponse(u))
}

// PATCH /api/a/users/:id
func (uc *UserController) Patch(c *fiber.Ctx) error {
	u, err := uc.load(c)
	if u == nil {
		return err
	}
	var req dto.UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Normalize()
	if err := helper.Validate.Struct(&req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationFieldErrors(err))
	}
	updates, err := req.Apply(u)
	if err != nil {
		return helper.JsonValidationError(c, map[string][]string{"region_id": {err.Error()}})
	}
	if ok, err := uc.regionExists(c, req.RegionID); err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to check region")
	} else if !ok {
		return helper.JsonError(c, fiber.StatusNotFound, "Region not found")
	}
	if len(updates) == 0 {
		return helper.JsonUpdated(c, "Nothing to update", dto.ToUserResponse(u))
	}

	db := uc.DB.WithContext(c.UserContext())
	if err := db.Model(u).Updates(updates).Error; err != nil {
		return writeUserWriteError(c, err)
	}
	if err := db.First(u, "id = ?", u.ID).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to reload user")
	}
	return helper.JsonUpdated(c, "User updated", dto.ToUserResponse(u))
}

// POST /api/a/users/:id/password
func (uc *UserController) ResetPassword(c *fiber.Ctx) error {
	u, err := uc.load(c)
	if u == nil {
		return err
	}
	var req dto.ResetPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := helper.Validate.Struct(&req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationFieldErrors(err))
	}
	hashed, err := authService.HashPassword(req.NewPassword)
	if errors.Is(err, authService.ErrWeakPassword) {
		return helper.JsonValidationError(c, map[string][]string{"new_password": {err.Error()}})
	}
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to hash password")
	}
	if err := uc.DB.WithContext(c.UserContext()).Model(u).Update("password", hashed).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update password")
	}
	log.Printf("[INFO] password reset for user id=%s", u.ID)
	return helper.JsonUpdated(c, "Password reset", nil)
}

// DELETE /api/a/users/:id (soft delete; not allowed on yourself)
func (uc *UserController) Delete(c *fiber.Ctx) error {
	u, err := uc.load(c)
	if u == nil {
		return err
	}
	if self, err := helper.GetUserIDFromToken(c); err == nil && self == u.ID {
		return helper.JsonError(c, fiber.StatusConflict, "You cannot delete your own account")
	}
	if err := uc.DB.WithContext(c.UserContext()).Delete(u).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete user")
	}
	return helper.JsonDeleted(c, "User deleted", fiber.Map{"id": u.ID})
}
