// file: internals/features/users/user/dto/user_dto.go
package dto

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"personel_backend/internals/constants"
	uModel "personel_backend/internals/features/users/user/model"
)

var ErrRegionRequired = errors.New("region_id is required for coordinator and staff accounts")

/* =======================================================
   REQUEST DTOs
   ======================================================= */

// CreateUserRequest is used by admins; the password is hashed in the controller.
type CreateUserRequest struct {
	UserName string     `json:"user_name" validate:"required,min=3,max=50"`
	Email    string     `json:"email" validate:"required,email,max=255"`
	Password string     `json:"password" validate:"required,min=8,max=72"`
	Role     string     `json:"role" validate:"required,oneof=admin coordinator staff"`
	RegionID *uuid.UUID `json:"region_id"`
	IsActive *bool      `json:"is_active,omitempty"`
}

func (r *CreateUserRequest) Normalize() {
	r.UserName = strings.TrimSpace(r.UserName)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.Role = strings.ToLower(strings.TrimSpace(r.Role))
}

// CheckRegion enforces that non-admin accounts carry a region.
func (r *CreateUserRequest) CheckRegion() error {
	return checkRegion(r.Role, r.RegionID)
}

func checkRegion(role string, regionID *uuid.UUID) error {
	if role != constants.RoleAdmin && (regionID == nil || *regionID == uuid.Nil) {
		return ErrRegionRequired
	}
	return nil
}

func (r *CreateUserRequest) ToModel(hashed string) *uModel.UserModel {
	m := &uModel.UserModel{
		UserName: r.UserName,
		Email:    r.Email,
		Password: hashed,
		Role:     r.Role,
		RegionID: r.RegionID,
		IsActive: true,
	}
	if r.IsActive != nil {
		m.IsActive = *r.IsActive
	}
	return m
}

// UpdateUserRequest is a partial update; omitted fields stay as they are.
type UpdateUserRequest struct {
	UserName    *string    `json:"user_name,omitempty" validate:"omitempty,min=3,max=50"`
	Email       *string    `json:"email,omitempty" validate:"omitempty,email,max=255"`
	Role        *string    `json:"role,omitempty" validate:"omitempty,oneof=admin coordinator staff"`
	RegionID    *uuid.UUID `json:"region_id,omitempty"`
	ClearRegion bool       `json:"clear_region,omitempty"`
	IsActive    *bool      `json:"is_active,omitempty"`
}

func (r *UpdateUserRequest) Normalize() {
	if r.UserName != nil {
		v := strings.TrimSpace(*r.UserName)
		r.UserName = &v
	}
	if r.Email != nil {
		v := strings.ToLower(strings.TrimSpace(*r.Email))
		r.Email = &v
	}
	if r.Role != nil {
		v := strings.ToLower(strings.TrimSpace(*r.Role))
		r.Role = &v
	}
}

// Apply merges the request into current and returns the column updates.
// The merged role/region pair must still satisfy the region rule.
func (r *UpdateUserRequest) Apply(current *uModel.UserModel) (map[string]any, error) {
	role := current.Role
	region := current.RegionID
	up := map[string]any{}

	if r.UserName != nil {
		up["user_name"] = *r.UserName
	}
	if r.Email != nil {
		up["email"] = *r.Email
	}
	if r.Role != nil {
		role = *r.Role
		up["role"] = role
	}
	switch {
	case r.ClearRegion:
		region = nil
		up["region_id"] = nil
	case r.RegionID != nil:
		region = r.RegionID
		up["region_id"] = *r.RegionID
	}
	if r.IsActive != nil {
		up["is_active"] = *r.IsActive
	}
	if err := checkRegion(role, region); err != nil {
		return nil, err
	}
	return up, nil
}

type ResetPasswordRequest struct {
	NewPassword string `json:"new_password" validate:"required,min=8,max=72"`
}

type UserListQuery struct {
	Q        string `query:"q"`
	Role     string `query:"role" validate:"omitempty,oneof=admin coordinator staff"`
	RegionID string `query:"region_id" validate:"omitempty,uuid"`
	IsActive *bool  `query:"is_active"`
}

/* =======================================================
   RESPONSE DTO
   ======================================================= */

type UserResponse struct {
	ID        uuid.UUID  `json:"id"`
	UserName  string     `json:"user_name"`
	Email     string     `json:"email"`
	Role      string     `json:"role"`
	RegionID  *uuid.UUID `json:"region_id,omitempty"`
	IsActive  bool       `json:"is_active"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

func ToUserResponse(u *uModel.UserModel) UserResponse {
	return UserResponse{
		ID:        u.ID,
		UserName:  u.UserName,
		Email:     u.Email,
		Role:      u.Role,
		RegionID:  u.RegionID,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func ToUserResponses(rows []uModel.UserModel) []UserResponse {
	out := make([]UserResponse, 0, len(rows))
	for i := range rows {
		out = append(out, ToUserResponse(&rows[i]))
	}
	return out
}
