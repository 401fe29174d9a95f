// file: internals/features/regions/dto/region_dto.go
package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"personel_backend/internals/features/regions/model"
)

/* =========================
   Requests
   ========================= */

type RegionCreateRequest struct {
	RegionName     string  `json:"region_name" validate:"required,min=2,max=120"`
	RegionCode     *string `json:"region_code" validate:"omitempty,max=20"`
	RegionIsActive *bool   `json:"region_is_active"`
}

type RegionUpdateRequest struct {
	RegionName     *string `json:"region_name" validate:"omitempty,min=2,max=120"`
	RegionCode     *string `json:"region_code" validate:"omitempty,max=20"`
	RegionIsActive *bool   `json:"region_is_active"`
}

type RegionListQuery struct {
	Q        string `query:"q"`
	IsActive *bool  `query:"is_active"`
}

func (r *RegionCreateRequest) Normalize() {
	r.RegionName = strings.TrimSpace(r.RegionName)
	r.RegionCode = trimCode(r.RegionCode)
}

func (r *RegionUpdateRequest) Normalize() {
	if r.RegionName != nil {
		n := strings.TrimSpace(*r.RegionName)
		r.RegionName = &n
	}
	r.RegionCode = trimCode(r.RegionCode)
}

// codes are stored upper-case; blank clears
func trimCode(p *string) *string {
	if p == nil {
		return nil
	}
	s := strings.ToUpper(strings.TrimSpace(*p))
	return &s
}

func (r *RegionCreateRequest) ToModel() *model.RegionModel {
	m := &model.RegionModel{
		RegionName:     r.RegionName,
		RegionIsActive: true,
	}
	if r.RegionCode != nil && *r.RegionCode != "" {
		m.RegionCode = r.RegionCode
	}
	if r.RegionIsActive != nil {
		m.RegionIsActive = *r.RegionIsActive
	}
	return m
}

// ToUpdates returns only the columns present in the patch.
func (r *RegionUpdateRequest) ToUpdates() map[string]any {
	out := map[string]any{}
	if r.RegionName != nil {
		out["region_name"] = *r.RegionName
	}
	if r.RegionCode != nil {
		if *r.RegionCode == "" {
			out["region_code"] = nil
		} else {
			out["region_code"] = *r.RegionCode
		}
	}
	if r.RegionIsActive != nil {
		out["region_is_active"] = *r.RegionIsActive
	}
	return out
}

/* =========================
   Response
   ========================= */

type RegionResponse struct {
	RegionID        uuid.UUID `json:"region_id"`
	RegionName      string    `json:"region_name"`
	RegionCode      *string   `json:"region_code,omitempty"`
	RegionIsActive  bool      `json:"region_is_active"`
	RegionCreatedAt time.Time `json:"region_created_at"`
	RegionUpdatedAt time.Time `json:"region_updated_at"`
}

func ToRegionResponse(m *model.RegionModel) RegionResponse {
	return RegionResponse{
		RegionID:        m.RegionID,
		RegionName:      m.RegionName,
		RegionCode:      m.RegionCode,
		RegionIsActive:  m.RegionIsActive,
		RegionCreatedAt: m.RegionCreatedAt,
		RegionUpdatedAt: m.RegionUpdatedAt,
	}
}

func ToRegionResponses(rows []model.RegionModel) []RegionResponse {
	out := make([]RegionResponse, 0, len(rows))
	for i := range rows {
		out = append(out, ToRegionResponse(&rows[i]))
	}
	return out
}
