// file: internals/features/personnel/dto/personnel_dto.go
package dto

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"personel_backend/internals/features/personnel/model"
	"personel_backend/internals/helpers/dbtime"
)

/* =========================
   Requests
   ========================= */

type PersonnelCreateRequest struct {
	FullName string   `json:"personnel_full_name" validate:"required,min=2,max=150"`
	Title    *string  `json:"personnel_title" validate:"omitempty,max=100"`
	Email    *string  `json:"personnel_email" validate:"omitempty,email,max=150"`
	Phone    *string  `json:"personnel_phone" validate:"omitempty,max=30"`
	HireDate *string  `json:"personnel_hire_date" validate:"omitempty,isodate"`
	IsActive *bool    `json:"personnel_is_active"`
	Skills   []string `json:"personnel_skills" validate:"omitempty,max=30,dive,min=1,max=60"`
}

// Patch semantics: nil = untouched, "" = clear (for optional columns).
type PersonnelUpdateRequest struct {
	FullName *string   `json:"personnel_full_name" validate:"omitempty,min=2,max=150"`
	Title    *string   `json:"personnel_title" validate:"omitempty,max=100"`
	Email    *string   `json:"personnel_email" validate:"omitempty,email,max=150"`
	Phone    *string   `json:"personnel_phone" validate:"omitempty,max=30"`
	HireDate *string   `json:"personnel_hire_date" validate:"omitempty,isodate"`
	IsActive *bool     `json:"personnel_is_active"`
	Skills   *[]string `json:"personnel_skills" validate:"omitempty,max=30,dive,min=1,max=60"`
}

type PersonnelListQuery struct {
	Q        string `query:"q"`
	IsActive *bool  `query:"is_active"`
	Skill    string `query:"skill"`
	Sort     string `query:"sort"` // name|hire_date|created_at
}

func trimPtr(p *string) *string {
	if p == nil {
		return nil
	}
	s := strings.TrimSpace(*p)
	return &s
}

func emptyToNil(p *string) *string {
	if p == nil || *p == "" {
		return nil
	}
	return p
}

// NormalizeSkills trims, lower-cases and de-duplicates; order is sorted.
func NormalizeSkills(in []string) []string {
	seen := map[string]bool{}
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.ToLower(strings.TrimSpace(s))
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

func (r *PersonnelCreateRequest) Normalize() {
	r.FullName = strings.TrimSpace(r.FullName)
	r.Title = emptyToNil(trimPtr(r.Title))
	r.Email = emptyToNil(trimPtr(r.Email))
	if r.Email != nil {
		e := strings.ToLower(*r.Email)
		r.Email = &e
	}
	r.Phone = emptyToNil(trimPtr(r.Phone))
	r.HireDate = emptyToNil(trimPtr(r.HireDate))
	r.Skills = NormalizeSkills(r.Skills)
}

func (r *PersonnelUpdateRequest) Normalize() {
	r.FullName = trimPtr(r.FullName)
	r.Title = trimPtr(r.Title)
	r.Email = trimPtr(r.Email)
	if r.Email != nil {
		e := strings.ToLower(*r.Email)
		r.Email = &e
	}
	r.Phone = trimPtr(r.Phone)
	r.HireDate = trimPtr(r.HireDate)
	if r.Skills != nil {
		s := NormalizeSkills(*r.Skills)
		r.Skills = &s
	}
}

func parseHireDate(p *string) *time.Time {
	if p == nil || *p == "" {
		return nil
	}
	t, err := dbtime.ParseDate(*p)
	if err != nil {
		return nil
	}
	return &t
}

func (r *PersonnelCreateRequest) ToModel(regionID uuid.UUID) *model.PersonnelModel {
	m := &model.PersonnelModel{
		PersonnelRegionID: regionID,
		PersonnelFullName: r.FullName,
		PersonnelTitle:    r.Title,
		PersonnelEmail:    r.Email,
		PersonnelPhone:    r.Phone,
		PersonnelHireDate: parseHireDate(r.HireDate),
		PersonnelIsActive: true,
		PersonnelSkills:   pq.StringArray(r.Skills),
	}
	if r.IsActive != nil {
		m.PersonnelIsActive = *r.IsActive
	}
	return m
}

// ToUpdates maps present fields to columns; "" clears optional columns.
func (r *PersonnelUpdateRequest) ToUpdates() map[string]any {
	out := map[string]any{}
	if r.FullName != nil {
		out["personnel_full_name"] = *r.FullName
	}
	optional := map[string]*string{
		"personnel_title": r.Title,
		"personnel_email": r.Email,
		"personnel_phone": r.Phone,
	}
	for col, v := range optional {
		if v == nil {
			continue
		}
		if *v == "" {
			out[col] = nil
		} else {
			out[col] = *v
		}
	}
	if r.HireDate != nil {
		if d := parseHireDate(r.HireDate); d != nil {
			out["personnel_hire_date"] = *d
		} else {
			out["personnel_hire_date"] = nil
		}
	}
	if r.IsActive != nil {
		out["personnel_is_active"] = *r.IsActive
	}
	if r.Skills != nil {
		out["personnel_skills"] = pq.StringArray(*r.Skills)
	}
	return out
}

/* =========================
   Response
   ========================= */

type PersonnelResponse struct {
	PersonnelID        uuid.UUID `json:"personnel_id"`
	PersonnelRegionID  uuid.UUID `json:"personnel_region_id"`
	PersonnelFullName  string    `json:"personnel_full_name"`
	PersonnelTitle     *string   `json:"personnel_title,omitempty"`
	PersonnelEmail     *string   `json:"personnel_email,omitempty"`
	PersonnelPhone     *string   `json:"personnel_phone,omitempty"`
	PersonnelHireDate  *string   `json:"personnel_hire_date,omitempty"`
	PersonnelIsActive  bool      `json:"personnel_is_active"`
	PersonnelSkills    []string  `json:"personnel_skills"`
	PersonnelPhotoURL  *string   `json:"personnel_photo_url,omitempty"`
	PersonnelCreatedAt time.Time `json:"personnel_created_at"`
	PersonnelUpdatedAt time.Time `json:"personnel_updated_at"`
}

func ToPersonnelResponse(m *model.PersonnelModel) PersonnelResponse {
	resp := PersonnelResponse{
		PersonnelID:        m.PersonnelID,
		PersonnelRegionID:  m.PersonnelRegionID,
		PersonnelFullName:  m.PersonnelFullName,
		PersonnelTitle:     m.PersonnelTitle,
		PersonnelEmail:     m.PersonnelEmail,
		PersonnelPhone:     m.PersonnelPhone,
		PersonnelIsActive:  m.PersonnelIsActive,
		PersonnelSkills:    []string(m.PersonnelSkills),
		PersonnelPhotoURL:  m.PersonnelPhotoURL,
		PersonnelCreatedAt: m.PersonnelCreatedAt,
		PersonnelUpdatedAt: m.PersonnelUpdatedAt,
	}
	if resp.PersonnelSkills == nil {
		resp.PersonnelSkills = []string{}
	}
	if m.PersonnelHireDate != nil {
		d := m.PersonnelHireDate.Format("2006-01-02")
		resp.PersonnelHireDate = &d
	}
	return resp
}

func ToPersonnelResponses(rows []model.PersonnelModel) []PersonnelResponse {
	out := make([]PersonnelResponse, 0, len(rows))
	for i := range rows {
		out = append(out, ToPersonnelResponse(&rows[i]))
	}
	return out
}
