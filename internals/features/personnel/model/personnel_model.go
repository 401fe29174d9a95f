// file: internals/features/personnel/model/personnel_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

type PersonnelModel struct {
	PersonnelID       uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:personnel_id" json:"personnel_id"`
	PersonnelRegionID uuid.UUID `gorm:"type:uuid;not null;index;column:personnel_region_id"                 json:"personnel_region_id"`

	PersonnelFullName string         `gorm:"type:varchar(150);not null;column:personnel_full_name" json:"personnel_full_name"`
	PersonnelTitle    *string        `gorm:"type:varchar(100);column:personnel_title"              json:"personnel_title,omitempty"`
	PersonnelEmail    *string        `gorm:"type:varchar(150);column:personnel_email"              json:"personnel_email,omitempty"`
	PersonnelPhone    *string        `gorm:"type:varchar(30);column:personnel_phone"               json:"personnel_phone,omitempty"`
	PersonnelHireDate *time.Time     `gorm:"type:date;column:personnel_hire_date"                  json:"personnel_hire_date,omitempty"`
	PersonnelIsActive bool           `gorm:"not null;default:true;column:personnel_is_active"      json:"personnel_is_active"`
	PersonnelSkills   pq.StringArray `gorm:"type:text[];column:personnel_skills"                   json:"personnel_skills"`

	PersonnelPhotoURL       *string `gorm:"type:text;column:personnel_photo_url"        json:"personnel_photo_url,omitempty"`
	PersonnelPhotoObjectKey *string `gorm:"type:text;column:personnel_photo_object_key" json:"personnel_photo_object_key,omitempty"`

	PersonnelCreatedAt time.Time      `gorm:"column:personnel_created_at;autoCreateTime" json:"personnel_created_at"`
	PersonnelUpdatedAt time.Time      `gorm:"column:personnel_updated_at;autoUpdateTime" json:"personnel_updated_at"`
	PersonnelDeletedAt gorm.DeletedAt `gorm:"column:personnel_deleted_at;index"          json:"personnel_deleted_at,omitempty"`
}

func (PersonnelModel) TableName() string { return "personnel" }
