// file: internals/features/regions/model/region_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RegionModel struct {
	RegionID       uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:region_id"   json:"region_id"`
	RegionName     string    `gorm:"type:varchar(120);not null;uniqueIndex;column:region_name"          json:"region_name"`
	RegionCode     *string   `gorm:"type:varchar(20);column:region_code"                                json:"region_code,omitempty"`
	RegionIsActive bool      `gorm:"not null;default:true;column:region_is_active"                      json:"region_is_active"`

	RegionCreatedAt time.Time      `gorm:"column:region_created_at;autoCreateTime"                           json:"region_created_at"`
	RegionUpdatedAt time.Time      `gorm:"column:region_updated_at;autoUpdateTime"                           json:"region_updated_at"`
	RegionDeletedAt gorm.DeletedAt `gorm:"column:region_deleted_at;index"                                    json:"region_deleted_at,omitempty"`
}

func (RegionModel) TableName() string { return "regions" }
