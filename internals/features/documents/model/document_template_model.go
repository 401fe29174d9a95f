// file: internals/features/documents/model/document_template_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DocumentKind string

const (
	KindContract DocumentKind = "contract"
	KindLetter   DocumentKind = "letter"
	KindForm     DocumentKind = "form"
)

// DocumentTemplateModel: a region-less row is a global template visible
// to every region.
type DocumentTemplateModel struct {
	DocumentTemplateID          uuid.UUID      `gorm:"column:document_template_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"document_template_id"`
	DocumentTemplateRegionID    *uuid.UUID     `gorm:"column:document_template_region_id;type:uuid;index" json:"document_template_region_id,omitempty"`
	DocumentTemplateName        string         `gorm:"column:document_template_name;type:varchar(150);not null" json:"document_template_name"`
	DocumentTemplateKind        DocumentKind   `gorm:"column:document_template_kind;type:varchar(20);not null;default:'contract'" json:"document_template_kind"`
	DocumentTemplateFileURL     string         `gorm:"column:document_template_file_url;type:text;not null" json:"document_template_file_url"`
	DocumentTemplateObjectKey   string         `gorm:"column:document_template_object_key;type:text;not null" json:"document_template_object_key"`
	DocumentTemplateContentType string         `gorm:"column:document_template_content_type;type:varchar(120);not null" json:"document_template_content_type"`
	DocumentTemplateSizeBytes   int64          `gorm:"column:document_template_size_bytes;not null;default:0" json:"document_template_size_bytes"`
	DocumentTemplateUploadedBy  *uuid.UUID     `gorm:"column:document_template_uploaded_by;type:uuid" json:"document_template_uploaded_by,omitempty"`
	DocumentTemplateCreatedAt   time.Time      `gorm:"column:document_template_created_at;autoCreateTime" json:"document_template_created_at"`
	DocumentTemplateUpdatedAt   time.Time      `gorm:"column:document_template_updated_at;autoUpdateTime" json:"document_template_updated_at"`
	DocumentTemplateDeletedAt   gorm.DeletedAt `gorm:"column:document_template_deleted_at;index" json:"-"`
}

func (DocumentTemplateModel) TableName() string { return "document_templates" }

func (m *DocumentTemplateModel) IsGlobal() bool { return m.DocumentTemplateRegionID == nil }

// ObjectDir is the OSS prefix for templates of a region, or the global one.
func ObjectDir(regionID *uuid.UUID) string {
	if regionID == nil {
		return "documents/global"
	}
	return "documents/" + regionID.String()
}
