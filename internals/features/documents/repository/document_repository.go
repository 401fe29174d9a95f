// file: internals/features/documents/repository/document_repository.go
package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"personel_backend/internals/features/documents/model"
)

// Scope picks which rows a list sees.
type Scope string

const (
	ScopeAll    Scope = "all"    // region rows plus globals
	ScopeRegion Scope = "region" // region rows only
	ScopeGlobal Scope = "global" // globals only
)

type ListFilter struct {
	RegionID *uuid.UUID // nil forces ScopeGlobal
	Scope    Scope
	Kind     string
	Q        string
	Offset   int
	Limit    int
}

type DocumentRepository struct {
	DB *gorm.DB
}

func NewDocumentRepository(db *gorm.DB) *DocumentRepository {
	return &DocumentRepository{DB: db}
}

func (r *DocumentRepository) List(ctx context.Context, f ListFilter) ([]model.DocumentTemplateModel, int64, error) {
	tx := r.DB.WithContext(ctx).Model(&model.DocumentTemplateModel{})
	switch {
	case f.RegionID == nil || f.Scope == ScopeGlobal:
		tx = tx.Where("document_template_region_id IS NULL")
	case f.Scope == ScopeRegion:
		tx = tx.Where("document_template_region_id = ?", *f.RegionID)
	default:
		tx = tx.Where("document_template_region_id = ? OR document_template_region_id IS NULL", *f.RegionID)
	}
	if f.Kind != "" {
		tx = tx.Where("document_template_kind = ?", f.Kind)
	}
	if s := strings.TrimSpace(f.Q); s != "" {
		tx = tx.Where("document_template_name ILIKE ?", "%"+s+"%")
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var rows []model.DocumentTemplateModel
	if err := tx.Order("document_template_name ASC").Offset(f.Offset).Limit(f.Limit).Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// FindByID returns (nil, nil) when missing.
func (r *DocumentRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.DocumentTemplateModel, error) {
	var row model.DocumentTemplateModel
	err := r.DB.WithContext(ctx).Where("document_template_id = ?", id).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *DocumentRepository) Insert(ctx context.Context, row *model.DocumentTemplateModel) error {
	return r.DB.WithContext(ctx).Create(row).Error
}

// Update writes the columns and reloads row in place.
func (r *DocumentRepository) Update(ctx context.Context, row *model.DocumentTemplateModel, updates map[string]any) error {
	db := r.DB.WithContext(ctx)
	if err := db.Model(row).Updates(updates).Error; err != nil {
		return err
	}
	return db.Where("document_template_id = ?", row.DocumentTemplateID).Take(row).Error
}

func (r *DocumentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.DB.WithContext(ctx).Where("document_template_id = ?", id).Delete(&model.DocumentTemplateModel{}).Error
}
