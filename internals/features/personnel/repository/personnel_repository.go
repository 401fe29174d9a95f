// file: internals/features/personnel/repository/personnel_repository.go
package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"personel_backend/internals/features/personnel/model"
)

type ListFilter struct {
	RegionID uuid.UUID
	Q        string
	IsActive *bool
	Skill    string
	Sort     string // name | hire_date | created_at
	Offset   int
	Limit    int
}

type PersonnelRepository struct {
	DB *gorm.DB
}

func NewPersonnelRepository(db *gorm.DB) *PersonnelRepository {
	return &PersonnelRepository{DB: db}
}

func (r *PersonnelRepository) List(ctx context.Context, f ListFilter) ([]model.PersonnelModel, int64, error) {
	tx := r.DB.WithContext(ctx).
		Model(&model.PersonnelModel{}).
		Where("personnel_region_id = ?", f.RegionID)

	if s := strings.TrimSpace(f.Q); s != "" {
		needle := "%" + s + "%"
		tx = tx.Where(r.DB.
			Where("personnel_full_name ILIKE ?", needle).
			Or("personnel_title ILIKE ?", needle).
			Or("personnel_email ILIKE ?", needle))
	}
	if f.IsActive != nil {
		tx = tx.Where("personnel_is_active = ?", *f.IsActive)
	}
	if s := strings.ToLower(strings.TrimSpace(f.Skill)); s != "" {
		tx = tx.Where("? = ANY(personnel_skills)", s)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	order := "personnel_full_name ASC"
	switch strings.ToLower(strings.TrimSpace(f.Sort)) {
	case "hire_date":
		order = "personnel_hire_date DESC NULLS LAST"
	case "created_at":
		order = "personnel_created_at DESC"
	}

	var rows []model.PersonnelModel
	if err := tx.Order(order).Offset(f.Offset).Limit(f.Limit).Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func (r *PersonnelRepository) RegionExists(ctx context.Context, regionID uuid.UUID) (bool, error) {
	var n int64
	err := r.DB.WithContext(ctx).
		Table("regions").
		Where("region_id = ? AND region_deleted_at IS NULL", regionID).
		Count(&n).Error
	return n > 0, err
}

// FindByID returns (nil, nil) for missing or soft-deleted rows.
func (r *PersonnelRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.PersonnelModel, error) {
	var row model.PersonnelModel
	err := r.DB.WithContext(ctx).Where("personnel_id = ?", id).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *PersonnelRepository) Insert(ctx context.Context, row *model.PersonnelModel) error {
	return r.DB.WithContext(ctx).Create(row).Error
}

// Update writes the columns and reloads row in place.
func (r *PersonnelRepository) Update(ctx context.Context, row *model.PersonnelModel, updates map[string]any) error {
	db := r.DB.WithContext(ctx)
	if err := db.Model(row).Updates(updates).Error; err != nil {
		return err
	}
	return db.Where("personnel_id = ?", row.PersonnelID).Take(row).Error
}

// SetPhoto points the row at a stored object; nil clears both columns.
func (r *PersonnelRepository) SetPhoto(ctx context.Context, id uuid.UUID, url, objectKey *string) error {
	return r.DB.WithContext(ctx).
		Model(&model.PersonnelModel{}).
		Where("personnel_id = ?", id).
		Updates(map[string]any{
			"personnel_photo_url":        url,
			"personnel_photo_object_key": objectKey,
		}).Error
}

func (r *PersonnelRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.DB.WithContext(ctx).Where("personnel_id = ?", id).Delete(&model.PersonnelModel{}).Error
}
