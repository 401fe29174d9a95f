// file: internals/features/regions/repository/region_repository.go
package repository

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"personel_backend/internals/features/regions/model"
)

type ListFilter struct {
	OnlyID   *uuid.UUID // coordinators see a single region
	Q        string
	IsActive *bool
	Offset   int
	Limit    int
}

type RegionRepository struct {
	DB *gorm.DB
}

func NewRegionRepository(db *gorm.DB) *RegionRepository {
	return &RegionRepository{DB: db}
}

func (r *RegionRepository) List(ctx context.Context, f ListFilter) ([]model.RegionModel, int64, error) {
	tx := r.DB.WithContext(ctx).Model(&model.RegionModel{})
	if f.OnlyID != nil {
		tx = tx.Where("region_id = ?", *f.OnlyID)
	}
	if s := strings.TrimSpace(f.Q); s != "" {
		needle := "%" + s + "%"
		tx = tx.Where(r.DB.Where("region_name ILIKE ?", needle).Or("region_code ILIKE ?", needle))
	}
	if f.IsActive != nil {
		tx = tx.Where("region_is_active = ?", *f.IsActive)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var rows []model.RegionModel
	if err := tx.Order("region_name ASC").Offset(f.Offset).Limit(f.Limit).Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// FindByID returns (nil, nil) when missing or soft-deleted.
func (r *RegionRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.RegionModel, error) {
	var row model.RegionModel
	err := r.DB.WithContext(ctx).Where("region_id = ?", id).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *RegionRepository) Insert(ctx context.Context, row *model.RegionModel) error {
	return r.DB.WithContext(ctx).Create(row).Error
}

// Update applies column updates; ok=false when the row is gone.
func (r *RegionRepository) Update(ctx context.Context, id uuid.UUID, updates map[string]any) (bool, error) {
	res := r.DB.WithContext(ctx).
		Model(&model.RegionModel{}).
		Where("region_id = ?", id).
		Updates(updates)
	return res.RowsAffected > 0, res.Error
}

// CountLivePersonnel counts personnel rows that are not soft-deleted.
func (r *RegionRepository) CountLivePersonnel(ctx context.Context, id uuid.UUID) (int64, error) {
	var n int64
	err := r.DB.WithContext(ctx).
		Table("personnel").
		Where("personnel_region_id = ? AND personnel_deleted_at IS NULL", id).
		Count(&n).Error
	return n, err
}

// Delete soft-deletes; ok=false when nothing matched.
func (r *RegionRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	res := r.DB.WithContext(ctx).Where("region_id = ?", id).Delete(&model.RegionModel{})
	return res.RowsAffected > 0, res.Error
}

// Name resolves a display name; blank when unknown.
func (r *RegionRepository) Name(ctx context.Context, id uuid.UUID) string {
	row, err := r.FindByID(ctx, id)
	if err != nil {
		log.Printf("[WARN] region name lookup %s: %v", id, err)
	}
	if row == nil {
		return ""
	}
	return row.RegionName
}
