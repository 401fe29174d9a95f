// file: internals/features/leaves/repository/leave_repository.go
package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"personel_backend/internals/features/leaves/model"
)

type ListFilter struct {
	RegionID    uuid.UUID
	PersonnelID *uuid.UUID
	Status      *model.LeaveStatus
	Offset      int
	Limit       int
}

type Decision struct {
	Status    model.LeaveStatus
	DecidedBy uuid.UUID
	DecidedAt time.Time
	Note      *string
}

type LeaveRepository struct {
	DB *gorm.DB
}

func NewLeaveRepository(db *gorm.DB) *LeaveRepository {
	return &LeaveRepository{DB: db}
}

// PersonnelRegion returns the live personnel row's region, or ok=false.
func (r *LeaveRepository) PersonnelRegion(ctx context.Context, personnelID uuid.UUID) (uuid.UUID, bool, error) {
	var row struct {
		RegionID uuid.UUID `gorm:"column:personnel_region_id"`
	}
	tx := r.DB.WithContext(ctx).
		Table("personnel").
		Select("personnel_region_id").
		Where("personnel_id = ? AND personnel_deleted_at IS NULL", personnelID).
		Limit(1).
		Scan(&row)
	if tx.Error != nil {
		return uuid.Nil, false, tx.Error
	}
	return row.RegionID, tx.RowsAffected > 0, nil
}

// HasOverlap reports a pending or approved request of the same person whose
// range intersects [start, end].
func (r *LeaveRepository) HasOverlap(ctx context.Context, personnelID uuid.UUID, start, end time.Time) (bool, error) {
	var n int64
	err := r.DB.WithContext(ctx).
		Model(&model.LeaveRequestModel{}).
		Where("leave_request_personnel_id = ?", personnelID).
		Where("leave_request_status IN ?", []model.LeaveStatus{model.LeavePending, model.LeaveApproved}).
		Where("leave_request_start_date <= ? AND leave_request_end_date >= ?", end, start).
		Count(&n).Error
	return n > 0, err
}

func (r *LeaveRepository) Insert(ctx context.Context, row *model.LeaveRequestModel) error {
	return r.DB.WithContext(ctx).Create(row).Error
}

// FindByID returns (nil, nil) when missing.
func (r *LeaveRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.LeaveRequestModel, error) {
	var row model.LeaveRequestModel
	err := r.DB.WithContext(ctx).Where("leave_request_id = ?", id).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *LeaveRepository) List(ctx context.Context, f ListFilter) ([]model.LeaveRequestModel, int64, error) {
	tx := r.DB.WithContext(ctx).
		Model(&model.LeaveRequestModel{}).
		Where("leave_request_region_id = ?", f.RegionID)
	if f.PersonnelID != nil {
		tx = tx.Where("leave_request_personnel_id = ?", *f.PersonnelID)
	}
	if f.Status != nil {
		tx = tx.Where("leave_request_status = ?", *f.Status)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var rows []model.LeaveRequestModel
	err := tx.Order("leave_request_start_date DESC, leave_request_created_at DESC").
		Offset(f.Offset).
		Limit(f.Limit).
		Find(&rows).Error
	return rows, total, err
}

// Decide applies the decision only while the row is still pending; false
// means another request decided (or deleted) it first.
func (r *LeaveRepository) Decide(ctx context.Context, id uuid.UUID, d Decision) (bool, error) {
	res := r.DB.WithContext(ctx).
		Model(&model.LeaveRequestModel{}).
		Where("leave_request_id = ? AND leave_request_status = ?", id, model.LeavePending).
		Updates(map[string]any{
			"leave_request_status":        d.Status,
			"leave_request_decided_by":    d.DecidedBy,
			"leave_request_decided_at":    d.DecidedAt,
			"leave_request_decision_note": d.Note,
		})
	return res.RowsAffected > 0, res.Error
}

// DeletePending soft-deletes a pending row; false when it is not pending.
func (r *LeaveRepository) DeletePending(ctx context.Context, id uuid.UUID) (bool, error) {
	res := r.DB.WithContext(ctx).
		Where("leave_request_id = ? AND leave_request_status = ?", id, model.LeavePending).
		Delete(&model.LeaveRequestModel{})
	return res.RowsAffected > 0, res.Error
}
