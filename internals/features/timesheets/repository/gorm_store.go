// file: internals/features/timesheets/repository/gorm_store.go
package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	m "personel_backend/internals/features/timesheets/model"
	helper "personel_backend/internals/helpers"
)

/* =========================
   GORM (Postgres) implementation
   ========================= */

type GormStore struct {
	DB *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{DB: db}
}

func (s *GormStore) FetchLatestTemplatesSnapshot(ctx context.Context, regionID uuid.UUID) ([]m.Template, error) {
	var row struct {
		Templates []byte `gorm:"column:timesheet_month_templates_snapshot"`
	}
	tx := s.DB.WithContext(ctx).
		Model(&m.TimesheetMonthModel{}).
		Select("timesheet_month_templates_snapshot").
		Where("timesheet_month_region_id = ?", regionID).
		Order("timesheet_month_created_at DESC").
		Limit(1).
		Scan(&row)
	if tx.Error != nil {
		return nil, tx.Error
	}
	if tx.RowsAffected == 0 {
		return nil, nil
	}

	return m.DecodeTemplates(row.Templates), nil
}

func (s *GormStore) FetchMonthRecord(ctx context.Context, regionID uuid.UUID, yearMonth string) (*m.MonthRecord, error) {
	var row m.TimesheetMonthModel
	err := s.DB.WithContext(ctx).
		Where("timesheet_month_region_id = ? AND timesheet_month_year_month = ?", regionID, yearMonth).
		Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return row.ToRecord()
}

func (s *GormStore) FetchMonthRecordByID(ctx context.Context, id uuid.UUID) (*m.MonthRecord, error) {
	var row m.TimesheetMonthModel
	err := s.DB.WithContext(ctx).
		Where("timesheet_month_id = ?", id).
		Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return row.ToRecord()
}

func (s *GormStore) ListMonthRecords(ctx context.Context, regionID uuid.UUID) ([]m.MonthRecord, error) {
	var rows []m.TimesheetMonthModel
	if err := s.DB.WithContext(ctx).
		Where("timesheet_month_region_id = ?", regionID).
		Order("timesheet_month_year_month DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]m.MonthRecord, 0, len(rows))
	for i := range rows {
		rec, err := rows[i].ToRecord()
		if err != nil {
			return nil, err
		}
		out = append(out, *rec)
	}
	return out, nil
}

func (s *GormStore) InsertMonthRecord(ctx context.Context, rec *m.MonthRecord) (*m.MonthRecord, error) {
	row, err := m.FromRecord(rec)
	if err != nil {
		return nil, err
	}
	if err := s.DB.WithContext(ctx).Create(row).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			return nil, ErrDuplicateMonth
		}
		return nil, err
	}
	return row.ToRecord()
}

func (s *GormStore) UpdateMonthRecordDays(ctx context.Context, id uuid.UUID, days map[string]m.DaySnapshot) error {
	blob, err := m.MarshalDays(days)
	if err != nil {
		return err
	}
	return s.update(ctx, id, map[string]any{
		"timesheet_month_days": blob,
	})
}

func (s *GormStore) UpdateMonthRecordOnSave(
	ctx context.Context,
	id uuid.UUID,
	days map[string]m.DaySnapshot,
	templates []m.Template,
	savedBy uuid.UUID,
	savedAt time.Time,
) error {
	daysBlob, err := m.MarshalDays(days)
	if err != nil {
		return err
	}
	tplBlob, err := m.MarshalTemplates(templates)
	if err != nil {
		return err
	}
	return s.update(ctx, id, map[string]any{
		"timesheet_month_status":             m.MonthSaved,
		"timesheet_month_days":               daysBlob,
		"timesheet_month_templates_snapshot": tplBlob,
		"timesheet_month_saved_by":           savedBy,
		"timesheet_month_saved_at":           savedAt,
	})
}

func (s *GormStore) UpdateMonthRecordStatus(ctx context.Context, id uuid.UUID, status m.MonthStatus) error {
	return s.update(ctx, id, map[string]any{
		"timesheet_month_status": status,
	})
}

func (s *GormStore) update(ctx context.Context, id uuid.UUID, cols map[string]any) error {
	tx := s.DB.WithContext(ctx).
		Model(&m.TimesheetMonthModel{}).
		Where("timesheet_month_id = ?", id).
		Updates(cols)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
