// file: internals/features/timesheets/repository/store.go
package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	m "personel_backend/internals/features/timesheets/model"
)

// ErrDuplicateMonth is returned by InsertMonthRecord when (region, year_month)
// already has a row.
var ErrDuplicateMonth = errors.New("timesheet month already exists")

// Store is the persistence boundary of the puantaj subsystem.
// Fetch* return (nil, nil) when nothing matches.
type Store interface {
	FetchLatestTemplatesSnapshot(ctx context.Context, regionID uuid.UUID) ([]m.Template, error)
	FetchMonthRecord(ctx context.Context, regionID uuid.UUID, yearMonth string) (*m.MonthRecord, error)
	FetchMonthRecordByID(ctx context.Context, id uuid.UUID) (*m.MonthRecord, error)
	ListMonthRecords(ctx context.Context, regionID uuid.UUID) ([]m.MonthRecord, error)

	InsertMonthRecord(ctx context.Context, rec *m.MonthRecord) (*m.MonthRecord, error)
	UpdateMonthRecordDays(ctx context.Context, id uuid.UUID, days map[string]m.DaySnapshot) error
	UpdateMonthRecordOnSave(ctx context.Context, id uuid.UUID, days map[string]m.DaySnapshot, templates []m.Template, savedBy uuid.UUID, savedAt time.Time) error
	UpdateMonthRecordStatus(ctx context.Context, id uuid.UUID, status m.MonthStatus) error
}
