// file: internals/features/timesheets/service/calendar_builder.go
package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	m "personel_backend/internals/features/timesheets/model"
	"personel_backend/internals/features/timesheets/repository"
)

/* =========================
   Service + constructor
   ========================= */

type TimesheetService struct {
	Store repository.Store
	Now   func() time.Time
}

func New(store repository.Store) *TimesheetService {
	return &TimesheetService{Store: store, Now: time.Now}
}

/* =========================
   Calendar Builder
   ========================= */

// TrainingDays: the first N days of every month get the training template.
const TrainingDays = 8

// ParseYearMonth → first day of the month (UTC).
func ParseYearMonth(ym string) (time.Time, error) {
	t, err := time.Parse(m.YearMonthLayout, strings.TrimSpace(ym))
	if err != nil {
		return time.Time{}, ErrInvalidYearMonth
	}
	return t, nil
}

// ClassifyDay picks the template id for a date, in priority order:
// first TrainingDays days → training, Saturday → half day,
// Sunday → weekly rest, otherwise full day.
func ClassifyDay(d time.Time) int {
	switch {
	case d.Day() <= TrainingDays:
		return m.TemplateTraining
	case d.Weekday() == time.Saturday:
		return m.TemplateHalfDay
	case d.Weekday() == time.Sunday:
		return m.TemplateWeeklyRest
	default:
		return m.TemplateFullDay
	}
}

// MonthDates enumerates every date of the month, no padding days.
func MonthDates(first time.Time) []time.Time {
	out := make([]time.Time, 0, 31)
	for d := first; d.Month() == first.Month(); d = d.AddDate(0, 0, 1) {
		out = append(out, d)
	}
	return out
}

// BuildDays materializes the initial day map from the given registry.
func BuildDays(yearMonth string, reg *Registry) (map[string]m.DaySnapshot, error) {
	first, err := ParseYearMonth(yearMonth)
	if err != nil {
		return nil, err
	}
	days := make(map[string]m.DaySnapshot, 31)
	for _, d := range MonthDates(first) {
		tpl, err := reg.Get(ClassifyDay(d))
		if err != nil {
			return nil, err
		}
		days[d.Format(m.DateLayout)] = tpl.Snapshot()
	}
	return days, nil
}

// StartMonth creates the month record in "preparing" state. It never
// overwrites: an existing record yields ErrAlreadyStarted.
// A nil registry means "latest templates of the region".
func (s *TimesheetService) StartMonth(ctx context.Context, regionID uuid.UUID, yearMonth string, reg *Registry) (*m.MonthRecord, error) {
	first, err := ParseYearMonth(yearMonth)
	if err != nil {
		return nil, err
	}
	yearMonth = first.Format(m.YearMonthLayout)

	existing, err := s.Store.FetchMonthRecord(ctx, regionID, yearMonth)
	if err != nil {
		return nil, persistErr("fetch month", err)
	}
	if existing != nil {
		return nil, ErrAlreadyStarted
	}

	if reg == nil {
		if reg, err = s.LoadLatestTemplates(ctx, regionID); err != nil {
			return nil, err
		}
	}

	days, err := BuildDays(yearMonth, reg)
	if err != nil {
		return nil, err
	}

	rec := &m.MonthRecord{
		ID:                uuid.New(),
		RegionID:          regionID,
		YearMonth:         yearMonth,
		Status:            m.MonthPreparing,
		TemplatesSnapshot: reg.Templates(),
		Days:              days,
	}
	created, err := s.Store.InsertMonthRecord(ctx, rec)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateMonth) {
			return nil, ErrAlreadyStarted
		}
		return nil, persistErr("insert month", err)
	}
	return created, nil
}
