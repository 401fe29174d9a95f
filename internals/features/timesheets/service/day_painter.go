// file: internals/features/timesheets/service/day_painter.go
package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	m "personel_backend/internals/features/timesheets/model"
)

/* =========================
   Day Override Store
   ========================= */

// PaintDay replaces one day's snapshot with a fresh copy of the template
// taken from reg (the live registry, not the month's stored snapshot).
// The whole day map is written back; concurrent painters race and the last
// write wins.
func (s *TimesheetService) PaintDay(ctx context.Context, monthID uuid.UUID, date string, templateID int, reg *Registry) (m.DaySnapshot, error) {
	snaps, err := s.PaintDays(ctx, monthID, []string{date}, templateID, reg)
	if err != nil {
		return m.DaySnapshot{}, err
	}
	return snaps[date], nil
}

// PaintDays paints several dates with the same template in one write.
// Validation is all-or-nothing: one unknown date rejects the whole call.
func (s *TimesheetService) PaintDays(ctx context.Context, monthID uuid.UUID, dates []string, templateID int, reg *Registry) (map[string]m.DaySnapshot, error) {
	rec, err := s.loadMonth(ctx, monthID)
	if err != nil {
		return nil, err
	}
	if rec.Status == m.MonthSaved {
		return nil, ErrMonthLocked
	}
	for _, d := range dates {
		if _, ok := rec.Days[d]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownDate, d)
		}
	}

	if reg == nil {
		if reg, err = s.LoadLatestTemplates(ctx, rec.RegionID); err != nil {
			return nil, err
		}
	}
	tpl, err := reg.Get(templateID)
	if err != nil {
		return nil, err
	}

	days := m.CloneDays(rec.Days)
	painted := make(map[string]m.DaySnapshot, len(dates))
	for _, d := range dates {
		days[d] = tpl.Snapshot()
		painted[d] = tpl.Snapshot()
	}
	if err := s.Store.UpdateMonthRecordDays(ctx, rec.ID, days); err != nil {
		return nil, persistErr("update days", err)
	}
	return painted, nil
}

func (s *TimesheetService) loadMonth(ctx context.Context, id uuid.UUID) (*m.MonthRecord, error) {
	rec, err := s.Store.FetchMonthRecordByID(ctx, id)
	if err != nil {
		return nil, persistErr("fetch month", err)
	}
	if rec == nil {
		return nil, ErrMonthNotFound
	}
	return rec, nil
}
