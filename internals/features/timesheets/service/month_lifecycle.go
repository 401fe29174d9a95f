// file: internals/features/timesheets/service/month_lifecycle.go
package service

import (
	"context"
	"log"

	"github.com/google/uuid"

	m "personel_backend/internals/features/timesheets/model"
)

/* =========================
   Month Record Lifecycle
   ========================= */

// SaveMonth marks the month saved and re-persists days plus the registry in
// effect. Calling it again simply re-stamps savedAt/savedBy.
// A nil registry keeps the month's own snapshot.
func (s *TimesheetService) SaveMonth(ctx context.Context, monthID uuid.UUID, reg *Registry, savedBy uuid.UUID) (*m.MonthRecord, error) {
	rec, err := s.loadMonth(ctx, monthID)
	if err != nil {
		return nil, err
	}
	if reg == nil {
		if reg, err = NewRegistry(rec.TemplatesSnapshot); err != nil {
			log.Printf("[WARN] month=%s: %v; saving latest templates instead", rec.ID, err)
			if reg, err = s.LoadLatestTemplates(ctx, rec.RegionID); err != nil {
				return nil, err
			}
		}
	}

	now := s.Now()
	tpls := reg.Templates()
	if err := s.Store.UpdateMonthRecordOnSave(ctx, rec.ID, rec.Days, tpls, savedBy, now); err != nil {
		return nil, persistErr("save month", err)
	}

	rec.Status = m.MonthSaved
	rec.TemplatesSnapshot = tpls
	rec.SavedBy = &savedBy
	rec.SavedAt = &now
	return rec, nil
}

// ReopenMonth puts a saved month back to preparing so days can be painted
// again. The last save stamp is kept.
func (s *TimesheetService) ReopenMonth(ctx context.Context, monthID uuid.UUID) (*m.MonthRecord, error) {
	rec, err := s.loadMonth(ctx, monthID)
	if err != nil {
		return nil, err
	}
	if rec.Status == m.MonthPreparing {
		return rec, nil
	}
	if err := s.Store.UpdateMonthRecordStatus(ctx, rec.ID, m.MonthPreparing); err != nil {
		return nil, persistErr("reopen month", err)
	}
	rec.Status = m.MonthPreparing
	return rec, nil
}

func (s *TimesheetService) GetMonth(ctx context.Context, monthID uuid.UUID) (*m.MonthRecord, error) {
	return s.loadMonth(ctx, monthID)
}

func (s *TimesheetService) GetMonthByKey(ctx context.Context, regionID uuid.UUID, yearMonth string) (*m.MonthRecord, error) {
	first, err := ParseYearMonth(yearMonth)
	if err != nil {
		return nil, err
	}
	rec, err := s.Store.FetchMonthRecord(ctx, regionID, first.Format(m.YearMonthLayout))
	if err != nil {
		return nil, persistErr("fetch month", err)
	}
	if rec == nil {
		return nil, ErrMonthNotFound
	}
	return rec, nil
}

func (s *TimesheetService) ListMonths(ctx context.Context, regionID uuid.UUID) ([]m.MonthRecord, error) {
	out, err := s.Store.ListMonthRecords(ctx, regionID)
	if err != nil {
		return nil, persistErr("list months", err)
	}
	return out, nil
}

/* =========================
   Usage report
   ========================= */

type TemplateUsage struct {
	TemplateID int    `json:"template_id"`
	Name       string `json:"name"`
	Color      string `json:"color"`
	Count      int    `json:"count"`
}

type UsageReport struct {
	Templates []TemplateUsage `json:"templates"`
	ByName    map[string]int  `json:"by_name"`
	TotalDays int             `json:"total_days"`
}

// Usage counts days per template by matching the snapshot name against the
// template's current name (not its id). Renaming a template therefore moves
// counts in this report while the stored days stay untouched.
func Usage(days map[string]m.DaySnapshot, reg *Registry) UsageReport {
	byName := make(map[string]int)
	for _, d := range days {
		byName[d.Name]++
	}
	rep := UsageReport{
		Templates: make([]TemplateUsage, 0, m.TemplateCount),
		ByName:    byName,
		TotalDays: len(days),
	}
	for _, t := range reg.Templates() {
		rep.Templates = append(rep.Templates, TemplateUsage{
			TemplateID: t.ID,
			Name:       t.Name,
			Color:      t.Color,
			Count:      byName[t.Name],
		})
	}
	return rep
}
