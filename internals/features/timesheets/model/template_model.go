// file: internals/features/timesheets/model/template_model.go
package model

/* =======================================================
   Template (şablon): one of exactly 6 work-day categories
   ======================================================= */

const TemplateCount = 6

// Fixed template ids used by the calendar classification rule.
const (
	TemplateFullDay    = 1
	TemplateHalfDay    = 2
	TemplateTraining   = 3
	TemplateAdjustable = 4
	TemplateLeave      = 5
	TemplateWeeklyRest = 6
)

type Template struct {
	ID           int     `json:"id"`
	Name         string  `json:"name"`
	Color        string  `json:"color"`
	StartTime    *string `json:"start_time"`
	EndTime      *string `json:"end_time"`
	BreakMinutes int     `json:"break_minutes"`
}

// DaySnapshot is a frozen copy of a template's values for one date.
// It never points back to a Template.
type DaySnapshot struct {
	Name         string  `json:"name"`
	Color        string  `json:"color"`
	StartTime    *string `json:"start_time"`
	EndTime      *string `json:"end_time"`
	BreakMinutes int     `json:"break_minutes"`
}

// Snapshot copies the value fields; pointer fields are duplicated so later
// edits to the template cannot reach the snapshot.
func (t Template) Snapshot() DaySnapshot {
	return DaySnapshot{
		Name:         t.Name,
		Color:        t.Color,
		StartTime:    cloneStr(t.StartTime),
		EndTime:      cloneStr(t.EndTime),
		BreakMinutes: t.BreakMinutes,
	}
}

func (t Template) Clone() Template {
	t.StartTime = cloneStr(t.StartTime)
	t.EndTime = cloneStr(t.EndTime)
	return t
}

// Equal compares by value (nil and nil are equal, pointers compared by content).
func (d DaySnapshot) Equal(o DaySnapshot) bool {
	return d.Name == o.Name &&
		d.Color == o.Color &&
		eqStr(d.StartTime, o.StartTime) &&
		eqStr(d.EndTime, o.EndTime) &&
		d.BreakMinutes == o.BreakMinutes
}

func cloneStr(p *string) *string {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func eqStr(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func strPtr(s string) *string { return &s }

// DefaultTemplates returns the built-in set used when a region has no
// usable snapshot yet. A fresh copy is returned on every call.
func DefaultTemplates() []Template {
	return []Template{
		{ID: TemplateFullDay, Name: "Tam Gün", Color: "#22c55e", StartTime: strPtr("08:00"), EndTime: strPtr("17:00"), BreakMinutes: 60},
		{ID: TemplateHalfDay, Name: "Yarım Gün", Color: "#3b82f6", StartTime: strPtr("08:00"), EndTime: strPtr("13:00"), BreakMinutes: 0},
		{ID: TemplateTraining, Name: "Eğitim", Color: "#f59e0b", StartTime: strPtr("09:00"), EndTime: strPtr("17:00"), BreakMinutes: 60},
		{ID: TemplateAdjustable, Name: "Ayarlanabilir", Color: "#a855f7", StartTime: strPtr("10:00"), EndTime: strPtr("18:00"), BreakMinutes: 60},
		{ID: TemplateLeave, Name: "İzin", Color: "#ef4444", BreakMinutes: 0},
		{ID: TemplateWeeklyRest, Name: "Hafta Tatili", Color: "#6b7280", BreakMinutes: 0},
	}
}
