// file: internals/features/timesheets/dto/timesheet_dto.go
package dto

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	m "personel_backend/internals/features/timesheets/model"
	"personel_backend/internals/features/timesheets/service"
	"personel_backend/internals/helpers/dbtime"
)

/* =========================
   Requests
   ========================= */

// TemplateInput is one entry of the client's live registry.
type TemplateInput struct {
	ID           int     `json:"id" validate:"required,min=1,max=6"`
	Name         string  `json:"name" validate:"required,max=60"`
	Color        string  `json:"color" validate:"required,hexcolor"`
	StartTime    *string `json:"start_time" validate:"omitempty,clock"`
	EndTime      *string `json:"end_time" validate:"omitempty,clock"`
	BreakMinutes int     `json:"break_minutes" validate:"min=0,max=720"`
}

// RegistryRequest carries an optional registry. Without it the region's
// latest snapshot is used.
type RegistryRequest struct {
	Templates []TemplateInput `json:"templates" validate:"omitempty,len=6,dive"`
}

type StartMonthRequest struct {
	YearMonth string          `json:"year_month" validate:"required,yearmonth"`
	Templates []TemplateInput `json:"templates" validate:"omitempty,len=6,dive"`
}

// TemplateID is range-checked by the service (unknown ids answer 400).
type PaintDayRequest struct {
	TemplateID int             `json:"template_id"`
	Templates  []TemplateInput `json:"templates" validate:"omitempty,len=6,dive"`
}

type PaintDaysRequest struct {
	Dates      []string        `json:"dates" validate:"required,min=1,max=31,dive,isodate"`
	TemplateID int             `json:"template_id"`
	Templates  []TemplateInput `json:"templates" validate:"omitempty,len=6,dive"`
}

// ToRegistry builds the registry from request templates; (nil, nil) when
// none were sent.
func ToRegistry(in []TemplateInput) (*service.Registry, error) {
	if len(in) == 0 {
		return nil, nil
	}
	tpls := make([]m.Template, 0, len(in))
	for _, t := range in {
		start, err := dbtime.NormalizeClock(t.StartTime)
		if err != nil {
			return nil, fmt.Errorf("template %d start_time: %w", t.ID, err)
		}
		end, err := dbtime.NormalizeClock(t.EndTime)
		if err != nil {
			return nil, fmt.Errorf("template %d end_time: %w", t.ID, err)
		}
		tpls = append(tpls, m.Template{
			ID:           t.ID,
			Name:         strings.TrimSpace(t.Name),
			Color:        strings.ToLower(strings.TrimSpace(t.Color)),
			StartTime:    start,
			EndTime:      end,
			BreakMinutes: t.BreakMinutes,
		})
	}
	return service.NewRegistry(tpls)
}

/* =========================
   Responses
   ========================= */

type DayResponse struct {
	Date          string  `json:"date"`
	Weekday       string  `json:"weekday"`
	Name          string  `json:"name"`
	Color         string  `json:"color"`
	StartTime     *string `json:"start_time"`
	EndTime       *string `json:"end_time"`
	BreakMinutes  int     `json:"break_minutes"`
	WorkedMinutes int     `json:"worked_minutes"`
}

type MonthResponse struct {
	ID        uuid.UUID     `json:"id"`
	RegionID  uuid.UUID     `json:"region_id"`
	YearMonth string        `json:"year_month"`
	Status    string        `json:"status"`
	Templates []m.Template  `json:"templates_snapshot"`
	Days      []DayResponse `json:"days"`
	SavedBy   *uuid.UUID    `json:"saved_by,omitempty"`
	SavedAt   *time.Time    `json:"saved_at,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// MonthSummary is the list view without the day grid.
type MonthSummary struct {
	ID        uuid.UUID  `json:"id"`
	RegionID  uuid.UUID  `json:"region_id"`
	YearMonth string     `json:"year_month"`
	Status    string     `json:"status"`
	SavedBy   *uuid.UUID `json:"saved_by,omitempty"`
	SavedAt   *time.Time `json:"saved_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

func ToDayResponse(date string, d m.DaySnapshot) DayResponse {
	wd := ""
	if t, err := time.Parse(m.DateLayout, date); err == nil {
		wd = dbtime.WeekdayTR(t.Weekday())
	}
	return DayResponse{
		Date:          date,
		Weekday:       wd,
		Name:          d.Name,
		Color:         d.Color,
		StartTime:     d.StartTime,
		EndTime:       d.EndTime,
		BreakMinutes:  d.BreakMinutes,
		WorkedMinutes: dbtime.WorkedMinutes(d.StartTime, d.EndTime, d.BreakMinutes),
	}
}

func ToMonthResponse(rec *m.MonthRecord) MonthResponse {
	days := make([]DayResponse, 0, len(rec.Days))
	for _, date := range rec.SortedDates() {
		days = append(days, ToDayResponse(date, rec.Days[date]))
	}
	tpls := rec.TemplatesSnapshot
	if tpls == nil {
		tpls = []m.Template{}
	}
	return MonthResponse{
		ID:        rec.ID,
		RegionID:  rec.RegionID,
		YearMonth: rec.YearMonth,
		Status:    string(rec.Status),
		Templates: tpls,
		Days:      days,
		SavedBy:   rec.SavedBy,
		SavedAt:   rec.SavedAt,
		CreatedAt: rec.CreatedAt,
		UpdatedAt: rec.UpdatedAt,
	}
}

func ToMonthSummaries(recs []m.MonthRecord) []MonthSummary {
	out := make([]MonthSummary, 0, len(recs))
	for _, r := range recs {
		out = append(out, MonthSummary{
			ID:        r.ID,
			RegionID:  r.RegionID,
			YearMonth: r.YearMonth,
			Status:    string(r.Status),
			SavedBy:   r.SavedBy,
			SavedAt:   r.SavedAt,
			CreatedAt: r.CreatedAt,
		})
	}
	return out
}
