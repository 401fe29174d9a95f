// file: internals/features/timesheets/model/month_model.go
package model

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

/* =======================================================
   Status (preparing → saved)
   ======================================================= */

type MonthStatus string

const (
	MonthPreparing MonthStatus = "preparing"
	MonthSaved     MonthStatus = "saved"
)

const (
	DateLayout      = "2006-01-02"
	YearMonthLayout = "2006-01"
)

/* =======================================================
   MonthRecord: typed view used by services
   ======================================================= */

type MonthRecord struct {
	ID                uuid.UUID              `json:"id"`
	RegionID          uuid.UUID              `json:"region_id"`
	YearMonth         string                 `json:"year_month"`
	Status            MonthStatus            `json:"status"`
	TemplatesSnapshot []Template             `json:"templates_snapshot"`
	Days              map[string]DaySnapshot `json:"days"`
	SavedBy           *uuid.UUID             `json:"saved_by,omitempty"`
	SavedAt           *time.Time             `json:"saved_at,omitempty"`
	CreatedAt         time.Time              `json:"created_at"`
	UpdatedAt         time.Time              `json:"updated_at"`
}

// SortedDates returns the day keys in calendar order.
func (r *MonthRecord) SortedDates() []string {
	out := make([]string, 0, len(r.Days))
	for k := range r.Days {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Clone deep-copies the record so callers cannot alias stored maps.
func (r *MonthRecord) Clone() *MonthRecord {
	if r == nil {
		return nil
	}
	cp := *r
	cp.TemplatesSnapshot = make([]Template, len(r.TemplatesSnapshot))
	for i, t := range r.TemplatesSnapshot {
		cp.TemplatesSnapshot[i] = t.Clone()
	}
	cp.Days = CloneDays(r.Days)
	if r.SavedBy != nil {
		v := *r.SavedBy
		cp.SavedBy = &v
	}
	if r.SavedAt != nil {
		v := *r.SavedAt
		cp.SavedAt = &v
	}
	return &cp
}

func CloneDays(in map[string]DaySnapshot) map[string]DaySnapshot {
	out := make(map[string]DaySnapshot, len(in))
	for k, v := range in {
		out[k] = DaySnapshot{
			Name:         v.Name,
			Color:        v.Color,
			StartTime:    cloneStr(v.StartTime),
			EndTime:      cloneStr(v.EndTime),
			BreakMinutes: v.BreakMinutes,
		}
	}
	return out
}

/* =======================================================
   TimesheetMonthModel: map to table timesheet_months
   ======================================================= */

type TimesheetMonthModel struct {
	TimesheetMonthID        uuid.UUID      `json:"timesheet_month_id" gorm:"type:uuid;primaryKey;column:timesheet_month_id;default:gen_random_uuid()"`
	TimesheetMonthRegionID  uuid.UUID      `json:"timesheet_month_region_id" gorm:"type:uuid;not null;column:timesheet_month_region_id;uniqueIndex:uq_timesheet_month_region_ym"`
	TimesheetMonthYM        string         `json:"timesheet_month_year_month" gorm:"type:varchar(7);not null;column:timesheet_month_year_month;uniqueIndex:uq_timesheet_month_region_ym"`
	TimesheetMonthStatus    MonthStatus    `json:"timesheet_month_status" gorm:"type:varchar(16);not null;default:'preparing';column:timesheet_month_status"`
	TimesheetMonthTemplates datatypes.JSON `json:"timesheet_month_templates_snapshot" gorm:"type:jsonb;not null;column:timesheet_month_templates_snapshot"`
	TimesheetMonthDays      datatypes.JSON `json:"timesheet_month_days" gorm:"type:jsonb;not null;column:timesheet_month_days"`

	TimesheetMonthSavedBy *uuid.UUID `json:"timesheet_month_saved_by,omitempty" gorm:"type:uuid;column:timesheet_month_saved_by"`
	TimesheetMonthSavedAt *time.Time `json:"timesheet_month_saved_at,omitempty" gorm:"column:timesheet_month_saved_at"`

	TimesheetMonthCreatedAt time.Time `json:"timesheet_month_created_at" gorm:"column:timesheet_month_created_at;not null;autoCreateTime"`
	TimesheetMonthUpdatedAt time.Time `json:"timesheet_month_updated_at" gorm:"column:timesheet_month_updated_at;not null;autoUpdateTime"`
}

func (TimesheetMonthModel) TableName() string {
	return "timesheet_months"
}

// DecodeTemplates reads a templates_snapshot blob. A blob that does not
// decode yields an empty, non-nil slice, which the registry rejects as
// corrupt and replaces with the defaults.
func DecodeTemplates(raw []byte) []Template {
	var tpls []Template
	if err := json.Unmarshal(raw, &tpls); err != nil || tpls == nil {
		return []Template{}
	}
	return tpls
}

// ToRecord decodes the JSON columns. An undecodable templates blob comes
// back empty so the registry can fall back to defaults.
func (m *TimesheetMonthModel) ToRecord() (*MonthRecord, error) {
	rec := &MonthRecord{
		ID:        m.TimesheetMonthID,
		RegionID:  m.TimesheetMonthRegionID,
		YearMonth: m.TimesheetMonthYM,
		Status:    m.TimesheetMonthStatus,
		SavedBy:   m.TimesheetMonthSavedBy,
		SavedAt:   m.TimesheetMonthSavedAt,
		CreatedAt: m.TimesheetMonthCreatedAt,
		UpdatedAt: m.TimesheetMonthUpdatedAt,
	}
	if len(m.TimesheetMonthTemplates) > 0 {
		rec.TemplatesSnapshot = DecodeTemplates(m.TimesheetMonthTemplates)
	}
	rec.Days = map[string]DaySnapshot{}
	if len(m.TimesheetMonthDays) > 0 {
		if err := json.Unmarshal(m.TimesheetMonthDays, &rec.Days); err != nil {
			return nil, fmt.Errorf("decode days for %s: %w", m.TimesheetMonthID, err)
		}
	}
	return rec, nil
}

// FromRecord encodes a typed record into the row shape.
func FromRecord(rec *MonthRecord) (*TimesheetMonthModel, error) {
	tpls, err := MarshalTemplates(rec.TemplatesSnapshot)
	if err != nil {
		return nil, err
	}
	days, err := MarshalDays(rec.Days)
	if err != nil {
		return nil, err
	}
	return &TimesheetMonthModel{
		TimesheetMonthID:        rec.ID,
		TimesheetMonthRegionID:  rec.RegionID,
		TimesheetMonthYM:        rec.YearMonth,
		TimesheetMonthStatus:    rec.Status,
		TimesheetMonthTemplates: tpls,
		TimesheetMonthDays:      days,
		TimesheetMonthSavedBy:   rec.SavedBy,
		TimesheetMonthSavedAt:   rec.SavedAt,
	}, nil
}

func MarshalDays(days map[string]DaySnapshot) (datatypes.JSON, error) {
	b, err := json.Marshal(days)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(b), nil
}

func MarshalTemplates(tpls []Template) (datatypes.JSON, error) {
	b, err := json.Marshal(tpls)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(b), nil
}
