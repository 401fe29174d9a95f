// file: internals/features/timesheets/service/excel_export.go
package service

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	m "personel_backend/internals/features/timesheets/model"
	"personel_backend/internals/helpers/dbtime"
)

const (
	exportDaysSheet  = "Puantaj"
	exportUsageSheet = "Özet"
)

var hexColor = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// ExportMonthXLSX renders one row per day plus a usage summary sheet.
// regionName is only used for the title row.
func ExportMonthXLSX(rec *m.MonthRecord, reg *Registry, regionName string) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", exportDaysSheet); err != nil {
		return nil, err
	}

	days := &sheetWriter{f: f, sheet: exportDaysSheet}
	title := fmt.Sprintf("%s - %s (%s)", strings.TrimSpace(regionName), rec.YearMonth, rec.Status)
	days.set("A1", title)

	headers := []string{"Tarih", "Gün", "Şablon", "Başlangıç", "Bitiş", "Mola (dk)", "Net Saat"}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 2)
		if err != nil {
			return nil, err
		}
		days.set(cell, h)
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#E2E8F0"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return nil, err
	}
	days.rowStyle(2, headerStyle)

	// one fill style per distinct colour
	styles := map[string]int{}
	fillFor := func(color string) (int, bool) {
		if !hexColor.MatchString(color) {
			return 0, false
		}
		if id, ok := styles[color]; ok {
			return id, true
		}
		id, err := f.NewStyle(&excelize.Style{
			Fill: excelize.Fill{Type: "pattern", Color: []string{color}, Pattern: 1},
		})
		if err != nil {
			return 0, false
		}
		styles[color] = id
		return id, true
	}

	row := 3
	totalMinutes := 0
	for _, date := range rec.SortedDates() {
		day := rec.Days[date]
		wd := ""
		if t, err := time.Parse(m.DateLayout, date); err == nil {
			wd = dbtime.WeekdayTR(t.Weekday())
		}
		worked := dbtime.WorkedMinutes(day.StartTime, day.EndTime, day.BreakMinutes)
		totalMinutes += worked

		days.set(fmt.Sprintf("A%d", row), date)
		days.set(fmt.Sprintf("B%d", row), wd)
		days.set(fmt.Sprintf("C%d", row), day.Name)
		days.set(fmt.Sprintf("D%d", row), deref(day.StartTime))
		days.set(fmt.Sprintf("E%d", row), deref(day.EndTime))
		days.set(fmt.Sprintf("F%d", row), day.BreakMinutes)
		days.set(fmt.Sprintf("G%d", row), float64(worked)/60)
		if id, ok := fillFor(day.Color); ok {
			days.cellStyle(fmt.Sprintf("C%d", row), id)
		}
		row++
	}
	days.set(fmt.Sprintf("F%d", row), "Toplam")
	days.set(fmt.Sprintf("G%d", row), float64(totalMinutes)/60)

	days.colWidth("A", "A", 14)
	days.colWidth("B", "C", 18)
	days.colWidth("D", "G", 12)
	if days.err != nil {
		return nil, days.err
	}

	// Summary
	if _, err := f.NewSheet(exportUsageSheet); err != nil {
		return nil, err
	}
	usage := &sheetWriter{f: f, sheet: exportUsageSheet}
	usage.set("A1", "Şablon")
	usage.set("B1", "Gün Sayısı")
	usage.rowStyle(1, headerStyle)
	rep := Usage(rec.Days, reg)
	for i, u := range rep.Templates {
		usage.set(fmt.Sprintf("A%d", i+2), u.Name)
		usage.set(fmt.Sprintf("B%d", i+2), u.Count)
		if id, ok := fillFor(u.Color); ok {
			usage.cellStyle(fmt.Sprintf("A%d", i+2), id)
		}
	}
	usage.colWidth("A", "A", 20)
	if usage.err != nil {
		return nil, usage.err
	}

	return f.WriteToBuffer()
}

// sheetWriter keeps the first excelize error; later calls are no-ops.
type sheetWriter struct {
	f     *excelize.File
	sheet string
	err   error
}

func (w *sheetWriter) fail(op, ref string, err error) {
	if err != nil && w.err == nil {
		w.err = fmt.Errorf("%s %s!%s: %w", op, w.sheet, ref, err)
	}
}

func (w *sheetWriter) set(cell string, v interface{}) {
	if w.err == nil {
		w.fail("set", cell, w.f.SetCellValue(w.sheet, cell, v))
	}
}

func (w *sheetWriter) cellStyle(cell string, style int) {
	if w.err == nil {
		w.fail("style", cell, w.f.SetCellStyle(w.sheet, cell, cell, style))
	}
}

func (w *sheetWriter) rowStyle(row, style int) {
	if w.err == nil {
		w.fail("row style", fmt.Sprint(row), w.f.SetRowStyle(w.sheet, row, row, style))
	}
}

func (w *sheetWriter) colWidth(from, to string, width float64) {
	if w.err == nil {
		w.fail("width", from+":"+to, w.f.SetColWidth(w.sheet, from, to, width))
	}
}

func deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
