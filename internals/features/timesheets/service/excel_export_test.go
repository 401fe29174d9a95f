package service

import (
	"context"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	m "personel_backend/internals/features/timesheets/model"
)

func TestExportMonthXLSX(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	rec := startMarch(t, svc)
	if _, err := svc.PaintDay(ctx, rec.ID, "2025-03-20", m.TemplateLeave, nil); err != nil {
		t.Fatal(err)
	}
	rec, _ = svc.GetMonth(ctx, rec.ID)

	buf, err := ExportMonthXLSX(rec, DefaultRegistry(), "Kadıköy")
	if err != nil {
		t.Fatalf("ExportMonthXLSX failed: %v", err)
	}
	f, err := excelize.OpenReader(buf)
	if err != nil {
		t.Fatalf("exported file does not open: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(exportDaysSheet)
	if err != nil {
		t.Fatal(err)
	}
	// title + header + 31 days + total
	if len(rows) != 34 {
		t.Fatalf("rows = %d, want 34", len(rows))
	}
	if rows[1][0] != "Tarih" {
		t.Errorf("header A2 = %q, want Tarih", rows[1][0])
	}
	if rows[2][0] != "2025-03-01" || rows[32][0] != "2025-03-31" {
		t.Errorf("day rows not in date order: first=%q last=%q", rows[2][0], rows[32][0])
	}
	if got := rows[21][2]; got != "İzin" {
		t.Errorf("2025-03-20 template = %q, want İzin", got)
	}
	if got := rows[21][1]; got != "Perşembe" {
		t.Errorf("2025-03-20 weekday = %q, want Perşembe", got)
	}

	summary, err := f.GetRows(exportUsageSheet)
	if err != nil {
		t.Fatal(err)
	}
	if len(summary) != m.TemplateCount+1 {
		t.Fatalf("summary rows = %d, want 7", len(summary))
	}
	if summary[m.TemplateLeave][0] != "İzin" || summary[m.TemplateLeave][1] != "1" {
		t.Errorf("leave usage row = %v, want [İzin 1]", summary[m.TemplateLeave])
	}
}

func TestSheetWriterKeepsFirstError(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	w := &sheetWriter{f: f, sheet: "Yok"}
	w.set("A1", "x")
	w.colWidth("A", "A", 500)
	if w.err == nil {
		t.Fatal("writing to a missing sheet must fail")
	}
	if !strings.Contains(w.err.Error(), "Yok!A1") {
		t.Errorf("err = %v, want the first failing cell", w.err)
	}

	ok := &sheetWriter{f: f, sheet: "Sheet1"}
	ok.set("A1", "x")
	ok.colWidth("A", "A", 500)
	if ok.err == nil || !strings.Contains(ok.err.Error(), "width Sheet1!A:A") {
		t.Errorf("err = %v, want column width failure", ok.err)
	}
	if v, _ := f.GetCellValue("Sheet1", "A1"); v != "x" {
		t.Errorf("A1 = %q, want x", v)
	}
}
