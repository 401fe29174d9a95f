package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	m "personel_backend/internals/features/timesheets/model"
	"personel_backend/internals/features/timesheets/repository"
)

func newTestService() (*TimesheetService, *repository.MemoryStore) {
	store := repository.NewMemoryStore()
	svc := New(store)
	svc.Now = func() time.Time { return time.Date(2025, 3, 31, 18, 0, 0, 0, time.UTC) }
	return svc, store
}

func TestBuildDaysCoversExactlyTheMonth(t *testing.T) {
	tests := []struct {
		ym   string
		want int
	}{
		{"2023-02", 28},
		{"2024-02", 29},
		{"2025-04", 30},
		{"2025-03", 31},
		{"2025-12", 31},
	}
	for _, tt := range tests {
		t.Run(tt.ym, func(t *testing.T) {
			days, err := BuildDays(tt.ym, DefaultRegistry())
			if err != nil {
				t.Fatalf("BuildDays(%s) failed: %v", tt.ym, err)
			}
			if len(days) != tt.want {
				t.Fatalf("len(days) = %d, want %d", len(days), tt.want)
			}
			first, _ := ParseYearMonth(tt.ym)
			for i := 0; i < tt.want; i++ {
				key := first.AddDate(0, 0, i).Format(m.DateLayout)
				if _, ok := days[key]; !ok {
					t.Errorf("missing date %s", key)
				}
			}
			// no padding from neighbouring months
			if _, ok := days[first.AddDate(0, 0, -1).Format(m.DateLayout)]; ok {
				t.Error("previous month's last day must not be present")
			}
			if _, ok := days[first.AddDate(0, 1, 0).Format(m.DateLayout)]; ok {
				t.Error("next month's first day must not be present")
			}
		})
	}
}

func TestClassifyDay(t *testing.T) {
	d := func(s string) time.Time {
		tt, err := time.Parse(m.DateLayout, s)
		if err != nil {
			t.Fatal(err)
		}
		return tt
	}
	tests := []struct {
		date string
		want int
	}{
		{"2025-03-01", m.TemplateTraining}, // Saturday, but within the first 8 days
		{"2025-03-02", m.TemplateTraining}, // Sunday, first 8 days
		{"2025-03-08", m.TemplateTraining},
		{"2025-03-09", m.TemplateWeeklyRest},
		{"2025-03-10", m.TemplateFullDay},
		{"2025-03-14", m.TemplateFullDay},
		{"2025-03-15", m.TemplateHalfDay},
		{"2025-03-16", m.TemplateWeeklyRest},
		{"2025-03-20", m.TemplateFullDay},
		{"2025-03-31", m.TemplateFullDay},
	}
	for _, tt := range tests {
		if got := ClassifyDay(d(tt.date)); got != tt.want {
			t.Errorf("ClassifyDay(%s) = %d, want %d", tt.date, got, tt.want)
		}
	}
}

func TestFirstEightDaysAlwaysTraining(t *testing.T) {
	reg := DefaultRegistry()
	training, _ := reg.Get(m.TemplateTraining)
	for _, ym := range []string{"2024-09", "2025-01", "2025-06", "2026-02"} {
		days, err := BuildDays(ym, reg)
		if err != nil {
			t.Fatalf("BuildDays(%s): %v", ym, err)
		}
		first, _ := ParseYearMonth(ym)
		for i := 0; i < TrainingDays; i++ {
			key := first.AddDate(0, 0, i).Format(m.DateLayout)
			if !days[key].Equal(training.Snapshot()) {
				t.Errorf("%s: got %q, want training", key, days[key].Name)
			}
		}
	}
}

func TestBuildDaysInvalidYearMonth(t *testing.T) {
	for _, ym := range []string{"", "2025-13", "2025/03", "March"} {
		if _, err := BuildDays(ym, DefaultRegistry()); !errors.Is(err, ErrInvalidYearMonth) {
			t.Errorf("BuildDays(%q) error = %v, want ErrInvalidYearMonth", ym, err)
		}
	}
}

func TestStartMonthPersistsPreparingRecord(t *testing.T) {
	svc, store := newTestService()
	ctx := context.Background()
	region := uuid.New()

	rec, err := svc.StartMonth(ctx, region, "2025-03", nil)
	if err != nil {
		t.Fatalf("StartMonth failed: %v", err)
	}
	if rec.Status != m.MonthPreparing {
		t.Errorf("status = %s, want preparing", rec.Status)
	}
	if len(rec.TemplatesSnapshot) != m.TemplateCount {
		t.Errorf("templates snapshot len = %d, want 6", len(rec.TemplatesSnapshot))
	}
	if rec.SavedAt != nil || rec.SavedBy != nil {
		t.Error("saved stamp must be empty on a new month")
	}

	stored, _ := store.FetchMonthRecord(ctx, region, "2025-03")
	if stored == nil || len(stored.Days) != 31 {
		t.Fatalf("stored record missing or wrong size: %+v", stored)
	}
}

func TestStartMonthTwiceFailsWithAlreadyStarted(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	region := uuid.New()

	if _, err := svc.StartMonth(ctx, region, "2025-03", nil); err != nil {
		t.Fatalf("first StartMonth failed: %v", err)
	}
	_, err := svc.StartMonth(ctx, region, "2025-03", nil)
	if !errors.Is(err, ErrAlreadyStarted) {
		t.Fatalf("second StartMonth error = %v, want ErrAlreadyStarted", err)
	}

	// other regions are independent
	if _, err := svc.StartMonth(ctx, uuid.New(), "2025-03", nil); err != nil {
		t.Errorf("StartMonth for another region failed: %v", err)
	}
}

func TestStartMonthUsesGivenRegistry(t *testing.T) {
	svc, _ := newTestService()
	reg := DefaultRegistry()
	name := "Tam Gün (09-18)"
	if err := reg.Update(m.TemplateFullDay, TemplatePatch{Name: &name}); err != nil {
		t.Fatal(err)
	}

	rec, err := svc.StartMonth(context.Background(), uuid.New(), "2025-03", reg)
	if err != nil {
		t.Fatalf("StartMonth failed: %v", err)
	}
	if got := rec.Days["2025-03-20"].Name; got != name {
		t.Errorf("day 20 name = %q, want %q", got, name)
	}
	if got := rec.TemplatesSnapshot[0].Name; got != name {
		t.Errorf("snapshot template 1 name = %q, want %q", got, name)
	}
}

func TestStartMonthPersistenceFailure(t *testing.T) {
	svc, store := newTestService()
	store.Err = errors.New("connection reset")

	_, err := svc.StartMonth(context.Background(), uuid.New(), "2025-03", nil)
	if !errors.Is(err, ErrPersistence) {
		t.Fatalf("error = %v, want ErrPersistence", err)
	}
}
